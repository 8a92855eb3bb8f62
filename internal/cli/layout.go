package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shadegraph/pkg/document"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/layout"
)

// layoutStartY matches the editor's vertical canvas baseline.
const layoutStartY = 60.0

// layoutCommand creates the layout command: run auto-layout over a
// document and persist the resulting normalized positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "layout <document>",
		Short: "Run auto-layout and persist node positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(c.Logger)

			doc, g, err := c.buildGraph(args[0])
			if err != nil {
				return err
			}

			engine := layout.Run(g, layoutStartY)
			savePositions(g)

			for _, level := range sortedLevelKeys(engine) {
				names := make([]string, 0, len(engine.Levels()[level]))
				for _, n := range engine.Levels()[level] {
					names = append(names, n.Name())
				}
				printDetail("level %d: %v", level, names)
			}

			if write {
				if err := document.Write(doc, args[0]); err != nil {
					return fmt.Errorf("write document: %w", err)
				}
				printFile(args[0])
			}

			p.done(fmt.Sprintf("Laid out %d nodes", g.NodeCount()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write positions back to the document")
	return cmd
}

// savePositions persists node positions on document elements,
// normalized by the default node size.
func savePositions(g *graph.Graph) {
	for _, n := range g.Nodes() {
		pos := &document.Position{
			X: n.Pos().X / graph.DefaultNodeSize.X,
			Y: n.Pos().Y / graph.DefaultNodeSize.Y,
		}
		switch v := n.Variant().(type) {
		case graph.Instance:
			v.Elem.Pos = pos
		case graph.Subgraph:
			v.Elem.Pos = pos
		case graph.GraphInput:
			v.Elem.Pos = pos
		case graph.GraphOutput:
			v.Elem.Pos = pos
		}
	}
}

func sortedLevelKeys(e *layout.Engine) []int {
	levels := make([]int, 0, len(e.Levels()))
	for l := range e.Levels() {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	return levels
}
