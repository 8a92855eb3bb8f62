// Package render exports editor graphs as Graphviz diagrams.
//
// The editor's own canvas positions nodes itself (pkg/layout); this
// package serves the non-interactive surfaces — the render CLI command
// and the HTTP API — where a self-contained SVG or PNG of the shading
// network is more useful than canvas coordinates.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/shadegraph/pkg/graph"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes pin rows in node labels. When false, only the
	// node name and category are shown.
	Detailed bool
}

// ToDOT converts a built graph to Graphviz DOT. Edges run upstream to
// downstream and are labelled with the connecting input name; shading
// networks flow left to right, matching the editor canvas.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Input != nil {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Up.Name(), e.Down.Name(), e.Input.ElemName)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Up.Name(), e.Down.Name())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, detailed bool) string {
	header := n.Name()
	if n.Category() != "" && n.Category() != n.Name() {
		header += "\n(" + n.Category() + ")"
	}
	if !detailed {
		return header
	}

	var parts []string
	for _, p := range n.Inputs() {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name(), p.Type()))
	}
	if len(parts) == 0 {
		return header
	}
	return header + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Variant().(type) {
	case graph.Subgraph:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case graph.GraphInput:
		attrs = append(attrs, "fillcolor=\"#d7e8d4\"")
	case graph.GraphOutput:
		attrs = append(attrs, "fillcolor=\"#f6d6c9\"")
	case graph.Comment:
		attrs = append(attrs, "shape=note", "fillcolor=lightyellow")
	}
	return attrs
}

// SVG renders a DOT graph to SVG bytes using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG bytes using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
