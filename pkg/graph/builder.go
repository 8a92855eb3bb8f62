package graph

import (
	"context"
	"sort"
	"time"

	"github.com/matzehuels/shadegraph/pkg/document"
	"github.com/matzehuels/shadegraph/pkg/nodedef"
	"github.com/matzehuels/shadegraph/pkg/observability"
)

// DefaultNodeSize is the canvas footprint positions are normalized
// against when persisted on the document, so saved documents stay
// independent of UI pixel metrics.
var DefaultNodeSize = Point{X: 138, Y: 116}

// Builder constructs the complete node/pin/edge set for one document
// scope. Builds are always full rebuilds: the previous graph is
// discarded, never patched incrementally.
//
// Elements that cannot be resolved (missing definition, missing
// connected node, missing connected output) are silently skipped; a
// partially broken document still yields an editable graph.
type Builder struct {
	Doc      *document.Document
	Registry *nodedef.Registry

	// Local selects which elements belong to the working document.
	// Elements originating from imported libraries are excluded from
	// the editable graph. A nil predicate includes everything.
	Local func(sourceURI string) bool
}

func (b *Builder) local(source string) bool {
	if b.Local == nil {
		return true
	}
	return b.Local(source)
}

// BuildDocument builds the graph for the document root scope.
func (b *Builder) BuildDocument() *Graph {
	ctx := context.Background()
	start := time.Now()
	observability.Editor().OnBuildStart(ctx, "document")

	g := New()

	for _, dn := range b.Doc.Nodes {
		if !b.local(dn.Source) {
			continue
		}
		b.AddInstance(g, dn)
	}
	for _, sub := range b.Doc.Graphs {
		if !b.local(sub.Source) {
			continue
		}
		b.AddSubgraph(g, sub)
	}
	for _, in := range b.Doc.Inputs {
		if !b.local(in.Source) {
			continue
		}
		b.AddGraphInput(g, in)
	}
	for _, out := range b.Doc.Outputs {
		if !b.local(out.Source) {
			continue
		}
		b.AddGraphOutput(g, out)
	}

	b.resolveDocEdges(g)

	observability.Editor().OnBuildComplete(ctx, "document", g.NodeCount(), g.EdgeCount(), time.Since(start))
	return g
}

// BuildGraph builds the graph for a single subgraph scope. Declared
// inputs become nodes first, then the subgraph's children in
// deterministic topological order, then declared outputs.
func (b *Builder) BuildGraph(sub *document.NodeGraph) *Graph {
	ctx := context.Background()
	start := time.Now()
	observability.Editor().OnBuildStart(ctx, sub.ElemName)

	g := New()

	for _, in := range sub.Inputs {
		b.AddGraphInput(g, in)
	}
	for _, dn := range topoSort(sub.Nodes) {
		b.AddInstance(g, dn)
	}
	for _, out := range sub.Outputs {
		b.AddGraphOutput(g, out)
	}

	b.resolveSubgraphEdges(g, sub)

	observability.Editor().OnBuildComplete(ctx, sub.ElemName, g.NodeCount(), g.EdgeCount(), time.Since(start))
	return g
}

// =============================================================================
// Node construction
// =============================================================================

// AddInstance creates a node for a concrete document node. Nodes whose
// definition cannot be resolved are skipped.
func (b *Builder) AddInstance(g *Graph, dn *document.Node) *Node {
	def := b.Registry.DefFor(dn.Category, dn.Type)
	if def == nil {
		return nil
	}

	n := g.AddNode(dn.ElemName, dn.Category, dn.Type, Instance{Elem: dn, Def: def})
	restorePos(n, dn.Pos)

	// Pins mirror the definition's active ports, with the node's own
	// materialized inputs overriding definition defaults.
	for _, pd := range def.Inputs {
		n.AddInputPin(pd.Name, pd.Type, dn.InputByName(pd.Name))
	}
	for _, in := range dn.Inputs {
		if def.Input(in.ElemName) == nil {
			n.AddInputPin(in.ElemName, in.Type, in)
		}
	}
	for _, pd := range def.Outputs {
		n.AddOutputPin(pd.Name, pd.Type, dn.OutputByName(pd.Name))
	}
	for _, out := range dn.Outputs {
		if def.Output(out.ElemName) == nil {
			n.AddOutputPin(out.ElemName, out.Type, out)
		}
	}
	return n
}

// AddSubgraph creates a node for a nested node-graph; pins mirror the
// subgraph's declared inputs and outputs.
func (b *Builder) AddSubgraph(g *Graph, sub *document.NodeGraph) *Node {
	n := g.AddNode(sub.ElemName, "nodegraph", "", Subgraph{Elem: sub})
	restorePos(n, sub.Pos)
	for _, in := range sub.Inputs {
		n.AddInputPin(in.ElemName, in.Type, in)
	}
	for _, out := range sub.Outputs {
		n.AddOutputPin(out.ElemName, out.Type, out)
	}
	return n
}

// AddGraphInput creates a node for a graph-level input: a "value" input
// pin carrying the element plus a complementary "output" pin feeding
// consumers.
func (b *Builder) AddGraphInput(g *Graph, in *document.Input) *Node {
	n := g.AddNode(in.ElemName, "input", in.Type, GraphInput{Elem: in})
	restorePos(n, in.Pos)
	n.AddInputPin("value", in.Type, in)
	n.AddOutputPin("output", in.Type, nil)
	return n
}

// AddGraphOutput creates a node for a graph-level output: an "input"
// pin receiving the upstream result plus a complementary "output" pin.
func (b *Builder) AddGraphOutput(g *Graph, out *document.Output) *Node {
	n := g.AddNode(out.ElemName, "output", out.Type, GraphOutput{Elem: out})
	restorePos(n, out.Pos)
	n.AddInputPin("input", out.Type, nil)
	n.AddOutputPin("output", out.Type, out)
	return n
}

func restorePos(n *Node, pos *document.Position) {
	if pos == nil {
		return
	}
	n.SetPos(Point{X: pos.X * DefaultNodeSize.X, Y: pos.Y * DefaultNodeSize.Y})
}

// =============================================================================
// Edge resolution
// =============================================================================

// resolveDocEdges wires the document root scope. Subgraph wrapper
// inputs come first, then every concrete node's inputs, then standalone
// outputs; AddEdge's duplicate check keeps overlapping passes safe.
func (b *Builder) resolveDocEdges(g *Graph) {
	for _, n := range g.nodes {
		sub, ok := n.SubgraphElem()
		if !ok {
			continue
		}
		for _, in := range sub.Inputs {
			if in.NodeName == "" {
				continue
			}
			if up := g.NodeByName(in.NodeName); up != nil {
				g.AddEdge(up, n, in)
			}
		}
	}

	for _, n := range g.nodes {
		dn, ok := n.DocNode()
		if !ok {
			continue
		}
		for _, in := range dn.Inputs {
			if up := b.upstreamFor(g, in); up != nil {
				g.AddEdge(up, n, in)
			}
		}
	}

	for _, n := range g.nodes {
		gout, ok := n.variant.(GraphOutput)
		if !ok {
			continue
		}
		if gout.Elem.NodeName == "" {
			continue
		}
		if up := g.NodeByName(gout.Elem.NodeName); up != nil {
			g.AddEdge(up, n, nil)
		}
	}
}

// upstreamFor resolves the upstream node a document input references,
// preferring the nodegraph reference, then the connected node, then a
// standalone output element, then an interface binding. Unresolvable
// references yield nil (silent skip).
func (b *Builder) upstreamFor(g *Graph, in *document.Input) *Node {
	switch {
	case in.GraphName != "":
		return g.NodeByName(in.GraphName)
	case in.NodeName != "":
		return g.NodeByName(in.NodeName)
	case in.OutputName != "":
		return g.NodeByName(in.OutputName)
	case in.InterfaceName != "":
		return g.NodeByName(in.InterfaceName)
	}
	return nil
}

// resolveSubgraphEdges wires a subgraph scope in two passes: first a
// depth-first traversal upstream from each declared output (capturing
// direct and interface-forwarded connections), then a catch-all scan of
// every node's inputs for branches not reachable from any output.
func (b *Builder) resolveSubgraphEdges(g *Graph, sub *document.NodeGraph) {
	type pair struct{ up, down *Node }
	processed := make(map[pair]bool)

	var walk func(down *Node, dn *document.Node)
	walk = func(down *Node, dn *document.Node) {
		for _, in := range dn.Inputs {
			if in.InterfaceName != "" {
				if up := g.NodeByName(in.InterfaceName); up != nil {
					g.AddEdge(up, down, in)
				}
				continue
			}
			if in.NodeName == "" {
				continue
			}
			up := g.NodeByName(in.NodeName)
			if up == nil {
				continue
			}
			if processed[pair{up, down}] {
				continue
			}
			processed[pair{up, down}] = true
			g.AddEdge(up, down, in)
			if upDoc, ok := up.DocNode(); ok {
				walk(up, upDoc)
			}
		}
	}

	// Pass 1: trace upstream from declared outputs.
	for _, n := range g.nodes {
		gout, ok := n.variant.(GraphOutput)
		if !ok || gout.Elem.NodeName == "" {
			continue
		}
		up := g.NodeByName(gout.Elem.NodeName)
		if up == nil {
			continue
		}
		g.AddEdge(up, n, nil)
		if upDoc, ok := up.DocNode(); ok {
			walk(up, upDoc)
		}
	}

	// Pass 2: catch-all over every node's inputs for edges not reachable
	// from an output (disconnected branches).
	for _, n := range g.nodes {
		dn, ok := n.DocNode()
		if !ok {
			continue
		}
		for _, in := range dn.Inputs {
			var up *Node
			switch {
			case in.NodeName != "":
				up = g.NodeByName(in.NodeName)
			case in.InterfaceName != "":
				up = g.NodeByName(in.InterfaceName)
			}
			if up != nil {
				g.AddEdge(up, n, in)
			}
		}
	}
}

// SyncSubgraphPins appends pins for subgraph inputs and outputs
// declared after the wrapper node was built. Called when leaving a
// subgraph scope, where editing inside may have extended the
// subgraph's exposed signature.
func SyncSubgraphPins(n *Node) {
	sub, ok := n.SubgraphElem()
	if !ok {
		return
	}
	for _, in := range sub.Inputs {
		if n.InputPin(in.ElemName) == nil {
			n.AddInputPin(in.ElemName, in.Type, in)
		}
	}
	for _, out := range sub.Outputs {
		if n.OutputPin(out.ElemName) == nil {
			n.AddOutputPin(out.ElemName, out.Type, out)
		}
	}
}

// topoSort orders subgraph children upstream-first with alphabetical
// tie-breaking, giving deterministic node-creation order regardless of
// document child order.
func topoSort(nodes []*document.Node) []*document.Node {
	byName := make(map[string]*document.Node, len(nodes))
	for _, n := range nodes {
		byName[n.ElemName] = n
	}

	// indegree counts resolvable upstream references.
	indegree := make(map[string]int, len(nodes))
	consumers := make(map[string][]string)
	for _, n := range nodes {
		indegree[n.ElemName] += 0
		for _, in := range n.Inputs {
			if in.NodeName == "" {
				continue
			}
			if _, ok := byName[in.NodeName]; !ok {
				continue
			}
			indegree[n.ElemName]++
			consumers[in.NodeName] = append(consumers[in.NodeName], n.ElemName)
		}
	}

	var ready []string
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	var order []*document.Node
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, byName[name])

		var next []string
		for _, c := range consumers[name] {
			indegree[c]--
			if indegree[c] == 0 {
				next = append(next, c)
			}
		}
		sort.Strings(next)
		ready = append(ready, next...)
	}

	// Cycles should not occur in shading networks; append any leftovers
	// in document order so a malformed graph still builds.
	if len(order) < len(nodes) {
		seen := make(map[*document.Node]bool, len(order))
		for _, n := range order {
			seen[n] = true
		}
		for _, n := range nodes {
			if !seen[n] {
				order = append(order, n)
			}
		}
	}
	return order
}
