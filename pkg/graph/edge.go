package graph

import "github.com/matzehuels/shadegraph/pkg/document"

// Edge is a directed relationship between two nodes: Up produces a
// value that Down consumes through Input (the connecting document
// input, nil for edges into standalone output elements).
type Edge struct {
	Up    *Node
	Down  *Node
	Input *document.Input
}

// EdgeExists reports whether an equivalent edge is already present.
//
// The duplicate check is undirected: an edge a→b with input x equals
// b→a with input x for dedup purposes, while direction still matters
// for graph semantics. This mirrors long-standing editor behavior;
// see DESIGN.md before tightening it.
func (g *Graph) EdgeExists(a, b *Node, input *document.Input) bool {
	for _, e := range g.edges {
		if e.Input != input {
			continue
		}
		if (e.Up == a && e.Down == b) || (e.Up == b && e.Down == a) {
			return true
		}
	}
	return false
}

// AddEdge appends an edge unless an equivalent one exists, and keeps
// the endpoint pins' adjacency in sync: the connecting input pin is
// marked connected, and the upstream pin gains the downstream pin as a
// target. Returns false when the edge was a duplicate.
func (g *Graph) AddEdge(up, down *Node, input *document.Input) bool {
	if g.EdgeExists(up, down, input) {
		return false
	}
	g.edges = append(g.edges, &Edge{Up: up, Down: down, Input: input})

	downPin := g.downPinFor(down, input)
	upPin := g.upPinFor(up, input)
	if downPin != nil {
		downPin.SetConnected(true)
	}
	if upPin != nil {
		if downPin != nil {
			upPin.AddTarget(downPin)
		} else {
			upPin.SetConnected(true)
		}
	}
	return true
}

// RemoveEdge removes the edge between up and down through input and
// detaches the pin adjacency it created. Removing a missing edge is a
// no-op.
func (g *Graph) RemoveEdge(up, down *Node, input *document.Input) {
	for i, e := range g.edges {
		if e.Up != up || e.Down != down || e.Input != input {
			continue
		}
		g.edges = append(g.edges[:i], g.edges[i+1:]...)

		downPin := g.downPinFor(down, input)
		upPin := g.upPinFor(up, input)
		if upPin != nil && downPin != nil {
			upPin.RemoveTarget(downPin)
		}
		if downPin != nil {
			downPin.SetConnected(false)
		}
		return
	}
}

// EdgesInto returns the edges whose downstream endpoint is n.
func (g *Graph) EdgesInto(n *Node) []*Edge {
	var edges []*Edge
	for _, e := range g.edges {
		if e.Down == n {
			edges = append(edges, e)
		}
	}
	return edges
}

// EdgesOut returns the edges whose upstream endpoint is n.
func (g *Graph) EdgesOut(n *Node) []*Edge {
	var edges []*Edge
	for _, e := range g.edges {
		if e.Up == n {
			edges = append(edges, e)
		}
	}
	return edges
}

// Upstream returns the nodes feeding n, in edge order.
func (g *Graph) Upstream(n *Node) []*Node {
	var nodes []*Node
	for _, e := range g.edges {
		if e.Down == n {
			nodes = append(nodes, e.Up)
		}
	}
	return nodes
}

// Downstream returns the nodes consuming n, in edge order.
func (g *Graph) Downstream(n *Node) []*Node {
	var nodes []*Node
	for _, e := range g.edges {
		if e.Up == n {
			nodes = append(nodes, e.Down)
		}
	}
	return nodes
}

// downPinFor locates the input pin on down that materializes input,
// falling back to the node's first input pin for nil inputs (edges into
// standalone output elements).
func (g *Graph) downPinFor(down *Node, input *document.Input) *Pin {
	if input == nil {
		if len(down.inputs) > 0 {
			return down.inputs[0]
		}
		return nil
	}
	for _, p := range down.inputs {
		if p.Elem == input {
			return p
		}
	}
	// The document input may have been materialized after the pin was
	// built; match by name as a fallback.
	return down.InputPin(input.ElemName)
}

// upPinFor locates the output pin on up that feeds input: the named
// output for multi-output upstreams, otherwise the primary output.
func (g *Graph) upPinFor(up *Node, input *document.Input) *Pin {
	if input != nil && input.OutputName != "" {
		if p := up.OutputPin(input.OutputName); p != nil {
			return p
		}
	}
	return up.PrimaryOutput()
}

// Link is a render-ready connection between two pin ids: From is the
// upstream output pin, To the downstream input pin. Links are derived
// from pin adjacency on demand and are never independently
// authoritative.
type Link struct {
	From ID
	To   ID
}

// Links derives the current link set from output-pin adjacency.
// Order is deterministic: nodes in creation order, pins in declaration
// order, targets in connection order.
func (g *Graph) Links() []Link {
	var links []Link
	for _, n := range g.nodes {
		for _, out := range n.outputs {
			for _, t := range out.targets {
				links = append(links, Link{From: out.id, To: t.id})
			}
		}
	}
	return links
}
