// Package graph implements the UI-facing graph for one document scope.
//
// The graph is a derived view: the builder rebuilds it in full from a
// [document.Scope] (the root document or a single subgraph) whenever the
// scope changes, and the editor keeps it consistent with the document
// under live editing. Nodes wrap exactly one document element through a
// sealed variant union; pins are typed connection endpoints; edges form
// a deduplicated node-level adjacency from which render-ready links are
// derived on demand.
//
// # Identity
//
// Node and pin ids are generation-scoped: every rebuild starts a new
// generation, so an id captured before entering a subgraph can never
// collide with (or accidentally resolve to) an element of the new scope.
//
// # Ownership
//
// A Graph is owned by exactly one editor session and mutated only on
// the UI thread, one discrete action at a time. It is not safe for
// concurrent use.
package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph operations.
var (
	// ErrPinNotFound is returned when a pin id does not resolve in the
	// current generation.
	ErrPinNotFound = errors.New("pin not found")

	// ErrNodeNotFound is returned when a node id does not resolve in the
	// current generation.
	ErrNodeNotFound = errors.New("node not found")
)

// ID identifies a node or pin within one graph generation.
//
// Gen is the rebuild generation the id was minted in; Index is the
// arena slot within that generation. The zero ID is invalid.
type ID struct {
	Gen   uint32
	Index uint32
}

// Valid reports whether the id was minted by a graph (non-zero).
func (id ID) Valid() bool { return id.Gen != 0 }

// String formats the id as gen:index for logs and notices.
func (id ID) String() string { return fmt.Sprintf("%d:%d", id.Gen, id.Index) }

// Graph holds the node, pin and edge collections for one scope.
type Graph struct {
	gen   uint32
	next  uint32
	nodes []*Node
	edges []*Edge

	byNode map[ID]*Node
	byPin  map[ID]*Pin
}

// generation is the process-wide rebuild counter. Single mutator, so a
// plain variable suffices.
var generation uint32

// New creates an empty graph in a fresh generation.
func New() *Graph {
	generation++
	return &Graph{
		gen:    generation,
		byNode: make(map[ID]*Node),
		byPin:  make(map[ID]*Pin),
	}
}

// Generation returns the graph's rebuild generation.
func (g *Graph) Generation() uint32 { return g.gen }

// Nodes returns the graph's nodes in creation order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the graph's edges in insertion order.
func (g *Graph) Edges() []*Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node resolves a node id. Returns nil for ids from other generations.
func (g *Graph) Node(id ID) *Node { return g.byNode[id] }

// Pin resolves a pin id. Returns nil for ids from other generations.
func (g *Graph) Pin(id ID) *Pin { return g.byPin[id] }

// NodeByName returns the node with the given display name, or nil.
func (g *Graph) NodeByName(name string) *Node {
	for _, n := range g.nodes {
		if n.name == name {
			return n
		}
	}
	return nil
}

// newID mints the next id in this graph's generation.
func (g *Graph) newID() ID {
	g.next++
	return ID{Gen: g.gen, Index: g.next}
}

// AddNode creates a node for the given variant and registers it.
// Pins are added separately by the builder (or by editor operations that
// materialize pins after construction).
func (g *Graph) AddNode(name, category, typ string, v Variant) *Node {
	n := &Node{
		id:       g.newID(),
		graph:    g,
		name:     name,
		category: category,
		typ:      typ,
		level:    -1,
		variant:  v,
	}
	g.nodes = append(g.nodes, n)
	g.byNode[n.id] = n
	return n
}

// RemoveNode unregisters a node and every edge touching it.
// The caller is responsible for the matching document mutation.
func (g *Graph) RemoveNode(n *Node) {
	for i := len(g.edges) - 1; i >= 0; i-- {
		e := g.edges[i]
		if e.Up == n || e.Down == n {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
		}
	}
	for _, p := range n.inputs {
		delete(g.byPin, p.id)
	}
	for _, p := range n.outputs {
		delete(g.byPin, p.id)
	}
	delete(g.byNode, n.id)
	for i, cand := range g.nodes {
		if cand == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
}
