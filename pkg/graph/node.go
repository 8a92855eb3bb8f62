package graph

import (
	"github.com/matzehuels/shadegraph/pkg/document"
	"github.com/matzehuels/shadegraph/pkg/nodedef"
)

// Point is a 2D position in editor canvas units.
type Point struct {
	X float64
	Y float64
}

// Variant is the sealed union of things a graph node can wrap: a
// concrete node instance, a graph-level input or output, a nested
// subgraph, or a free-floating comment. Exactly one variant backs each
// node; switch on the concrete type to recover the document element.
type Variant interface {
	isVariant()
}

// Instance wraps a concrete document node and its resolved definition.
type Instance struct {
	Elem *document.Node
	Def  *nodedef.NodeDef
}

// GraphInput wraps a graph-level input element.
type GraphInput struct {
	Elem *document.Input
}

// GraphOutput wraps a graph-level output element.
type GraphOutput struct {
	Elem *document.Output
}

// Subgraph wraps a nested node-graph exposed as a single node.
type Subgraph struct {
	Elem *document.NodeGraph
}

// Comment is a free-floating annotation with no document element.
type Comment struct {
	Text string
}

func (Instance) isVariant()    {}
func (GraphInput) isVariant()  {}
func (GraphOutput) isVariant() {}
func (Subgraph) isVariant()    {}
func (Comment) isVariant()     {}

// Node represents one element of the active scope in the editor.
//
// Nodes are created by the builder when traversing the document and
// destroyed on deletion or when the scope is rebuilt; they are never
// persisted across subgraph navigation.
type Node struct {
	id       ID
	graph    *Graph
	name     string
	category string
	typ      string
	pos      Point
	level    int
	inputs   []*Pin
	outputs  []*Pin
	variant  Variant
}

// ID returns the node's generation-scoped id.
func (n *Node) ID() ID { return n.id }

// Name returns the node's display name (the document element name).
func (n *Node) Name() string { return n.name }

// SetName updates the display name after a document rename.
func (n *Node) SetName(name string) { n.name = name }

// Category returns the node's category tag ("mix", "image", ...).
// Graph inputs and outputs report "input" and "output"; subgraphs
// report "nodegraph"; comments report "comment".
func (n *Node) Category() string { return n.category }

// Type returns the node's value type tag.
func (n *Node) Type() string { return n.typ }

// Variant returns the sealed variant backing this node.
func (n *Node) Variant() Variant { return n.variant }

// SetVariant replaces the backing variant. Used for comment text edits;
// swapping a node between variant kinds is not supported.
func (n *Node) SetVariant(v Variant) { n.variant = v }

// Level returns the node's topological level (-1 = unset).
func (n *Node) Level() int { return n.level }

// SetLevel updates the topological level.
func (n *Node) SetLevel(l int) { n.level = l }

// Pos returns the node's current canvas position.
func (n *Node) Pos() Point { return n.pos }

// SetPos moves the node.
func (n *Node) SetPos(p Point) { n.pos = p }

// Inputs returns the node's ordered input pins.
func (n *Node) Inputs() []*Pin { return n.inputs }

// Outputs returns the node's ordered output pins.
func (n *Node) Outputs() []*Pin { return n.outputs }

// InputPin returns the input pin with the given name, or nil.
func (n *Node) InputPin(name string) *Pin {
	for _, p := range n.inputs {
		if p.name == name {
			return p
		}
	}
	return nil
}

// OutputPin returns the output pin with the given name, or nil.
// An empty name returns the primary (first) output pin.
func (n *Node) OutputPin(name string) *Pin {
	if name == "" {
		return n.PrimaryOutput()
	}
	for _, p := range n.outputs {
		if p.name == name {
			return p
		}
	}
	return nil
}

// PrimaryOutput returns the node's first output pin, or nil.
func (n *Node) PrimaryOutput() *Pin {
	if len(n.outputs) == 0 {
		return nil
	}
	return n.outputs[0]
}

// AddInputPin appends a typed input pin backed by elem (which may be
// nil for pins still at their definition default).
func (n *Node) AddInputPin(name, typ string, elem *document.Input) *Pin {
	p := &Pin{
		id:   n.graph.newID(),
		name: name,
		typ:  typ,
		dir:  In,
		node: n,
		Elem: elem,
	}
	if elem != nil && elem.Connected() {
		p.connected = true
	}
	n.inputs = append(n.inputs, p)
	n.graph.byPin[p.id] = p
	return p
}

// AddOutputPin appends a typed output pin, optionally backed by a
// document output element.
func (n *Node) AddOutputPin(name, typ string, elem *document.Output) *Pin {
	p := &Pin{
		id:      n.graph.newID(),
		name:    name,
		typ:     typ,
		dir:     Out,
		node:    n,
		OutElem: elem,
	}
	n.outputs = append(n.outputs, p)
	n.graph.byPin[p.id] = p
	return p
}

// Def returns the resolved node definition for instance nodes, or nil.
func (n *Node) Def() *nodedef.NodeDef {
	if inst, ok := n.variant.(Instance); ok {
		return inst.Def
	}
	return nil
}

// DocNode returns the wrapped document node for instance nodes.
func (n *Node) DocNode() (*document.Node, bool) {
	inst, ok := n.variant.(Instance)
	if !ok {
		return nil, false
	}
	return inst.Elem, true
}

// SubgraphElem returns the wrapped node-graph for subgraph nodes.
func (n *Node) SubgraphElem() (*document.NodeGraph, bool) {
	sg, ok := n.variant.(Subgraph)
	if !ok {
		return nil, false
	}
	return sg.Elem, true
}

// IsTerminal reports whether the node is a graph-level output or a
// material-typed node: the starting points for layout's upstream walk.
func (n *Node) IsTerminal() bool {
	if _, ok := n.variant.(GraphOutput); ok {
		return true
	}
	return n.typ == nodedef.TypeMaterial
}
