// Package document implements the shading-network document model.
//
// A document is a tree of typed elements: concrete nodes, nested
// node-graphs, and graph-level inputs and outputs. Connections between
// elements are stored as named references on inputs and outputs
// (connected node, connected output, interface name), mirroring how
// shading documents are serialized on disk.
//
// The document is the authoritative store for everything the editor
// persists: element names, types, literal values, connections, and
// normalized node positions. The UI-facing graph in pkg/graph is rebuilt
// from a document scope and never outlives it.
//
// # Scopes
//
// Editing happens against a [Scope]: either the document root or a single
// [NodeGraph]. Both expose the same child accessors, so the graph builder
// and the synchronization engine are agnostic to nesting depth.
//
// # Ownership
//
// The document is mutated transactionally per user action by exactly one
// goroutine (the editor session). It is not safe for concurrent use.
package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for document operations.
var (
	// ErrNotFound is returned when a named child element does not exist.
	ErrNotFound = errors.New("element not found")

	// ErrDuplicateName is returned when adding a child whose name is
	// already taken within the scope.
	ErrDuplicateName = errors.New("duplicate element name")

	// ErrInvalidName is returned when an element name is empty.
	ErrInvalidName = errors.New("element name must not be empty")
)

// Document is the root of a shading-network document tree.
//
// The zero value is usable as an empty document; use [New] to set a name.
type Document struct {
	DocName string       `yaml:"name,omitempty"`
	Version string       `yaml:"version,omitempty"`
	URI     string       `yaml:"-"`
	Nodes   []*Node      `yaml:"nodes,omitempty"`
	Graphs  []*NodeGraph `yaml:"nodegraphs,omitempty"`
	Inputs  []*Input     `yaml:"inputs,omitempty"`
	Outputs []*Output    `yaml:"outputs,omitempty"`
}

// New creates an empty document with the given name.
func New(name string) *Document {
	return &Document{DocName: name, Version: "1.39"}
}

// Scope is a graph element that owns child nodes, inputs and outputs.
// Both [Document] (the root) and [NodeGraph] (a nested subgraph)
// implement it, so callers can edit either without caring about depth.
type Scope interface {
	// Name returns the scope's element name ("" for the document root).
	Name() string

	// SourceURI returns the URI the scope was loaded from. Elements that
	// arrived via library import carry the library's URI, which is what
	// the editor's read-only predicate keys on.
	SourceURI() string

	// ChildNodes returns the concrete node children in document order.
	ChildNodes() []*Node

	// ChildInputs returns the graph-level input children.
	ChildInputs() []*Input

	// ChildOutputs returns the graph-level output children.
	ChildOutputs() []*Output

	// NodeByName returns the child node with the given name, or nil.
	NodeByName(name string) *Node

	// InputByName returns the graph-level input with the given name, or nil.
	InputByName(name string) *Input

	// OutputByName returns the graph-level output with the given name, or nil.
	OutputByName(name string) *Output

	// AddNode appends a node child. The name must be unique in the scope.
	AddNode(n *Node) error

	// AddInput appends a graph-level input child.
	AddInput(in *Input) error

	// AddOutput appends a graph-level output child.
	AddOutput(out *Output) error

	// RemoveChild removes the child (node, input or output) with the
	// given name. Removing a missing name is a no-op.
	RemoveChild(name string)

	// ValidName returns a name unique within the scope, derived from base
	// by appending a numeric suffix when needed.
	ValidName(base string) string
}

var (
	_ Scope = (*Document)(nil)
	_ Scope = (*NodeGraph)(nil)
)

// Name returns the document name. The document root reports "" as its
// scope name so breadcrumbs can distinguish it from subgraph scopes.
func (d *Document) Name() string { return "" }

// SourceURI returns the URI the document was loaded from.
func (d *Document) SourceURI() string { return d.URI }

// ChildNodes returns the document's concrete node children.
func (d *Document) ChildNodes() []*Node { return d.Nodes }

// ChildInputs returns the document's graph-level inputs.
func (d *Document) ChildInputs() []*Input { return d.Inputs }

// ChildOutputs returns the document's graph-level outputs.
func (d *Document) ChildOutputs() []*Output { return d.Outputs }

// NodeGraphs returns the document's nested node-graph children.
func (d *Document) NodeGraphs() []*NodeGraph { return d.Graphs }

// NodeByName returns the node child with the given name, or nil.
func (d *Document) NodeByName(name string) *Node {
	for _, n := range d.Nodes {
		if n.ElemName == name {
			return n
		}
	}
	return nil
}

// GraphByName returns the node-graph child with the given name, or nil.
func (d *Document) GraphByName(name string) *NodeGraph {
	for _, g := range d.Graphs {
		if g.ElemName == name {
			return g
		}
	}
	return nil
}

// InputByName returns the graph-level input with the given name, or nil.
func (d *Document) InputByName(name string) *Input {
	for _, in := range d.Inputs {
		if in.ElemName == name {
			return in
		}
	}
	return nil
}

// OutputByName returns the graph-level output with the given name, or nil.
func (d *Document) OutputByName(name string) *Output {
	for _, out := range d.Outputs {
		if out.ElemName == name {
			return out
		}
	}
	return nil
}

// AddNode appends a node child to the document.
func (d *Document) AddNode(n *Node) error {
	if err := d.checkName(n.ElemName); err != nil {
		return err
	}
	d.Nodes = append(d.Nodes, n)
	return nil
}

// AddGraph appends a node-graph child to the document.
func (d *Document) AddGraph(g *NodeGraph) error {
	if err := d.checkName(g.ElemName); err != nil {
		return err
	}
	d.Graphs = append(d.Graphs, g)
	return nil
}

// AddInput appends a graph-level input child to the document.
func (d *Document) AddInput(in *Input) error {
	if err := d.checkName(in.ElemName); err != nil {
		return err
	}
	d.Inputs = append(d.Inputs, in)
	return nil
}

// AddOutput appends a graph-level output child to the document.
func (d *Document) AddOutput(out *Output) error {
	if err := d.checkName(out.ElemName); err != nil {
		return err
	}
	d.Outputs = append(d.Outputs, out)
	return nil
}

// RemoveChild removes the child element with the given name.
// Node-graph children are removed too; a missing name is a no-op.
func (d *Document) RemoveChild(name string) {
	d.Nodes = removeNamed(d.Nodes, name)
	d.Graphs = removeNamed(d.Graphs, name)
	d.Inputs = removeNamed(d.Inputs, name)
	d.Outputs = removeNamed(d.Outputs, name)
}

// HasChild reports whether any child element uses the given name.
func (d *Document) HasChild(name string) bool {
	return d.NodeByName(name) != nil || d.GraphByName(name) != nil ||
		d.InputByName(name) != nil || d.OutputByName(name) != nil
}

// ValidName returns a document-unique name derived from base. A free
// base is kept as-is; a taken "mix" becomes "mix2", "mix3", ... until
// an unused name is found.
func (d *Document) ValidName(base string) string {
	return validName(base, d.HasChild)
}

func (d *Document) checkName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	if d.HasChild(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	return nil
}

// named is satisfied by every child element type.
type named interface {
	childName() string
}

func removeNamed[T named](elems []T, name string) []T {
	for i, e := range elems {
		if e.childName() == name {
			return append(elems[:i:i], elems[i+1:]...)
		}
	}
	return elems
}

// validName derives a unique name from base using the taken predicate.
// A trailing digit run on base is stripped first so "mix3" renames to
// "mix4" rather than "mix32".
func validName(base string, taken func(string) bool) string {
	if base == "" {
		base = "node"
	}
	if !taken(base) {
		return base
	}
	stem := strings.TrimRightFunc(base, func(r rune) bool { return r >= '0' && r <= '9' })
	if stem == "" {
		stem = base
	}
	for i := 2; ; i++ {
		candidate := stem + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
