package editor

import (
	"context"

	"github.com/matzehuels/shadegraph/pkg/document"
	sgerrors "github.com/matzehuels/shadegraph/pkg/errors"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/nodedef"
	"github.com/matzehuels/shadegraph/pkg/observability"
)

// AddNode creates a new node at pos in the active scope and returns it.
//
// category selects what gets created: "input" and "output" create
// graph-level ports of the given type, "nodegraph" creates an empty
// subgraph (document root only), "comment" creates a free-floating
// annotation with no document element, and anything else instantiates a
// node definition resolved by (category, typ).
func (s *Session) AddNode(category, typ string, pos graph.Point) (*graph.Node, error) {
	if s.ReadOnly() {
		return nil, s.reject("add", sgerrors.New(sgerrors.ErrCodeReadOnly,
			"graph is read only: edits are not saved to the library"))
	}

	var n *graph.Node
	switch category {
	case "input":
		in := &document.Input{ElemName: s.scope.ValidName("input"), Type: typ}
		if err := s.scope.AddInput(in); err != nil {
			return nil, sgerrors.Wrap(sgerrors.ErrCodeInvalidName, err, "add input")
		}
		n = s.builder.AddGraphInput(s.graph, in)

	case "output":
		out := &document.Output{ElemName: s.scope.ValidName("output"), Type: typ}
		if err := s.scope.AddOutput(out); err != nil {
			return nil, sgerrors.Wrap(sgerrors.ErrCodeInvalidName, err, "add output")
		}
		n = s.builder.AddGraphOutput(s.graph, out)

	case "nodegraph":
		doc, ok := s.scope.(*document.Document)
		if !ok {
			return nil, s.reject("add", sgerrors.New(sgerrors.ErrCodeRejectedEdit,
				"nodegraphs cannot be nested"))
		}
		sub := &document.NodeGraph{ElemName: doc.ValidName("nodegraph")}
		if err := doc.AddGraph(sub); err != nil {
			return nil, sgerrors.Wrap(sgerrors.ErrCodeInvalidName, err, "add nodegraph")
		}
		n = s.builder.AddSubgraph(s.graph, sub)

	case "comment":
		n = s.graph.AddNode(s.scope.ValidName("comment"), "comment", "", graph.Comment{Text: ""})

	default:
		def := s.registry.DefFor(category, typ)
		if def == nil {
			return nil, sgerrors.New(sgerrors.ErrCodeNotFound, "no definition for %s (%s)", category, typ)
		}
		// Materials are renderable terminals and only live at the
		// document root.
		if def.Type == nodedef.TypeMaterial {
			if _, ok := s.scope.(*document.NodeGraph); ok {
				return nil, s.reject("add", sgerrors.New(sgerrors.ErrCodeRejectedEdit,
					"material nodes belong at the document level"))
			}
		}
		dn := &document.Node{
			ElemName: s.scope.ValidName(category),
			Category: category,
			Type:     def.Type,
		}
		if err := s.scope.AddNode(dn); err != nil {
			return nil, sgerrors.Wrap(sgerrors.ErrCodeInvalidName, err, "add node")
		}
		n = s.builder.AddInstance(s.graph, dn)
	}

	n.SetPos(pos)
	s.SavePositions()
	s.markMaterialsDirty()
	observability.Editor().OnEdit(context.Background(), "add", false)
	s.logger.Info("node added", "name", n.Name(), "category", category)
	return n, nil
}

// DeleteNode removes a node from the scope, repairing its fan-out:
// every downstream input the node fed falls back to its definition
// default, so the document never keeps a dangling reference.
func (s *Session) DeleteNode(id graph.ID) error {
	n := s.graph.Node(id)
	if n == nil {
		return sgerrors.New(sgerrors.ErrCodeNodeNotFound, "node %s not found in current scope", id)
	}
	if s.ReadOnly() {
		return s.reject("delete", sgerrors.New(sgerrors.ErrCodeReadOnly,
			"graph is read only: edits are not saved to the library"))
	}

	// Repair downstream consumers before the node disappears.
	for _, e := range s.graph.EdgesOut(n) {
		pin := downPinOf(e)
		s.graph.RemoveEdge(e.Up, e.Down, e.Input)
		if pin != nil {
			s.restoreDefault(pin, e.Down)
		}
	}
	for _, e := range s.graph.EdgesInto(n) {
		s.graph.RemoveEdge(e.Up, e.Down, e.Input)
	}

	// Interface bindings referencing a deleted declared input resolve to
	// nothing; clear them in the document too.
	if gi, ok := n.Variant().(graph.GraphInput); ok {
		if sub, isSub := s.scope.(*document.NodeGraph); isSub {
			document.PatchInterfaceRefs(sub, gi.Elem.ElemName, "")
		}
	}

	if _, isComment := n.Variant().(graph.Comment); !isComment {
		s.scope.RemoveChild(n.Name())
	}
	s.graph.RemoveNode(n)
	s.dropFromSelection(id)

	s.markMaterialsDirty()
	observability.Editor().OnEdit(context.Background(), "delete", false)
	s.logger.Info("node deleted", "name", n.Name())
	return nil
}

// DeleteSelected deletes every selected node. The first error aborts;
// already-deleted nodes stay deleted.
func (s *Session) DeleteSelected() error {
	ids := append([]graph.ID(nil), s.selection...)
	for _, id := range ids {
		if err := s.DeleteNode(id); err != nil {
			return err
		}
	}
	return nil
}

// SetInputValue edits the literal value of an input pin and pushes the
// change straight to the running preview as a uniform update, skipping
// a shader recompile. Connected pins reject the edit.
func (s *Session) SetInputValue(id graph.ID, value string) error {
	pin := s.graph.Pin(id)
	if pin == nil {
		return sgerrors.New(sgerrors.ErrCodePinNotFound, "pin not found in current scope")
	}
	if pin.Dir() != graph.In {
		return sgerrors.New(sgerrors.ErrCodeRejectedEdit, "values are set on input pins")
	}
	if s.ReadOnly() {
		return s.reject("set-value", sgerrors.New(sgerrors.ErrCodeReadOnly,
			"graph is read only: edits are not saved to the library"))
	}
	if pin.Connected() {
		return s.reject("set-value", sgerrors.New(sgerrors.ErrCodePinConnected,
			"input %s.%s is connected; disconnect it to set a value", pin.Node().Name(), pin.Name()))
	}

	n := pin.Node()
	din := pin.Elem
	if din == nil {
		dn, ok := n.DocNode()
		if !ok {
			return sgerrors.New(sgerrors.ErrCodeRejectedEdit, "%s has no editable values", n.Name())
		}
		din = dn.AddInput(pin.Name(), pin.Type())
		pin.Elem = din
	}
	din.Value = value

	s.preview.ModifyUniform(n.Name()+"."+pin.Name(), value)
	observability.Editor().OnEdit(context.Background(), "set-value", false)
	return nil
}

// downPinOf locates the input pin an edge is materialized on.
func downPinOf(e *graph.Edge) *graph.Pin {
	if e.Input == nil {
		if pins := e.Down.Inputs(); len(pins) > 0 {
			return pins[0]
		}
		return nil
	}
	for _, p := range e.Down.Inputs() {
		if p.Elem == e.Input {
			return p
		}
	}
	return e.Down.InputPin(e.Input.ElemName)
}

func (s *Session) dropFromSelection(id graph.ID) {
	for i, cand := range s.selection {
		if cand == id {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			return
		}
	}
}
