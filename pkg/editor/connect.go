package editor

import (
	"context"

	"github.com/matzehuels/shadegraph/pkg/document"
	sgerrors "github.com/matzehuels/shadegraph/pkg/errors"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/observability"
)

// Connect creates a connection between two pins. The pins may be given
// in either order (a link drag starts at whichever end the user grabbed);
// one must be an output and the other an input.
//
// Rejections (type mismatch, occupied input, read-only scope, missing
// shader implementation upstream of a subgraph) return a structured
// error, post a notice, and leave document and graph untouched. On
// success the document input is materialized and rewritten, the graph
// edge is added, and the preview is marked dirty — one transaction.
func (s *Session) Connect(a, b graph.ID) error {
	pa, pb := s.graph.Pin(a), s.graph.Pin(b)
	if pa == nil || pb == nil {
		return sgerrors.New(sgerrors.ErrCodePinNotFound, "pin not found in current scope")
	}
	out, in := pa, pb
	if out.Dir() == graph.In {
		out, in = in, out
	}

	if err := s.checkConnect(out, in); err != nil {
		return s.reject("connect", err)
	}

	up, down := out.Node(), in.Node()

	switch v := down.Variant().(type) {
	case graph.GraphOutput:
		v.Elem.NodeName = up.Name()
		v.Elem.OutputName = ""
		if len(up.Outputs()) > 1 {
			v.Elem.OutputName = out.Name()
		}
		s.graph.AddEdge(up, down, nil)

	case graph.Instance:
		din := in.Elem
		if din == nil {
			// Inputs at their definition default have no document element
			// yet; connecting is what materializes them.
			din = v.Elem.AddInput(in.Name(), in.Type())
			in.Elem = din
		}
		s.writeConnection(din, up, out)
		s.graph.AddEdge(up, down, din)

	case graph.Subgraph:
		s.writeConnection(in.Elem, up, out)
		s.graph.AddEdge(up, down, in.Elem)

	default:
		// Comment nodes carry no pins; GraphInput is rejected above.
		return s.reject("connect", sgerrors.New(sgerrors.ErrCodeRejectedEdit,
			"%s cannot accept connections", down.Name()))
	}

	s.markMaterialsDirty()
	observability.Editor().OnEdit(context.Background(), "connect", false)
	s.logger.Info("connected", "from", up.Name()+"."+out.Name(), "to", down.Name()+"."+in.Name())
	return nil
}

// CanConnect reports whether connecting the two pins would succeed,
// without mutating anything. The link-drag UI uses it to dim
// incompatible pins while a drag is in flight. A nil return means the
// connection is permitted.
func (s *Session) CanConnect(a, b graph.ID) error {
	pa, pb := s.graph.Pin(a), s.graph.Pin(b)
	if pa == nil || pb == nil {
		return sgerrors.New(sgerrors.ErrCodePinNotFound, "pin not found in current scope")
	}
	out, in := pa, pb
	if out.Dir() == graph.In {
		out, in = in, out
	}
	return s.checkConnect(out, in)
}

// checkConnect applies every connection precondition in rejection-notice
// order. It performs no mutation.
func (s *Session) checkConnect(out, in *graph.Pin) error {
	if out.Dir() != graph.Out || in.Dir() != graph.In {
		return sgerrors.New(sgerrors.ErrCodeRejectedEdit, "a connection needs one output and one input pin")
	}
	if s.ReadOnly() {
		return sgerrors.New(sgerrors.ErrCodeReadOnly, "graph is read only: edits are not saved to the library")
	}
	up, down := out.Node(), in.Node()
	if up == down {
		return sgerrors.New(sgerrors.ErrCodeRejectedEdit, "cannot connect %s to itself", up.Name())
	}
	if out.Type() != in.Type() {
		return sgerrors.New(sgerrors.ErrCodeTypeMismatch, "cannot connect %s to %s", out.Type(), in.Type())
	}
	if in.Connected() {
		return sgerrors.New(sgerrors.ErrCodePinConnected, "input %s.%s is already connected", down.Name(), in.Name())
	}
	if _, ok := down.Variant().(graph.GraphInput); ok {
		return sgerrors.New(sgerrors.ErrCodeRejectedEdit, "input %s holds a literal value", down.Name())
	}
	// A node without a shader-generator implementation cannot feed a
	// subgraph boundary: it would compile to nothing.
	if _, ok := down.Variant().(graph.Subgraph); ok {
		if def := up.Def(); def != nil {
			if _, err := s.registry.Implementation(def); err != nil {
				return sgerrors.Wrap(sgerrors.ErrCodeNoImplementation, err,
					"%s has no implementation and cannot enter a nodegraph", up.Name())
			}
		}
	}
	return nil
}

// writeConnection rewrites a document input's connection fields for the
// given upstream node, picking the reference form the document model
// resolves back to the same node on rebuild.
func (s *Session) writeConnection(din *document.Input, up *graph.Node, out *graph.Pin) {
	switch up.Variant().(type) {
	case graph.Instance:
		if len(up.Outputs()) > 1 {
			din.ConnectOutput(up.Name(), "", out.Name())
		} else {
			din.ConnectNode(up.Name())
		}
	case graph.Subgraph:
		din.ConnectOutput("", up.Name(), out.Name())
	case graph.GraphInput:
		din.BindInterface(up.Name())
	case graph.GraphOutput:
		din.ConnectOutput("", "", up.Name())
	}
}

// Disconnect removes the connection feeding an input pin and restores
// the pin's literal value to its definition default. Disconnecting an
// unconnected pin is a no-op.
func (s *Session) Disconnect(id graph.ID) error {
	pin := s.graph.Pin(id)
	if pin == nil {
		return sgerrors.New(sgerrors.ErrCodePinNotFound, "pin not found in current scope")
	}
	if pin.Dir() != graph.In {
		return sgerrors.New(sgerrors.ErrCodeRejectedEdit, "disconnect targets an input pin")
	}
	if s.ReadOnly() {
		return s.reject("disconnect", sgerrors.New(sgerrors.ErrCodeReadOnly,
			"graph is read only: edits are not saved to the library"))
	}
	if !pin.Connected() {
		return nil
	}

	down := pin.Node()
	for _, e := range s.graph.EdgesInto(down) {
		if !edgeFeedsPin(e, pin, down) {
			continue
		}
		s.graph.RemoveEdge(e.Up, e.Down, e.Input)
		break
	}
	s.restoreDefault(pin, down)

	s.markMaterialsDirty()
	observability.Editor().OnEdit(context.Background(), "disconnect", false)
	s.logger.Info("disconnected", "pin", down.Name()+"."+pin.Name())
	return nil
}

// edgeFeedsPin reports whether e is the edge materialized on pin.
// Edges into standalone outputs carry a nil input and feed the node's
// sole input pin.
func edgeFeedsPin(e *graph.Edge, pin *graph.Pin, down *graph.Node) bool {
	if e.Input != nil {
		return e.Input == pin.Elem
	}
	inputs := down.Inputs()
	return len(inputs) > 0 && inputs[0] == pin
}

// restoreDefault rewrites the document side of a just-disconnected pin:
// instance inputs fall back to their definition default, subgraph
// declared inputs to an empty literal, graph outputs clear their
// upstream reference.
func (s *Session) restoreDefault(pin *graph.Pin, down *graph.Node) {
	switch v := down.Variant().(type) {
	case graph.Instance:
		if pin.Elem != nil {
			pin.Elem.Disconnect(v.Def.DefaultValue(pin.Name()))
		}
	case graph.Subgraph:
		if pin.Elem != nil {
			pin.Elem.Disconnect("")
		}
	case graph.GraphOutput:
		v.Elem.NodeName = ""
		v.Elem.OutputName = ""
	}
	pin.SetConnected(false)
}
