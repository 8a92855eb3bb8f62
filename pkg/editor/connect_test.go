package editor

import (
	"testing"

	"github.com/matzehuels/shadegraph/pkg/document"
	sgerrors "github.com/matzehuels/shadegraph/pkg/errors"
	"github.com/matzehuels/shadegraph/pkg/graph"
)

func TestConnectMaterializesInput(t *testing.T) {
	doc := sceneDoc()
	s, pr := newTestSession(t, doc)

	out := mustOut(t, s, "image1", "out")
	bg := mustPin(t, s, "mix1", "bg")
	if bg.Elem != nil {
		t.Fatal("bg pin already materialized")
	}
	before := s.Graph().EdgeCount()

	if err := s.Connect(out.ID(), bg.ID()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	din := doc.NodeByName("mix1").InputByName("bg")
	if din == nil {
		t.Fatal("document input not materialized")
	}
	if din.NodeName != "image1" {
		t.Errorf("connection ref = %q, want image1", din.NodeName)
	}
	if !bg.Connected() || bg.Elem != din {
		t.Error("pin state not synced with document")
	}
	if s.Graph().EdgeCount() != before+1 {
		t.Errorf("edges = %d, want %d", s.Graph().EdgeCount(), before+1)
	}
	if !pr.Compiling() {
		t.Error("successful connect did not mark materials dirty")
	}
}

func TestConnectOrderAgnostic(t *testing.T) {
	s, _ := newTestSession(t, sceneDoc())
	out := mustOut(t, s, "image1", "out")
	bg := mustPin(t, s, "mix1", "bg")

	// Input first, output second: the drag started at the input end.
	if err := s.Connect(bg.ID(), out.ID()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !bg.Connected() {
		t.Error("pin not connected")
	}
}

func TestConnectRejections(t *testing.T) {
	tests := []struct {
		name string
		pins func(t *testing.T, s *Session) (a, b graph.ID)
		code sgerrors.Code
	}{
		{
			name: "type mismatch",
			pins: func(t *testing.T, s *Session) (graph.ID, graph.ID) {
				return mustOut(t, s, "c1", "out").ID(), mustPin(t, s, "mix1", "bg").ID()
			},
			code: sgerrors.ErrCodeTypeMismatch,
		},
		{
			name: "input already connected",
			pins: func(t *testing.T, s *Session) (graph.ID, graph.ID) {
				return mustOut(t, s, "c1", "out").ID(), mustPin(t, s, "mix1", "mix").ID()
			},
			code: sgerrors.ErrCodePinConnected,
		},
		{
			name: "self connection",
			pins: func(t *testing.T, s *Session) (graph.ID, graph.ID) {
				return mustOut(t, s, "mix1", "out").ID(), mustPin(t, s, "mix1", "bg").ID()
			},
			code: sgerrors.ErrCodeRejectedEdit,
		},
		{
			name: "two inputs",
			pins: func(t *testing.T, s *Session) (graph.ID, graph.ID) {
				return mustPin(t, s, "mix1", "bg").ID(), mustPin(t, s, "surface1", "base").ID()
			},
			code: sgerrors.ErrCodeRejectedEdit,
		},
		{
			name: "into a graph input",
			pins: func(t *testing.T, s *Session) (graph.ID, graph.ID) {
				return mustOut(t, s, "c1", "out").ID(), mustPin(t, s, "amount", "value").ID()
			},
			code: sgerrors.ErrCodeRejectedEdit,
		},
		{
			name: "no implementation into nodegraph",
			pins: func(t *testing.T, s *Session) (graph.ID, graph.ID) {
				return mustOut(t, s, "ao1", "out").ID(), mustPin(t, s, "sub", "level").ID()
			},
			code: sgerrors.ErrCodeNoImplementation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sceneDoc()
			doc.AddNode(&document.Node{ElemName: "c1", Category: "constant", Type: "float"})
			doc.AddNode(&document.Node{ElemName: "ao1", Category: "ambientocclusion", Type: "float"})
			doc.AddInput(&document.Input{ElemName: "amount", Type: "float", Value: "1.0"})
			doc.AddGraph(&document.NodeGraph{ElemName: "sub",
				Inputs: []*document.Input{{ElemName: "level", Type: "float", Value: "0.0"}}})

			s, pr := newTestSession(t, doc)
			// Pre-connect mix1.mix so the occupied-input case has a target.
			if err := s.Connect(mustOut(t, s, "amount", "output").ID(), mustPin(t, s, "mix1", "mix").ID()); err != nil {
				t.Fatalf("setup connect: %v", err)
			}
			pr.SetMaterialCompilation(false)
			edges := s.Graph().EdgeCount()
			notices := len(s.ActiveNotices())

			a, b := tt.pins(t, s)
			err := s.Connect(a, b)
			if !sgerrors.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
			if s.Graph().EdgeCount() != edges {
				t.Error("rejected connect changed the edge set")
			}
			if len(s.ActiveNotices()) != notices+1 {
				t.Error("rejection posted no notice")
			}
			if pr.Compiling() {
				t.Error("rejected connect marked materials dirty")
			}
		})
	}
}

func TestCanConnectDoesNotMutate(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)
	out := mustOut(t, s, "image1", "out")
	bg := mustPin(t, s, "mix1", "bg")
	edges := s.Graph().EdgeCount()

	if err := s.CanConnect(out.ID(), bg.ID()); err != nil {
		t.Errorf("CanConnect on valid pair: %v", err)
	}
	if err := s.CanConnect(out.ID(), mustPin(t, s, "surface1", "base").ID()); !sgerrors.Is(err, sgerrors.ErrCodeTypeMismatch) {
		t.Errorf("CanConnect mismatch error = %v", err)
	}

	if s.Graph().EdgeCount() != edges || bg.Connected() {
		t.Error("CanConnect mutated the graph")
	}
	if doc.NodeByName("mix1").InputByName("bg") != nil {
		t.Error("CanConnect materialized a document input")
	}
}

func TestConnectMultiOutputUpstream(t *testing.T) {
	doc := sceneDoc()
	doc.AddNode(&document.Node{ElemName: "sep1", Category: "separate3", Type: "multioutput"})
	doc.AddNode(&document.Node{ElemName: "clamp1", Category: "clamp", Type: "float"})
	s, _ := newTestSession(t, doc)

	outg := mustOut(t, s, "sep1", "outg")
	in := mustPin(t, s, "clamp1", "in")
	if err := s.Connect(outg.ID(), in.ID()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	din := doc.NodeByName("clamp1").InputByName("in")
	if din.NodeName != "sep1" || din.OutputName != "outg" {
		t.Errorf("multi-output ref = %q/%q, want sep1/outg", din.NodeName, din.OutputName)
	}
}

func TestConnectGraphOutput(t *testing.T) {
	doc := sceneDoc()
	doc.AddOutput(&document.Output{ElemName: "out2", Type: "material"})
	s, _ := newTestSession(t, doc)

	out := mustOut(t, s, "material1", "out")
	in := mustPin(t, s, "out2", "input")
	if err := s.Connect(out.ID(), in.ID()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	elem := doc.OutputByName("out2")
	if elem.NodeName != "material1" || elem.OutputName != "" {
		t.Errorf("output ref = %q/%q, want material1/", elem.NodeName, elem.OutputName)
	}
}

func TestConnectInterfaceBinding(t *testing.T) {
	doc := sceneDoc()
	doc.AddInput(&document.Input{ElemName: "amount", Type: "float", Value: "1.0"})
	s, _ := newTestSession(t, doc)

	out := mustOut(t, s, "amount", "output")
	in := mustPin(t, s, "mix1", "mix")
	if err := s.Connect(out.ID(), in.ID()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	din := doc.NodeByName("mix1").InputByName("mix")
	if din == nil || din.InterfaceName != "amount" {
		t.Errorf("interface binding = %+v, want amount", din)
	}
}

func TestDisconnectRestoresDefault(t *testing.T) {
	doc := sceneDoc()
	doc.AddNode(&document.Node{ElemName: "c1", Category: "constant", Type: "float"})
	s, _ := newTestSession(t, doc)

	mix := mustPin(t, s, "mix1", "mix")
	if err := s.Connect(mustOut(t, s, "c1", "out").ID(), mix.ID()); err != nil {
		t.Fatalf("setup connect: %v", err)
	}
	edges := s.Graph().EdgeCount()

	if err := s.Disconnect(mix.ID()); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	din := doc.NodeByName("mix1").InputByName("mix")
	if din.Connected() {
		t.Error("document input still connected")
	}
	if din.Value != "0.5" {
		t.Errorf("restored value = %q, want definition default 0.5", din.Value)
	}
	if mix.Connected() {
		t.Error("pin still connected")
	}
	if s.Graph().EdgeCount() != edges-1 {
		t.Errorf("edges = %d, want %d", s.Graph().EdgeCount(), edges-1)
	}
}

func TestDisconnectUnconnectedNoop(t *testing.T) {
	s, _ := newTestSession(t, sceneDoc())
	bg := mustPin(t, s, "mix1", "bg")
	if err := s.Disconnect(bg.ID()); err != nil {
		t.Errorf("Disconnect on unconnected pin: %v", err)
	}
}

func TestDisconnectGraphOutput(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)

	in := mustPin(t, s, "out", "input")
	if !in.Connected() {
		t.Fatal("fixture output not connected")
	}
	if err := s.Disconnect(in.ID()); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	elem := doc.OutputByName("out")
	if elem.NodeName != "" || elem.OutputName != "" {
		t.Errorf("output still references %q/%q", elem.NodeName, elem.OutputName)
	}
}

func TestConnectStalePin(t *testing.T) {
	s, _ := newTestSession(t, sceneDoc())
	stale := mustPin(t, s, "mix1", "bg").ID()
	s.Rebuild()
	if err := s.Connect(stale, stale); !sgerrors.Is(err, sgerrors.ErrCodePinNotFound) {
		t.Errorf("stale pin error = %v, want PIN_NOT_FOUND", err)
	}
}
