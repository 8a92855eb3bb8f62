package editor

import (
	"testing"

	"github.com/matzehuels/shadegraph/pkg/document"
	sgerrors "github.com/matzehuels/shadegraph/pkg/errors"
	"github.com/matzehuels/shadegraph/pkg/graph"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name     string
		category string
		typ      string
		wantName string
		check    func(t *testing.T, doc *document.Document, n *graph.Node)
	}{
		{
			name:     "instance",
			category: "mix",
			typ:      "color3",
			wantName: "mix", // mix1 exists, but the bare category name is free
			check: func(t *testing.T, doc *document.Document, n *graph.Node) {
				if doc.NodeByName("mix") == nil {
					t.Error("document node not created")
				}
				if n.InputPin("fg") == nil || n.OutputPin("out") == nil {
					t.Error("definition pins not derived")
				}
			},
		},
		{
			name:     "graph input",
			category: "input",
			typ:      "float",
			wantName: "input",
			check: func(t *testing.T, doc *document.Document, n *graph.Node) {
				if doc.InputByName("input") == nil {
					t.Error("document input not created")
				}
				if n.InputPin("value") == nil || n.OutputPin("output") == nil {
					t.Error("port pins missing")
				}
			},
		},
		{
			name:     "graph output",
			category: "output",
			typ:      "color3",
			wantName: "output",
			check: func(t *testing.T, doc *document.Document, n *graph.Node) {
				if doc.OutputByName("output") == nil {
					t.Error("document output not created")
				}
			},
		},
		{
			name:     "nodegraph",
			category: "nodegraph",
			wantName: "nodegraph",
			check: func(t *testing.T, doc *document.Document, n *graph.Node) {
				if doc.GraphByName("nodegraph") == nil {
					t.Error("document nodegraph not created")
				}
			},
		},
		{
			name:     "comment",
			category: "comment",
			wantName: "comment",
			check: func(t *testing.T, doc *document.Document, n *graph.Node) {
				if doc.HasChild("comment") {
					t.Error("comment created a document element")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sceneDoc()
			s, _ := newTestSession(t, doc)
			pos := graph.Point{X: 600, Y: 300}

			n, err := s.AddNode(tt.category, tt.typ, pos)
			if err != nil {
				t.Fatalf("AddNode: %v", err)
			}
			if n.Name() != tt.wantName {
				t.Errorf("name = %q, want %q", n.Name(), tt.wantName)
			}
			if n.Pos() != pos {
				t.Errorf("pos = %+v, want %+v", n.Pos(), pos)
			}
			tt.check(t, doc, n)
		})
	}
}

func TestAddNodeNameCollision(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)

	// First add claims the bare category name even though mix1 exists.
	a, err := s.AddNode("mix", "color3", graph.Point{})
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if a.Name() != "mix" {
		t.Errorf("first name = %q, want mix", a.Name())
	}

	// Once the bare name is taken, suffixes count up past siblings.
	b, err := s.AddNode("mix", "color3", graph.Point{})
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if b.Name() != "mix2" {
		t.Errorf("second name = %q, want mix2", b.Name())
	}
	if doc.NodeByName("mix2") == nil {
		t.Error("suffixed document node not created")
	}
}

func TestAddNodeUnknownDefinition(t *testing.T) {
	s, _ := newTestSession(t, sceneDoc())
	if _, err := s.AddNode("bogus", "float", graph.Point{}); !sgerrors.Is(err, sgerrors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestAddNodeMaterialInSubgraph(t *testing.T) {
	doc := sceneDoc()
	doc.AddGraph(&document.NodeGraph{ElemName: "sub"})
	s, _ := newTestSession(t, doc)
	if err := s.Enter(mustNode(t, s, "sub").ID()); err != nil {
		t.Fatalf("Enter: %v", err)
	}

	if _, err := s.AddNode("surfacematerial", "material", graph.Point{}); !sgerrors.Is(err, sgerrors.ErrCodeRejectedEdit) {
		t.Errorf("error = %v, want REJECTED_EDIT", err)
	}
	if _, err := s.AddNode("nodegraph", "", graph.Point{}); !sgerrors.Is(err, sgerrors.ErrCodeRejectedEdit) {
		t.Errorf("nested nodegraph error = %v, want REJECTED_EDIT", err)
	}
	// Non-material instances are fine inside a subgraph.
	if _, err := s.AddNode("mix", "color3", graph.Point{}); err != nil {
		t.Errorf("AddNode mix in subgraph: %v", err)
	}
}

func TestDeleteNodeRepairsFanOut(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)
	img := mustNode(t, s, "image1")
	fg := mustPin(t, s, "mix1", "fg")

	if err := s.DeleteNode(img.ID()); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}

	if doc.NodeByName("image1") != nil {
		t.Error("document node not removed")
	}
	if s.Graph().NodeByName("image1") != nil {
		t.Error("graph node not removed")
	}
	din := doc.NodeByName("mix1").InputByName("fg")
	if din.Connected() {
		t.Error("downstream input still references the deleted node")
	}
	if din.Value != "0.0, 0.0, 0.0" {
		t.Errorf("downstream value = %q, want definition default", din.Value)
	}
	if fg.Connected() {
		t.Error("downstream pin still connected")
	}
}

func TestDeleteNodeDropsIncomingEdges(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)
	mix := mustNode(t, s, "mix1")
	before := s.Graph().EdgeCount()

	if err := s.DeleteNode(mix.ID()); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}
	// mix1 had one incoming and one outgoing edge.
	if got := s.Graph().EdgeCount(); got != before-2 {
		t.Errorf("edges = %d, want %d", got, before-2)
	}
}

func TestDeleteGraphInputClearsInterfaceRefs(t *testing.T) {
	doc := sceneDoc()
	sub := &document.NodeGraph{
		ElemName: "sub",
		Inputs:   []*document.Input{{ElemName: "amount", Type: "float", Value: "0.5"}},
		Nodes: []*document.Node{{ElemName: "m1", Category: "mix", Type: "float",
			Inputs: []*document.Input{{ElemName: "mix", Type: "float", InterfaceName: "amount"}}}},
	}
	doc.AddGraph(sub)
	s, _ := newTestSession(t, doc)
	if err := s.Enter(mustNode(t, s, "sub").ID()); err != nil {
		t.Fatalf("Enter: %v", err)
	}

	if err := s.DeleteNode(mustNode(t, s, "amount").ID()); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}

	if sub.InputByName("amount") != nil {
		t.Error("declared input not removed")
	}
	if ref := sub.Nodes[0].Inputs[0].InterfaceName; ref != "" {
		t.Errorf("dangling interface ref %q", ref)
	}
}

func TestDeleteSelected(t *testing.T) {
	s, _ := newTestSession(t, sceneDoc())
	s.Select(mustNode(t, s, "image1").ID(), mustNode(t, s, "mix1").ID())

	if err := s.DeleteSelected(); err != nil {
		t.Fatalf("DeleteSelected: %v", err)
	}
	if s.Graph().NodeByName("image1") != nil || s.Graph().NodeByName("mix1") != nil {
		t.Error("selected nodes survived")
	}
	if len(s.Selection()) != 0 {
		t.Error("selection not emptied")
	}
}

func TestSetInputValue(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)

	// Unmaterialized pin: setting a value materializes the document input.
	base := mustPin(t, s, "surface1", "base")
	if err := s.SetInputValue(base.ID(), "0.25"); err != nil {
		t.Fatalf("SetInputValue: %v", err)
	}
	din := doc.NodeByName("surface1").InputByName("base")
	if din == nil || din.Value != "0.25" {
		t.Errorf("document value = %+v, want 0.25", din)
	}

	// Connected pins reject value edits.
	fg := mustPin(t, s, "mix1", "fg")
	if err := s.SetInputValue(fg.ID(), "1, 1, 1"); !sgerrors.Is(err, sgerrors.ErrCodePinConnected) {
		t.Errorf("error = %v, want PIN_CONNECTED", err)
	}
}
