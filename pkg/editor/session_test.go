package editor

import (
	"testing"
	"time"

	"github.com/matzehuels/shadegraph/pkg/document"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/nodedef"
	"github.com/matzehuels/shadegraph/pkg/preview"
)

// sceneDoc builds the working fixture:
//
//	image1 -> mix1.fg -> surface1.base_color -> material1 -> out
func sceneDoc() *document.Document {
	d := document.New("scene")
	d.URI = "scene.yaml"
	d.AddNode(&document.Node{ElemName: "image1", Category: "image", Type: "color3"})
	d.AddNode(&document.Node{ElemName: "mix1", Category: "mix", Type: "color3",
		Inputs: []*document.Input{{ElemName: "fg", Type: "color3", NodeName: "image1"}}})
	d.AddNode(&document.Node{ElemName: "surface1", Category: "standard_surface", Type: "surfaceshader",
		Inputs: []*document.Input{{ElemName: "base_color", Type: "color3", NodeName: "mix1"}}})
	d.AddNode(&document.Node{ElemName: "material1", Category: "surfacematerial", Type: "material",
		Inputs: []*document.Input{{ElemName: "surfaceshader", Type: "surfaceshader", NodeName: "surface1"}}})
	d.AddOutput(&document.Output{ElemName: "out", Type: "material", NodeName: "material1"})
	return d
}

func newTestSession(t *testing.T, doc *document.Document) (*Session, *preview.LogRenderer) {
	t.Helper()
	r, err := nodedef.StandardLibrary()
	if err != nil {
		t.Fatalf("StandardLibrary: %v", err)
	}
	pr := preview.Discard()
	return NewSession(doc, r, pr, nil), pr
}

func mustNode(t *testing.T, s *Session, name string) *graph.Node {
	t.Helper()
	n := s.Graph().NodeByName(name)
	if n == nil {
		t.Fatalf("node %s not in active graph", name)
	}
	return n
}

func mustPin(t *testing.T, s *Session, node, pin string) *graph.Pin {
	t.Helper()
	p := mustNode(t, s, node).InputPin(pin)
	if p == nil {
		t.Fatalf("pin %s.%s not found", node, pin)
	}
	return p
}

func mustOut(t *testing.T, s *Session, node, pin string) *graph.Pin {
	t.Helper()
	p := mustNode(t, s, node).OutputPin(pin)
	if p == nil {
		t.Fatalf("output pin %s.%s not found", node, pin)
	}
	return p
}

func TestNewSession(t *testing.T) {
	doc := sceneDoc()
	s, pr := newTestSession(t, doc)

	if s.Graph().NodeCount() != 5 {
		t.Errorf("nodes = %d, want 5", s.Graph().NodeCount())
	}
	if !s.LayoutDirty() {
		t.Error("unpositioned document should need layout")
	}
	if pr.Compiling() {
		t.Error("session start marked materials dirty")
	}
	if s.ReadOnly() {
		t.Error("root scope reported read-only")
	}
	if s.Depth() != 0 || len(s.Breadcrumbs()) != 0 {
		t.Error("fresh session not at document root")
	}
}

func TestNewSessionHonorsSavedPositions(t *testing.T) {
	doc := sceneDoc()
	doc.Nodes[0].Pos = &document.Position{X: 1, Y: 1}
	s, _ := newTestSession(t, doc)
	if s.LayoutDirty() {
		t.Error("positioned document marked layout-dirty")
	}
}

func TestReadOnlyScope(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)

	lib := &document.NodeGraph{ElemName: "shared", Source: "lib/shared.yaml"}
	s.scope = lib
	if !s.ReadOnly() {
		t.Fatal("library-sourced scope not read-only")
	}

	if _, err := s.AddNode("mix", "color3", graph.Point{}); err == nil {
		t.Error("AddNode succeeded in read-only scope")
	}
	if len(s.ActiveNotices()) == 0 {
		t.Error("read-only rejection posted no notice")
	}
}

func TestSelection(t *testing.T) {
	s, _ := newTestSession(t, sceneDoc())
	a := mustNode(t, s, "image1").ID()
	b := mustNode(t, s, "mix1").ID()

	s.Select(a)
	s.AddToSelection(b)
	s.AddToSelection(b) // duplicate ignored
	if got := len(s.Selection()); got != 2 {
		t.Errorf("selection = %d, want 2", got)
	}
	s.ClearSelection()
	if len(s.Selection()) != 0 {
		t.Error("ClearSelection left ids behind")
	}
}

func TestNoticesExpire(t *testing.T) {
	s, _ := newTestSession(t, sceneDoc())
	s.notices = append(s.notices,
		Notice{Message: "stale", Until: time.Now().Add(-time.Second)},
		Notice{Message: "live", Until: time.Now().Add(time.Minute)},
	)
	live := s.ActiveNotices()
	if len(live) != 1 || live[0].Message != "live" {
		t.Errorf("ActiveNotices = %+v", live)
	}
}

func TestSavePositionsNormalized(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)
	n := mustNode(t, s, "image1")
	n.SetPos(graph.Point{X: 2 * graph.DefaultNodeSize.X, Y: 3 * graph.DefaultNodeSize.Y})

	s.SavePositions()

	pos := doc.NodeByName("image1").Pos
	if pos == nil || pos.X != 2 || pos.Y != 3 {
		t.Errorf("persisted pos = %+v, want {2 3}", pos)
	}
}

func TestAutoLayout(t *testing.T) {
	doc := sceneDoc()
	s, _ := newTestSession(t, doc)
	s.AutoLayout()

	if s.LayoutDirty() {
		t.Error("AutoLayout left the dirty flag set")
	}
	if doc.NodeByName("material1").Pos == nil {
		t.Error("AutoLayout did not persist positions")
	}

	// LayoutIfDirty must not move anything on a clean graph.
	n := mustNode(t, s, "image1")
	n.SetPos(graph.Point{X: 7, Y: 7})
	s.LayoutIfDirty()
	if n.Pos() != (graph.Point{X: 7, Y: 7}) {
		t.Error("LayoutIfDirty ran on a clean graph")
	}
}

func TestRebuildClearsSelection(t *testing.T) {
	s, _ := newTestSession(t, sceneDoc())
	s.Select(mustNode(t, s, "image1").ID())
	oldGen := s.Graph().Generation()

	s.Rebuild()

	if len(s.Selection()) != 0 {
		t.Error("Rebuild kept a stale selection")
	}
	if s.Graph().Generation() == oldGen {
		t.Error("Rebuild did not start a new generation")
	}
	if s.Graph().NodeByName("mix1") == nil {
		t.Error("Rebuild lost nodes")
	}
}
