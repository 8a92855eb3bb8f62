package graph

import (
	"testing"

	"github.com/matzehuels/shadegraph/pkg/document"
)

func TestIDValid(t *testing.T) {
	var zero ID
	if zero.Valid() {
		t.Error("zero ID reports valid")
	}
	g := New()
	n := g.AddNode("a", "constant", "float", Instance{Elem: &document.Node{ElemName: "a"}})
	if !n.ID().Valid() {
		t.Error("minted ID reports invalid")
	}
}

func TestGenerationScopedIDs(t *testing.T) {
	g1 := New()
	n1 := g1.AddNode("a", "constant", "float", Instance{Elem: &document.Node{ElemName: "a"}})

	g2 := New()
	if g2.Generation() == g1.Generation() {
		t.Fatal("rebuild did not bump the generation")
	}
	if g2.Node(n1.ID()) != nil {
		t.Error("stale id resolved in a newer generation")
	}
	if g1.Node(n1.ID()) != n1 {
		t.Error("id stopped resolving in its own generation")
	}
}

func TestRemoveNode(t *testing.T) {
	g := New()
	up := g.AddNode("image1", "image", "color3", Instance{Elem: &document.Node{ElemName: "image1"}})
	up.AddOutputPin("out", "color3", nil)
	down := g.AddNode("mix1", "mix", "color3", Instance{Elem: &document.Node{ElemName: "mix1"}})
	in := &document.Input{ElemName: "fg", Type: "color3", NodeName: "image1"}
	downPin := down.AddInputPin("fg", "color3", in)
	g.AddEdge(up, down, in)

	g.RemoveNode(down)

	if g.Node(down.ID()) != nil {
		t.Error("removed node still resolves")
	}
	if g.Pin(downPin.ID()) != nil {
		t.Error("removed node's pin still resolves")
	}
	if g.EdgeCount() != 0 {
		t.Errorf("edges after removal = %d, want 0", g.EdgeCount())
	}
	if g.NodeCount() != 1 || g.NodeByName("image1") == nil {
		t.Error("unrelated node was disturbed")
	}
}

func TestAddEdgeDedup(t *testing.T) {
	g := New()
	up := g.AddNode("image1", "image", "color3", Instance{Elem: &document.Node{ElemName: "image1"}})
	up.AddOutputPin("out", "color3", nil)
	down := g.AddNode("mix1", "mix", "color3", Instance{Elem: &document.Node{ElemName: "mix1"}})
	in := &document.Input{ElemName: "fg", Type: "color3", NodeName: "image1"}
	down.AddInputPin("fg", "color3", in)

	if !g.AddEdge(up, down, in) {
		t.Fatal("first AddEdge reported duplicate")
	}
	if g.AddEdge(up, down, in) {
		t.Error("exact duplicate was added")
	}
	// Dedup is undirected over the same connecting input.
	if g.AddEdge(down, up, in) {
		t.Error("reversed duplicate was added")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("edges = %d, want 1", g.EdgeCount())
	}

	// A different input between the same nodes is a distinct edge.
	in2 := &document.Input{ElemName: "bg", Type: "color3", NodeName: "image1"}
	down.AddInputPin("bg", "color3", in2)
	if !g.AddEdge(up, down, in2) {
		t.Error("edge through a second input treated as duplicate")
	}
}

func TestEdgePinSync(t *testing.T) {
	g := New()
	up := g.AddNode("image1", "image", "color3", Instance{Elem: &document.Node{ElemName: "image1"}})
	out := up.AddOutputPin("out", "color3", nil)
	down := g.AddNode("mix1", "mix", "color3", Instance{Elem: &document.Node{ElemName: "mix1"}})
	in := &document.Input{ElemName: "fg", Type: "color3", NodeName: "image1"}
	downPin := down.AddInputPin("fg", "color3", in)
	downPin.SetConnected(false)

	g.AddEdge(up, down, in)
	if !downPin.Connected() {
		t.Error("downstream pin not marked connected")
	}
	if len(out.Targets()) != 1 || out.Targets()[0] != downPin {
		t.Errorf("upstream targets = %v", out.Targets())
	}

	g.RemoveEdge(up, down, in)
	if downPin.Connected() {
		t.Error("downstream pin still connected after RemoveEdge")
	}
	if len(out.Targets()) != 0 {
		t.Error("upstream target not detached")
	}
	// Removing again is a no-op.
	g.RemoveEdge(up, down, in)
}

func TestLinks(t *testing.T) {
	g := New()
	up := g.AddNode("image1", "image", "color3", Instance{Elem: &document.Node{ElemName: "image1"}})
	out := up.AddOutputPin("out", "color3", nil)
	down := g.AddNode("mix1", "mix", "color3", Instance{Elem: &document.Node{ElemName: "mix1"}})
	fg := &document.Input{ElemName: "fg", Type: "color3", NodeName: "image1"}
	bg := &document.Input{ElemName: "bg", Type: "color3", NodeName: "image1"}
	fgPin := down.AddInputPin("fg", "color3", fg)
	bgPin := down.AddInputPin("bg", "color3", bg)
	g.AddEdge(up, down, fg)
	g.AddEdge(up, down, bg)

	links := g.Links()
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	if links[0] != (Link{From: out.ID(), To: fgPin.ID()}) {
		t.Errorf("link[0] = %+v", links[0])
	}
	if links[1] != (Link{From: out.ID(), To: bgPin.ID()}) {
		t.Errorf("link[1] = %+v", links[1])
	}
}

func TestUpstreamDownstream(t *testing.T) {
	g := New()
	a := g.AddNode("a", "constant", "float", Instance{Elem: &document.Node{ElemName: "a"}})
	a.AddOutputPin("out", "float", nil)
	b := g.AddNode("b", "clamp", "float", Instance{Elem: &document.Node{ElemName: "b"}})
	in := &document.Input{ElemName: "in", Type: "float", NodeName: "a"}
	b.AddInputPin("in", "float", in)
	g.AddEdge(a, b, in)

	if ups := g.Upstream(b); len(ups) != 1 || ups[0] != a {
		t.Errorf("Upstream = %v", ups)
	}
	if downs := g.Downstream(a); len(downs) != 1 || downs[0] != b {
		t.Errorf("Downstream = %v", downs)
	}
	if len(g.EdgesInto(a)) != 0 || len(g.EdgesOut(b)) != 0 {
		t.Error("edge direction confused")
	}
}
