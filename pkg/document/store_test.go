package document

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	doc := New("scene")
	doc.AddNode(&Node{
		ElemName: "image1",
		Category: "image",
		Type:     "color3",
		Inputs:   []*Input{{ElemName: "file", Type: "filename", Value: "wood.png"}},
		Pos:      &Position{X: 1.5, Y: -0.25},
	})
	doc.AddNode(&Node{
		ElemName: "mix1",
		Category: "mix",
		Type:     "color3",
		Inputs:   []*Input{{ElemName: "fg", Type: "color3", NodeName: "image1"}},
	})
	doc.AddGraph(&NodeGraph{
		ElemName: "sub",
		Inputs:   []*Input{{ElemName: "amount", Type: "float", Value: "0.5"}},
		Outputs:  []*Output{{ElemName: "out", Type: "color3", NodeName: "mix1"}},
		Nodes: []*Node{{ElemName: "mix1", Category: "mix", Type: "color3",
			Inputs: []*Input{{ElemName: "mix", Type: "float", InterfaceName: "amount"}}}},
	})
	doc.AddOutput(&Output{ElemName: "out", Type: "color3", NodeName: "mix1"})

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := Write(doc, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if doc.URI != path {
		t.Errorf("URI after Write = %q, want %q", doc.URI, path)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DocName != "scene" || got.Version != "1.39" {
		t.Errorf("header = %s/%s", got.DocName, got.Version)
	}
	if got.URI != path {
		t.Errorf("URI after Load = %q, want %q", got.URI, path)
	}

	n := got.NodeByName("mix1")
	if n == nil {
		t.Fatal("mix1 missing after round trip")
	}
	if in := n.InputByName("fg"); in == nil || in.NodeName != "image1" {
		t.Errorf("connection not preserved: %+v", in)
	}
	img := got.NodeByName("image1")
	if img.Pos == nil || img.Pos.X != 1.5 || img.Pos.Y != -0.25 {
		t.Errorf("position not preserved: %+v", img.Pos)
	}
	g := got.GraphByName("sub")
	if g == nil {
		t.Fatal("sub missing after round trip")
	}
	if in := g.Nodes[0].InputByName("mix"); in == nil || in.InterfaceName != "amount" {
		t.Errorf("interface binding not preserved: %+v", in)
	}
	if len(got.Outputs) != 1 || got.Outputs[0].NodeName != "mix1" {
		t.Errorf("outputs not preserved: %+v", got.Outputs)
	}
}

func TestLoadStampsSource(t *testing.T) {
	doc := New("scene")
	doc.AddNode(&Node{ElemName: "local", Category: "constant", Type: "float"})
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := Write(doc, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src := got.NodeByName("local").Source; src != path {
		t.Errorf("source = %q, want load path %q", src, path)
	}
}

func TestReadEmpty(t *testing.T) {
	doc, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(doc.Nodes) != 0 {
		t.Errorf("empty read produced %d nodes", len(doc.Nodes))
	}
}

func TestReadInvalid(t *testing.T) {
	if _, err := Read(strings.NewReader("nodes: {not: [a, list")); err == nil {
		t.Error("expected decode error for malformed YAML")
	}
}

func TestImportLibrary(t *testing.T) {
	lib := New("library")
	lib.URI = "lib/shared.yaml"
	lib.AddNode(&Node{ElemName: "gold", Category: "standard_surface", Type: "surfaceshader"})
	lib.AddGraph(&NodeGraph{ElemName: "checker"})

	doc := New("scene")
	doc.AddNode(&Node{ElemName: "local", Category: "constant", Type: "float"})
	ImportLibrary(doc, lib)

	n := doc.NodeByName("gold")
	if n == nil {
		t.Fatal("imported node missing")
	}
	if n.Source != "lib/shared.yaml" {
		t.Errorf("imported node source = %q, want library URI", n.Source)
	}
	if g := doc.GraphByName("checker"); g == nil || g.Source != "lib/shared.yaml" {
		t.Error("imported graph missing or unstamped")
	}
	if doc.NodeByName("local").Source != "" {
		t.Error("local node gained a library source")
	}

	// Imports are deep copies: editing the document must not touch the library.
	n.Category = "mix"
	if lib.Nodes[0].Category != "standard_surface" {
		t.Error("import shares nodes with the library document")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Document
		want  string // substring of one expected warning; "" means clean
	}{
		{
			name: "clean document",
			build: func() *Document {
				d := New("ok")
				d.AddNode(&Node{ElemName: "c1", Category: "constant", Type: "color3"})
				d.AddNode(&Node{ElemName: "mix1", Category: "mix", Type: "color3",
					Inputs: []*Input{{ElemName: "fg", Type: "color3", NodeName: "c1"}}})
				return d
			},
		},
		{
			name: "duplicate names",
			build: func() *Document {
				return &Document{Nodes: []*Node{{ElemName: "a"}, {ElemName: "a"}}}
			},
			want: `duplicate element name "a"`,
		},
		{
			name: "missing upstream node",
			build: func() *Document {
				d := New("bad")
				d.AddNode(&Node{ElemName: "mix1", Category: "mix", Type: "color3",
					Inputs: []*Input{{ElemName: "fg", Type: "color3", NodeName: "ghost"}}})
				return d
			},
			want: `references missing node "ghost"`,
		},
		{
			name: "type mismatch",
			build: func() *Document {
				d := New("bad")
				d.AddNode(&Node{ElemName: "f1", Category: "constant", Type: "float"})
				d.AddNode(&Node{ElemName: "mix1", Category: "mix", Type: "color3",
					Inputs: []*Input{{ElemName: "fg", Type: "color3", NodeName: "f1"}}})
				return d
			},
			want: "does not match upstream type",
		},
		{
			name: "output references missing node",
			build: func() *Document {
				d := New("bad")
				d.AddOutput(&Output{ElemName: "out", Type: "color3", NodeName: "ghost"})
				return d
			},
			want: `output "out" references missing node "ghost"`,
		},
		{
			name: "subgraph missing interface",
			build: func() *Document {
				d := New("bad")
				d.AddGraph(&NodeGraph{ElemName: "sub", Nodes: []*Node{{ElemName: "m", Category: "mix",
					Inputs: []*Input{{ElemName: "mix", Type: "float", InterfaceName: "ghost"}}}}})
				return d
			},
			want: `references missing interface "ghost"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := Validate(tt.build())
			if tt.want == "" {
				if len(warnings) != 0 {
					t.Errorf("unexpected warnings: %v", warnings)
				}
				return
			}
			for _, w := range warnings {
				if strings.Contains(w, tt.want) {
					return
				}
			}
			t.Errorf("warnings %v missing %q", warnings, tt.want)
		})
	}
}
