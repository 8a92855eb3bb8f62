package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shadegraph/pkg/document"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/nodedef"
)

func testServer(t *testing.T) *server {
	t.Helper()
	reg, err := nodedef.StandardLibrary()
	if err != nil {
		t.Fatalf("StandardLibrary: %v", err)
	}
	doc := document.New("scene")
	doc.AddNode(&document.Node{ElemName: "c1", Category: "constant", Type: "color3"})
	doc.AddNode(&document.Node{ElemName: "mix1", Category: "mix", Type: "color3",
		Inputs: []*document.Input{{ElemName: "fg", Type: "color3", NodeName: "c1"}}})
	doc.AddOutput(&document.Output{ElemName: "out", Type: "color3", NodeName: "mix1"})

	b := &graph.Builder{Doc: doc, Registry: reg}
	c := &CLI{Logger: newLogger(io.Discard, log.InfoLevel), Config: DefaultConfig()}
	return &server{cli: c, doc: doc, graph: b.BuildDocument()}
}

func TestServeHealth(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestServeDocument(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/document")
	if err != nil {
		t.Fatalf("GET /api/document: %v", err)
	}
	defer resp.Body.Close()

	var got documentResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "scene" || got.Nodes != 2 || got.Outputs != 1 {
		t.Errorf("document summary = %+v", got)
	}
}

func TestServeGraph(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/graph")
	if err != nil {
		t.Fatalf("GET /api/graph: %v", err)
	}
	defer resp.Body.Close()

	var got graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(got.Nodes))
	}
	if len(got.Links) != 2 {
		t.Errorf("links = %d, want 2", len(got.Links))
	}
}

func TestServeLayoutAssignsPositions(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/layout")
	if err != nil {
		t.Fatalf("GET /api/layout: %v", err)
	}
	defer resp.Body.Close()

	var got graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var placed bool
	for _, n := range got.Nodes {
		if n.X != 0 || n.Y != 0 {
			placed = true
		}
	}
	if !placed {
		t.Error("layout endpoint returned no positions")
	}
}

func TestServeValidate(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	body := `
nodes:
  - name: a
  - name: a
`
	resp, err := http.Post(srv.URL+"/api/validate", "application/yaml", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/validate: %v", err)
	}
	defer resp.Body.Close()

	var got validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Valid || len(got.Warnings) == 0 {
		t.Errorf("validate = %+v, want duplicate-name warning", got)
	}
}

func TestServeValidateBadBody(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/validate", "application/yaml", strings.NewReader("nodes: {broken"))
	if err != nil {
		t.Fatalf("POST /api/validate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServeDocumentsDisabledWithoutStore(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/documents")
	if err != nil {
		t.Fatalf("GET /api/documents: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no shared store is configured", resp.StatusCode)
	}
}
