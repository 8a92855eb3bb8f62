package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shadegraph/pkg/document"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/layout"
	"github.com/matzehuels/shadegraph/pkg/render"
)

// serveCommand creates the serve command: a read-only HTTP surface over
// a document, for sharing a network without a terminal session.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <document>",
		Short: "Expose a document and its rendered graph over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, g, err := c.buildGraph(args[0])
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.Config.Serve.Addr
			}

			s := &server{cli: c, doc: doc, graph: g}
			if uri := c.Config.Serve.MongoURI; uri != "" {
				store, err := document.NewMongoStore(cmd.Context(), uri, c.Config.Serve.MongoDatabase)
				if err != nil {
					return fmt.Errorf("connect mongo: %w", err)
				}
				defer store.Close(cmd.Context())
				s.store = store
				c.Logger.Info("shared document store enabled", "database", c.Config.Serve.MongoDatabase)
			}
			c.Logger.Info("serving", "addr", addr, "document", args[0])

			srv := &http.Server{
				Addr:              addr,
				Handler:           s.routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// server holds the HTTP handlers' shared state. The graph is built once
// at startup; the serve surface is read-only.
type server struct {
	cli   *CLI
	doc   *document.Document
	graph *graph.Graph

	// store is the optional Mongo-backed shared document library.
	store *document.MongoStore
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/document", s.handleDocument)
		r.Get("/graph", s.handleGraph)
		r.Get("/layout", s.handleLayout)
		r.Get("/render.svg", s.handleRenderSVG)
		r.Post("/validate", s.handleValidate)
		if s.store != nil {
			r.Get("/documents", s.handleListDocuments)
			r.Get("/documents/{name}", s.handleGetDocument)
		}
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// documentResponse is the wire shape of a document summary.
type documentResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Nodes   int    `json:"nodes"`
	Graphs  int    `json:"nodegraphs"`
	Inputs  int    `json:"inputs"`
	Outputs int    `json:"outputs"`
}

func (s *server) handleDocument(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, documentResponse{
		Name:    s.doc.DocName,
		Version: s.doc.Version,
		Nodes:   len(s.doc.Nodes),
		Graphs:  len(s.doc.Graphs),
		Inputs:  len(s.doc.Inputs),
		Outputs: len(s.doc.Outputs),
	})
}

// nodeResponse is the wire shape of one graph node.
type nodeResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Type     string  `json:"type,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Level    int     `json:"level"`
}

// linkResponse is the wire shape of one pin-to-pin link.
type linkResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type graphResponse struct {
	Nodes []nodeResponse `json:"nodes"`
	Links []linkResponse `json:"links"`
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, graphJSON(s.graph))
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	layout.Run(s.graph, layoutStartY)
	writeJSON(w, http.StatusOK, graphJSON(s.graph))
}

func (s *server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	dot := render.ToDOT(s.graph, render.Options{Detailed: r.URL.Query().Get("detailed") == "true"})
	svg, err := render.SVG(r.Context(), dot)
	if err != nil {
		s.cli.Logger.Error("render failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

// validateResponse reports document warnings.
type validateResponse struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := document.Read(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("parse document: %v", err)})
		return
	}
	warnings := document.Validate(doc)
	writeJSON(w, http.StatusOK, validateResponse{Valid: len(warnings) == 0, Warnings: warnings})
}

func (s *server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list documents"})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"documents": names})
}

func (s *server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	document.WriteTo(doc, w)
}

func graphJSON(g *graph.Graph) graphResponse {
	resp := graphResponse{}
	for _, n := range g.Nodes() {
		resp.Nodes = append(resp.Nodes, nodeResponse{
			ID:       n.ID().String(),
			Name:     n.Name(),
			Category: n.Category(),
			Type:     n.Type(),
			X:        n.Pos().X,
			Y:        n.Pos().Y,
			Level:    n.Level(),
		})
	}
	for _, l := range g.Links() {
		resp.Links = append(resp.Links, linkResponse{From: l.From.String(), To: l.To.String()})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
