// Package editor implements the synchronization engine: the component
// that keeps the persistent document and the UI-facing graph consistent
// under live editing.
//
// A [Session] owns everything one editing context needs: the document,
// the active scope's graph, selection, clipboard, transient notices,
// and the navigation stack for nested subgraphs. Every UI action maps
// to exactly one Session method (Connect, Disconnect, DeleteNode, Copy,
// Paste, Rename, AddNode, Enter, Leave, AutoLayout), each of which
// mutates the document and the graph transactionally and never leaves
// the two disagreeing.
//
// # Rejection versus failure
//
// Actions the editor declines (type mismatch, already-connected input,
// missing shader implementation, read-only scope) return structured
// errors with rejection codes and post a transient notice; no state
// changes. Genuine failures (unresolvable ids) return errors without
// notices.
//
// # Concurrency
//
// Sessions are single-threaded by design: all mutation happens on the
// UI thread in response to one discrete action per processing step.
package editor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shadegraph/pkg/document"
	sgerrors "github.com/matzehuels/shadegraph/pkg/errors"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/layout"
	"github.com/matzehuels/shadegraph/pkg/nodedef"
	"github.com/matzehuels/shadegraph/pkg/observability"
	"github.com/matzehuels/shadegraph/pkg/preview"
)

// noticeTTL is how long a rejection notice stays visible.
const noticeTTL = 3 * time.Second

// layoutStartY is the vertical baseline auto-layout stacks from.
const layoutStartY = 60.0

// Notice is a transient user-visible message (rejected edit, read-only
// warning). Notices expire on their own; the UI polls ActiveNotices.
type Notice struct {
	Message string
	Until   time.Time
}

// Session is the explicit editing context: one open document, one
// active scope, and all editor state that outlives a single action.
type Session struct {
	doc      *document.Document
	registry *nodedef.Registry
	preview  preview.Renderer
	logger   *log.Logger
	builder  *graph.Builder

	scope document.Scope
	graph *graph.Graph

	stack       []frame
	breadcrumbs []string

	selection []graph.ID
	clipboard []string
	notices   []Notice

	layoutDirty bool
}

// frame is one saved scope on the navigation stack.
type frame struct {
	scope document.Scope
	graph *graph.Graph
}

// NewSession creates a session over doc and builds the root scope's
// graph. A nil logger discards editor logging.
func NewSession(doc *document.Document, registry *nodedef.Registry, renderer preview.Renderer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(nil)
		logger.SetLevel(log.FatalLevel + 1)
	}
	s := &Session{
		doc:      doc,
		registry: registry,
		preview:  renderer,
		logger:   logger,
		builder: &graph.Builder{
			Doc:      doc,
			Registry: registry,
			Local:    func(source string) bool { return source == "" || source == doc.URI },
		},
		scope: doc,
	}
	s.graph = s.builder.BuildDocument()
	s.layoutDirty = !anyPositioned(s.graph)
	renderer.SetDocument(doc)
	return s
}

// Doc returns the session's document.
func (s *Session) Doc() *document.Document { return s.doc }

// Graph returns the active scope's graph.
func (s *Session) Graph() *graph.Graph { return s.graph }

// Scope returns the active document scope.
func (s *Session) Scope() document.Scope { return s.scope }

// Registry returns the node-definition registry.
func (s *Session) Registry() *nodedef.Registry { return s.registry }

// Breadcrumbs returns the scope names from root to the active scope.
// Empty at the document root.
func (s *Session) Breadcrumbs() []string { return s.breadcrumbs }

// Depth returns how many subgraphs deep the session currently is.
func (s *Session) Depth() int { return len(s.stack) }

// ReadOnly reports whether the active scope came from an imported
// library rather than the working document. Every mutating operation
// short-circuits with a notice when this is true.
func (s *Session) ReadOnly() bool {
	src := s.scope.SourceURI()
	return src != "" && src != s.doc.URI
}

// =============================================================================
// Selection
// =============================================================================

// Select replaces the selection with the given node ids.
func (s *Session) Select(ids ...graph.ID) {
	s.selection = append(s.selection[:0], ids...)
}

// AddToSelection appends a node id to the selection if absent.
func (s *Session) AddToSelection(id graph.ID) {
	for _, cand := range s.selection {
		if cand == id {
			return
		}
	}
	s.selection = append(s.selection, id)
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() { s.selection = s.selection[:0] }

// Selection returns the selected node ids.
func (s *Session) Selection() []graph.ID { return s.selection }

// =============================================================================
// Notices
// =============================================================================

// notify posts a transient notice and logs it.
func (s *Session) notify(msg string) {
	s.logger.Debug("notice", "msg", msg)
	s.notices = append(s.notices, Notice{Message: msg, Until: time.Now().Add(noticeTTL)})
}

// reject posts a rejection notice, records the declined action, and
// returns the error for the caller to propagate. No state changes.
func (s *Session) reject(action string, err error) error {
	s.notify(sgerrors.Message(err))
	observability.Editor().OnEdit(context.Background(), action, true)
	return err
}

// ActiveNotices returns unexpired notices, pruning the rest.
func (s *Session) ActiveNotices() []Notice {
	now := time.Now()
	live := s.notices[:0]
	for _, n := range s.notices {
		if n.Until.After(now) {
			live = append(live, n)
		}
	}
	s.notices = live
	return s.notices
}

// =============================================================================
// Layout
// =============================================================================

// MarkLayoutDirty requests a full auto-layout on the next AutoLayout
// call or rebuild. Set when nodes are added or removed.
func (s *Session) MarkLayoutDirty() { s.layoutDirty = true }

// LayoutDirty reports whether the graph needs a layout pass.
func (s *Session) LayoutDirty() bool { return s.layoutDirty }

// AutoLayout runs the full layout engine over the active graph and
// persists the resulting positions on the document.
func (s *Session) AutoLayout() {
	layout.Run(s.graph, layoutStartY)
	s.SavePositions()
	s.layoutDirty = false
}

// LayoutIfDirty runs AutoLayout only when the graph was marked dirty;
// otherwise previously persisted positions are honored.
func (s *Session) LayoutIfDirty() {
	if s.layoutDirty {
		s.AutoLayout()
	}
}

// SavePositions writes every node's position back to its document
// element, normalized by the default node size. Comments have no
// document element and are skipped.
func (s *Session) SavePositions() {
	for _, n := range s.graph.Nodes() {
		pos := &document.Position{
			X: n.Pos().X / graph.DefaultNodeSize.X,
			Y: n.Pos().Y / graph.DefaultNodeSize.Y,
		}
		switch v := n.Variant().(type) {
		case graph.Instance:
			v.Elem.Pos = pos
		case graph.Subgraph:
			v.Elem.Pos = pos
		case graph.GraphInput:
			v.Elem.Pos = pos
		case graph.GraphOutput:
			v.Elem.Pos = pos
		}
	}
}

// =============================================================================
// Rebuild
// =============================================================================

// Rebuild reconstructs the active scope's graph from the document.
// Saved positions are honored; ids change (new generation).
func (s *Session) Rebuild() {
	switch scope := s.scope.(type) {
	case *document.Document:
		s.graph = s.builder.BuildDocument()
	case *document.NodeGraph:
		s.graph = s.builder.BuildGraph(scope)
	}
	s.selection = s.selection[:0]
}

// anyPositioned reports whether at least one node restored a persisted
// position, which is how a freshly built scope decides between honoring
// saved positions and needing a first layout.
func anyPositioned(g *graph.Graph) bool {
	for _, n := range g.Nodes() {
		if p := n.Pos(); p.X != 0 || p.Y != 0 {
			return true
		}
	}
	return false
}

// markMaterialsDirty flags the preview collaborator for recompilation
// after a graph edit. The flag is polled across frames; nothing blocks.
func (s *Session) markMaterialsDirty() {
	s.preview.SetMaterialCompilation(true)
	s.preview.UpdateMaterials("")
}
