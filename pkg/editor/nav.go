package editor

import (
	sgerrors "github.com/matzehuels/shadegraph/pkg/errors"
	"github.com/matzehuels/shadegraph/pkg/graph"
)

// Enter descends into a subgraph node: the current scope and graph are
// pushed onto the navigation stack and the subgraph's own graph is
// built fresh. Ids from the outer graph do not resolve inside (new
// generation); the outer graph is restored untouched on Leave.
func (s *Session) Enter(id graph.ID) error {
	n := s.graph.Node(id)
	if n == nil {
		return sgerrors.New(sgerrors.ErrCodeNodeNotFound, "node %s not found in current scope", id)
	}
	sub, ok := n.SubgraphElem()
	if !ok {
		return sgerrors.New(sgerrors.ErrCodeRejectedEdit, "%s is not a nodegraph", n.Name())
	}

	s.SavePositions()
	s.stack = append(s.stack, frame{scope: s.scope, graph: s.graph})
	s.breadcrumbs = append(s.breadcrumbs, sub.ElemName)

	s.scope = sub
	s.graph = s.builder.BuildGraph(sub)
	s.layoutDirty = !anyPositioned(s.graph)
	s.selection = s.selection[:0]

	s.logger.Info("entered nodegraph", "name", sub.ElemName)
	return nil
}

// Leave ascends to the parent scope. The wrapper node's pins are
// re-synced against the subgraph's declared inputs and outputs, which
// editing inside may have extended; existing outer connections are
// untouched. Leaving the document root is a no-op.
func (s *Session) Leave() {
	if len(s.stack) == 0 {
		return
	}
	s.SavePositions()

	left := s.scope.Name()
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.breadcrumbs = s.breadcrumbs[:len(s.breadcrumbs)-1]

	s.scope = top.scope
	s.graph = top.graph
	s.layoutDirty = false
	s.selection = s.selection[:0]

	if wrapper := s.graph.NodeByName(left); wrapper != nil {
		graph.SyncSubgraphPins(wrapper)
		s.AddToSelection(wrapper.ID())
	}
	s.logger.Info("left nodegraph", "name", left)
}
