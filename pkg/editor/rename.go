package editor

import (
	"context"

	"github.com/matzehuels/shadegraph/pkg/document"
	sgerrors "github.com/matzehuels/shadegraph/pkg/errors"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/observability"
)

// Rename gives a node a new element name and patches every connection
// that referenced the old name, so renames never sever links. The name
// is made unique within the scope first; the final name is returned,
// which may differ from the request when a suffix was appended.
func (s *Session) Rename(id graph.ID, newName string) (string, error) {
	n := s.graph.Node(id)
	if n == nil {
		return "", sgerrors.New(sgerrors.ErrCodeNodeNotFound, "node %s not found in current scope", id)
	}
	if s.ReadOnly() {
		return "", s.reject("rename", sgerrors.New(sgerrors.ErrCodeReadOnly,
			"graph is read only: edits are not saved to the library"))
	}
	if newName == "" {
		return "", s.reject("rename", sgerrors.New(sgerrors.ErrCodeInvalidName, "name must not be empty"))
	}
	old := n.Name()
	if newName == old {
		return old, nil
	}
	unique := s.scope.ValidName(newName)

	switch v := n.Variant().(type) {
	case graph.Instance:
		v.Elem.ElemName = unique
		document.PatchNodeRefs(s.scope, old, unique)
		if doc, ok := s.scope.(*document.Document); ok {
			// Subgraph wrappers at the root expose declared inputs that may
			// reference the renamed node from the parent scope.
			for _, sub := range doc.NodeGraphs() {
				for _, in := range sub.Inputs {
					if in.NodeName == old {
						in.NodeName = unique
					}
				}
			}
		}

	case graph.Subgraph:
		v.Elem.ElemName = unique
		if doc, ok := s.scope.(*document.Document); ok {
			document.PatchGraphRefs(doc, old, unique)
		}

	case graph.GraphInput:
		v.Elem.ElemName = unique
		if sub, ok := s.scope.(*document.NodeGraph); ok {
			document.PatchInterfaceRefs(sub, old, unique)
		} else {
			for _, dn := range s.scope.ChildNodes() {
				for _, in := range dn.Inputs {
					if in.InterfaceName == old {
						in.InterfaceName = unique
					}
				}
			}
		}

	case graph.GraphOutput:
		v.Elem.ElemName = unique
		document.PatchOutputRefs(s.scope, "", old, unique)

	case graph.Comment:
		// Comments have no document element and nothing references them.
	}

	n.SetName(unique)
	s.markMaterialsDirty()
	observability.Editor().OnEdit(context.Background(), "rename", false)
	s.logger.Info("renamed", "from", old, "to", unique)
	return unique, nil
}

// SetCommentText edits a comment node's text.
func (s *Session) SetCommentText(id graph.ID, text string) error {
	n := s.graph.Node(id)
	if n == nil {
		return sgerrors.New(sgerrors.ErrCodeNodeNotFound, "node %s not found in current scope", id)
	}
	if _, ok := n.Variant().(graph.Comment); !ok {
		return sgerrors.New(sgerrors.ErrCodeRejectedEdit, "%s is not a comment", n.Name())
	}
	n.SetVariant(graph.Comment{Text: text})
	return nil
}
