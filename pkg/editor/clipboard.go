package editor

import (
	"context"

	"github.com/matzehuels/shadegraph/pkg/document"
	sgerrors "github.com/matzehuels/shadegraph/pkg/errors"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/observability"
)

// pasteOffset shifts pasted copies down-right of the originals, in
// canvas units, so a paste never lands exactly on top of its source.
const pasteOffset = 40.0

// Copy records the selected nodes on the clipboard. The clipboard
// stores element names, not ids, so it survives rebuilds and subgraph
// navigation within the same scope. Comments are skipped: they have no
// document element to duplicate.
func (s *Session) Copy() {
	s.clipboard = s.clipboard[:0]
	for _, id := range s.selection {
		n := s.graph.Node(id)
		if n == nil {
			continue
		}
		if _, isComment := n.Variant().(graph.Comment); isComment {
			continue
		}
		s.clipboard = append(s.clipboard, n.Name())
	}
	s.logger.Debug("copied", "count", len(s.clipboard))
}

// ClipboardLen returns the number of elements on the clipboard.
func (s *Session) ClipboardLen() int { return len(s.clipboard) }

// Paste duplicates the clipboard's elements into the active scope and
// selects the copies.
//
// Connections are relinked only within the pasted set: an input that
// referenced a copied element is re-pointed at that element's copy,
// while references to elements outside the set are dropped and the
// input falls back to its definition default. With inPlace set, outside
// references are kept instead — the duplicate stays wired into the
// surrounding graph exactly like its source.
func (s *Session) Paste(inPlace bool) error {
	if len(s.clipboard) == 0 {
		return nil
	}
	if s.ReadOnly() {
		return s.reject("paste", sgerrors.New(sgerrors.ErrCodeReadOnly,
			"graph is read only: edits are not saved to the library"))
	}

	// Duplicate every element first so relinking sees the complete
	// old-name → new-name mapping.
	renamed := make(map[string]string, len(s.clipboard))
	var nodes []*document.Node
	var graphs []*document.NodeGraph
	var inputs []*document.Input
	var outputs []*document.Output

	doc, atRoot := s.scope.(*document.Document)
	for _, name := range s.clipboard {
		switch {
		case s.scope.NodeByName(name) != nil:
			dup := document.CopyNode(s.scope.NodeByName(name), s.scope.ValidName(name))
			if err := s.scope.AddNode(dup); err != nil {
				return sgerrors.Wrap(sgerrors.ErrCodeInternal, err, "paste node %s", name)
			}
			renamed[name] = dup.ElemName
			nodes = append(nodes, dup)

		case atRoot && doc.GraphByName(name) != nil:
			dup := document.CopyGraph(doc.GraphByName(name), doc.ValidName(name))
			if err := doc.AddGraph(dup); err != nil {
				return sgerrors.Wrap(sgerrors.ErrCodeInternal, err, "paste nodegraph %s", name)
			}
			renamed[name] = dup.ElemName
			graphs = append(graphs, dup)

		case s.scope.InputByName(name) != nil:
			dup := document.CopyInput(s.scope.InputByName(name), s.scope.ValidName(name))
			if err := s.scope.AddInput(dup); err != nil {
				return sgerrors.Wrap(sgerrors.ErrCodeInternal, err, "paste input %s", name)
			}
			renamed[name] = dup.ElemName
			inputs = append(inputs, dup)

		case s.scope.OutputByName(name) != nil:
			dup := document.CopyOutput(s.scope.OutputByName(name), s.scope.ValidName(name))
			if err := s.scope.AddOutput(dup); err != nil {
				return sgerrors.Wrap(sgerrors.ErrCodeInternal, err, "paste output %s", name)
			}
			renamed[name] = dup.ElemName
			outputs = append(outputs, dup)
		}
		// Names no longer present in the scope are silently skipped: the
		// source may have been deleted since the copy.
	}

	for _, dup := range nodes {
		for _, in := range dup.Inputs {
			s.relink(in, dup, renamed, inPlace)
		}
		shiftPos(&dup.Pos)
	}
	for _, dup := range graphs {
		for _, in := range dup.Inputs {
			s.relink(in, nil, renamed, inPlace)
		}
		shiftPos(&dup.Pos)
	}
	for _, dup := range inputs {
		s.relink(dup, nil, renamed, inPlace)
		shiftPos(&dup.Pos)
	}
	for _, dup := range outputs {
		if to, ok := renamed[dup.NodeName]; ok {
			dup.NodeName = to
		} else if !inPlace {
			dup.NodeName = ""
			dup.OutputName = ""
		}
		shiftPos(&dup.Pos)
	}

	s.Rebuild()
	for old := range renamed {
		if n := s.graph.NodeByName(renamed[old]); n != nil {
			s.AddToSelection(n.ID())
		}
	}

	s.markMaterialsDirty()
	observability.Editor().OnEdit(context.Background(), "paste", false)
	s.logger.Info("pasted", "count", len(renamed), "in_place", inPlace)
	return nil
}

// relink rewrites one duplicated input's connection for the paste rules:
// references inside the copied set follow the mapping, references
// outside it are dropped (restoring the owner's definition default)
// unless the paste is in place. owner is nil for inputs that do not
// belong to a concrete node.
func (s *Session) relink(in *document.Input, owner *document.Node, renamed map[string]string, inPlace bool) {
	ref := ""
	switch {
	case in.GraphName != "":
		ref = in.GraphName
	case in.NodeName != "":
		ref = in.NodeName
	case in.OutputName != "":
		ref = in.OutputName
	case in.InterfaceName != "":
		ref = in.InterfaceName
	default:
		return
	}

	if to, ok := renamed[ref]; ok {
		switch {
		case in.GraphName != "":
			in.GraphName = to
		case in.NodeName != "":
			in.NodeName = to
		case in.OutputName != "":
			in.OutputName = to
		default:
			in.InterfaceName = to
		}
		return
	}
	if inPlace {
		return
	}

	def := ""
	if owner != nil {
		if d := s.registry.DefFor(owner.Category, owner.Type); d != nil {
			def = d.DefaultValue(in.ElemName)
		}
	}
	in.Disconnect(def)
}

func shiftPos(pos **document.Position) {
	dx := pasteOffset / graph.DefaultNodeSize.X
	dy := pasteOffset / graph.DefaultNodeSize.Y
	if *pos == nil {
		*pos = &document.Position{X: dx, Y: dy}
		return
	}
	(*pos).X += dx
	(*pos).Y += dy
}
