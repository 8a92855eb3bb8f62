package nodedef

import (
	"fmt"
	"sort"
)

// Registry indexes node definitions by category and name.
//
// The registry is populated once at startup (embedded standard library
// plus any user libraries) and read-only afterwards, matching the
// editor's single-mutator model.
type Registry struct {
	byCategory map[string][]*NodeDef
	byName     map[string]*NodeDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byCategory: make(map[string][]*NodeDef),
		byName:     make(map[string]*NodeDef),
	}
}

// Add registers definitions. A definition whose name is already present
// is skipped, so user libraries cannot shadow the standard library.
func (r *Registry) Add(defs ...*NodeDef) {
	for _, d := range defs {
		if _, exists := r.byName[d.Name]; exists {
			continue
		}
		r.byName[d.Name] = d
		r.byCategory[d.Category] = append(r.byCategory[d.Category], d)
	}
}

// MatchingDefs returns every definition for the given node category.
// Multiple definitions mean the category is overloaded by output type.
func (r *Registry) MatchingDefs(category string) []*NodeDef {
	return r.byCategory[category]
}

// DefByName returns the definition with the given name, or nil.
func (r *Registry) DefByName(name string) *NodeDef {
	return r.byName[name]
}

// DefFor resolves the definition for a concrete (category, type) pair.
// When typ is empty the category's sole definition matches; an ambiguous
// or unknown pair returns nil, which builders treat as a silent skip.
func (r *Registry) DefFor(category, typ string) *NodeDef {
	defs := r.byCategory[category]
	switch {
	case len(defs) == 0:
		return nil
	case typ == "" && len(defs) == 1:
		return defs[0]
	}
	for _, d := range defs {
		if d.Type == typ {
			return d
		}
	}
	return nil
}

// Implementation returns the shader-generator implementation identifier
// for a definition. Definitions without one reject new connections: a
// node that cannot generate shader code upstream of a subgraph boundary
// would silently produce nothing.
func (r *Registry) Implementation(d *NodeDef) (string, error) {
	if d == nil || d.Impl == "" {
		return "", fmt.Errorf("definition %s: %w", DisplayName(defName(d)), ErrNoImplementation)
	}
	return d.Impl, nil
}

// Categories returns all registered categories sorted alphabetically.
func (r *Registry) Categories() []string {
	cats := make([]string, 0, len(r.byCategory))
	for c := range r.byCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Groups returns categories bucketed by palette group, each bucket
// sorted alphabetically. Used by the editor's add-node menu.
func (r *Registry) Groups() map[string][]string {
	groups := make(map[string]map[string]bool)
	for cat, defs := range r.byCategory {
		for _, d := range defs {
			if groups[d.Group] == nil {
				groups[d.Group] = make(map[string]bool)
			}
			groups[d.Group][cat] = true
		}
	}
	out := make(map[string][]string, len(groups))
	for g, cats := range groups {
		for c := range cats {
			out[g] = append(out[g], c)
		}
		sort.Strings(out[g])
	}
	return out
}

func defName(d *NodeDef) string {
	if d == nil {
		return "<nil>"
	}
	return d.Name
}
