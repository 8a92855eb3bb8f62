package graph

import "github.com/matzehuels/shadegraph/pkg/document"

// Direction distinguishes input pins from output pins.
type Direction int

const (
	// In marks a pin that consumes a value.
	In Direction = iota
	// Out marks a pin that produces a value.
	Out
)

// String returns "input" or "output".
func (d Direction) String() string {
	if d == Out {
		return "output"
	}
	return "input"
}

// Pin is a typed connection endpoint on a node.
//
// A pin's type is immutable after creation; connections are only
// permitted between pins of identical type. Input pins accept at most
// one connection; output pins fan out and track their downstream
// consumers in targets.
type Pin struct {
	id        ID
	name      string
	typ       string
	dir       Direction
	node      *Node
	connected bool

	// Elem is the document input the pin materializes, when one exists.
	// Pins still at their definition default have no document element.
	Elem *document.Input

	// OutElem is the backing document output for output pins that
	// materialize one (standalone outputs, declared subgraph outputs).
	OutElem *document.Output

	// targets are the downstream input pins fed by this output pin.
	targets []*Pin
}

// ID returns the pin's generation-scoped id.
func (p *Pin) ID() ID { return p.id }

// Name returns the pin's display name.
func (p *Pin) Name() string { return p.name }

// Type returns the pin's immutable type tag.
func (p *Pin) Type() string { return p.typ }

// Dir returns the pin's direction.
func (p *Pin) Dir() Direction { return p.dir }

// Node returns the node the pin belongs to.
func (p *Pin) Node() *Node { return p.node }

// Connected reports whether the pin participates in a connection.
func (p *Pin) Connected() bool { return p.connected }

// SetConnected updates the connected flag.
func (p *Pin) SetConnected(v bool) { p.connected = v }

// Targets returns the downstream input pins fed by this output pin.
func (p *Pin) Targets() []*Pin { return p.targets }

// AddTarget records a downstream consumer on an output pin. Duplicate
// targets are ignored.
func (p *Pin) AddTarget(t *Pin) {
	for _, cand := range p.targets {
		if cand == t {
			return
		}
	}
	p.targets = append(p.targets, t)
	p.connected = true
}

// RemoveTarget drops a downstream consumer from an output pin and
// clears the connected flag when the last one goes.
func (p *Pin) RemoveTarget(t *Pin) {
	for i, cand := range p.targets {
		if cand == t {
			p.targets = append(p.targets[:i], p.targets[i+1:]...)
			break
		}
	}
	if len(p.targets) == 0 {
		p.connected = false
	}
}
