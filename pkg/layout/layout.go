// Package layout assigns deterministic 2D positions to graph nodes.
//
// The engine walks upstream from terminal nodes (graph outputs and
// material-typed nodes), assigning each node a topological level: its
// longest distance from any terminal. Levels become right-to-left
// columns (terminals rightmost), and nodes within a level stack
// top-to-bottom, vertically centered around their parent level's
// average. Graph-level inputs that nothing references are parked in a
// left-aligned column below the main layout.
//
// Layout always runs in full: positions are a pure function of the
// graph's topology and node heights, so two runs over the same graph
// produce identical placements. Whether to run at all (honoring
// positions persisted on the document versus re-laying-out a dirty
// graph) is the editor session's decision, not the engine's.
package layout

import (
	"context"
	"sort"
	"time"

	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/observability"
)

// Phase tracks how far a layout pass has progressed. Useful for tests
// and for rendering partially laid-out graphs while debugging.
type Phase int

const (
	// PhaseUnplaced means no pass has run.
	PhaseUnplaced Phase = iota
	// PhaseLevelAssigned means topological levels are computed.
	PhaseLevelAssigned
	// PhaseXPlaced means column positions are assigned.
	PhaseXPlaced
	// PhaseYPlaced means the pass is complete.
	PhaseYPlaced
)

// Placement constants, in canvas units.
const (
	// ColumnSpacing is the fixed horizontal distance between levels.
	ColumnSpacing = 350.0

	// RightBaseline is the x position of level 0 (terminal nodes).
	RightBaseline = 1200.0

	// NodeGapY is the vertical padding between nodes within a level.
	NodeGapY = 40.0

	// InputGapY is the tighter vertical padding used in the
	// unconnected-input column.
	InputGapY = 23.0

	// HeaderHeight and PinRowHeight approximate a node's rendered
	// height: a title bar plus one row per pin.
	HeaderHeight = 36.0
	PinRowHeight = 22.0
)

// NodeHeight estimates the rendered height of a node from its pin rows.
func NodeHeight(n *graph.Node) float64 {
	rows := max(len(n.Inputs()), len(n.Outputs()), 1)
	return HeaderHeight + float64(rows)*PinRowHeight
}

// Engine performs one full layout pass over a graph.
type Engine struct {
	g      *graph.Graph
	phase  Phase
	levels map[int][]*graph.Node
	startY float64
}

// NewEngine creates an engine for the given graph. startY is the
// vertical baseline the first column stacks from, typically the top of
// the visible canvas.
func NewEngine(g *graph.Graph, startY float64) *Engine {
	return &Engine{g: g, levels: make(map[int][]*graph.Node), startY: startY}
}

// Phase returns the engine's current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Levels returns the level map built during the pass. The map is
// transient: it is rebuilt from scratch on every Run.
func (e *Engine) Levels() map[int][]*graph.Node { return e.levels }

// Run executes the complete pass: level assignment, column placement,
// vertical placement, then the unconnected-input column.
func Run(g *graph.Graph, startY float64) *Engine {
	start := time.Now()
	e := NewEngine(g, startY)
	e.assignLevels()
	e.placeX()
	e.placeY()
	e.placeUnconnectedInputs()
	observability.Editor().OnLayoutComplete(context.Background(), "layout", g.NodeCount(), time.Since(start))
	return e
}

// =============================================================================
// Level assignment
// =============================================================================

// assignLevels walks upstream from every terminal node. A node's level
// only ever increases: revisiting a node over a deeper path (diamond
// dependencies) relocates it to the deeper level bucket.
func (e *Engine) assignLevels() {
	for _, n := range e.g.Nodes() {
		n.SetLevel(-1)
	}
	e.levels = make(map[int][]*graph.Node)

	for _, n := range e.g.Nodes() {
		if n.IsTerminal() {
			e.assign(n, 0)
		}
	}
	e.phase = PhaseLevelAssigned
}

func (e *Engine) assign(n *graph.Node, depth int) {
	if depth <= n.Level() {
		// Already placed at this depth or deeper; the subtree above it
		// was walked from the deeper path.
		return
	}
	e.relocate(n, n.Level(), depth)
	n.SetLevel(depth)
	for _, up := range e.g.Upstream(n) {
		e.assign(up, depth+1)
	}
}

// relocate moves a node between level buckets, preserving discovery
// order within the destination bucket.
func (e *Engine) relocate(n *graph.Node, from, to int) {
	if from >= 0 {
		bucket := e.levels[from]
		for i, cand := range bucket {
			if cand == n {
				e.levels[from] = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
	}
	e.levels[to] = append(e.levels[to], n)
}

// =============================================================================
// Placement
// =============================================================================

// placeX assigns each level a fixed column: terminals at the right
// baseline, each deeper level one column spacing further left.
func (e *Engine) placeX() {
	for level, bucket := range e.levels {
		x := RightBaseline - float64(level)*ColumnSpacing
		for _, n := range bucket {
			n.SetPos(graph.Point{X: x, Y: n.Pos().Y})
		}
	}
	e.phase = PhaseXPlaced
}

// placeY stacks each level top-to-bottom, centering levels beyond the
// first around the average Y of their immediate parent level.
func (e *Engine) placeY() {
	for _, level := range e.sortedLevels() {
		bucket := e.levels[level]
		base := e.startY
		if level > 0 {
			if parents := e.levels[level-1]; len(parents) > 0 {
				base = avgY(parents) - e.totalHeight(bucket)/2
			}
		}

		y := base
		for _, n := range bucket {
			n.SetPos(graph.Point{X: n.Pos().X, Y: y})
			y += NodeHeight(n) + NodeGapY
		}
	}
	e.phase = PhaseYPlaced
}

// placeUnconnectedInputs parks graph-level inputs nothing references in
// a left-aligned column below the main layout, in discovery order.
func (e *Engine) placeUnconnectedInputs() {
	var pending []*graph.Node
	for _, n := range e.g.Nodes() {
		if _, ok := n.Variant().(graph.GraphInput); !ok {
			continue
		}
		if n.Level() < 0 {
			pending = append(pending, n)
		}
	}
	if len(pending) == 0 {
		return
	}

	x := RightBaseline - float64(e.maxLevel()+1)*ColumnSpacing
	y := e.maxY() + NodeGapY
	for _, n := range pending {
		n.SetPos(graph.Point{X: x, Y: y})
		y += NodeHeight(n) + InputGapY
	}
}

func (e *Engine) sortedLevels() []int {
	levels := make([]int, 0, len(e.levels))
	for l := range e.levels {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	return levels
}

func (e *Engine) totalHeight(bucket []*graph.Node) float64 {
	var h float64
	for _, n := range bucket {
		h += NodeHeight(n) + NodeGapY
	}
	return h
}

func (e *Engine) maxLevel() int {
	maxL := 0
	for l := range e.levels {
		if l > maxL {
			maxL = l
		}
	}
	return maxL
}

func (e *Engine) maxY() float64 {
	var maxY float64
	for _, bucket := range e.levels {
		for _, n := range bucket {
			if bottom := n.Pos().Y + NodeHeight(n); bottom > maxY {
				maxY = bottom
			}
		}
	}
	return maxY
}

func avgY(nodes []*graph.Node) float64 {
	if len(nodes) == 0 {
		return 0
	}
	var sum float64
	for _, n := range nodes {
		sum += n.Pos().Y
	}
	return sum / float64(len(nodes))
}
