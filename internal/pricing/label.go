package pricing

import "math"

// DefaultCostEqualityTolerance is the absolute tolerance on accumulated
// cost used by Label.EqualTol when no tolerance is supplied explicitly
// (§4.1, §9 — exposed as ProgramParams.CostEqualityTolerance rather than
// hardcoded at call sites).
const DefaultCostEqualityTolerance = 1e-5

// Label is the resource vector carried by a partial H1->current-node path
// (§3). Prev/Via let a label at H2 be unwound into an ordered node
// sequence without a separate reconstruction pass.
type Label struct {
	Graph *Graph
	Node  NodeID

	QPickupable  int
	QDeliverable int
	Cost         float64

	Prev *Label
	Via  EdgeID
}

// EqualTol reports whether two labels are equal within tol on Cost (§4.1).
func (l *Label) EqualTol(other *Label, tol float64) bool {
	return l.QPickupable == other.QPickupable &&
		l.QDeliverable == other.QDeliverable &&
		math.Abs(l.Cost-other.Cost) < tol
}

// Dominates reports whether l dominates other under the four-condition
// order of §4.1. Cost is compared exactly, not within tolerance: tolerance
// only governs EqualTol's notion of "the same label" (§4.1, labelling.cpp:15-30).
func (l *Label) Dominates(other *Label) bool {
	if l.QPickupable < other.QPickupable ||
		l.QDeliverable < other.QDeliverable ||
		l.Cost > other.Cost {
		return false
	}
	strict := l.QPickupable > other.QPickupable ||
		l.QDeliverable > other.QDeliverable ||
		l.Cost < other.Cost
	return strict
}

// CostValue returns the label's accumulated reduced cost.
func (l *Label) CostValue() float64 { return l.Cost }

// PathTrace unwinds Prev back to H1, returning the node sequence in
// traversal order (H1 first).
func (l *Label) PathTrace() []NodeID {
	var reversed []NodeID
	for cur := l; cur != nil; cur = cur.Prev {
		reversed = append(reversed, cur.Node)
	}
	nodes := make([]NodeID, len(reversed))
	for i, n := range reversed {
		nodes[len(reversed)-1-i] = n
	}
	return nodes
}

// ElementaryLabel extends Label with a total map from every (port, pickup
// type) key in the owning graph to a visited flag (§3), represented as a
// dense bool slice indexed via Graph.PortKeyIndex. Every ElementaryLabel
// created from a given graph is constructed with a slice sized to that
// graph's full key set, which keeps the visitedSubset comparison below
// symmetric (§9 open question).
type ElementaryLabel struct {
	Label
	Visited []bool
}

// NewElementaryLabel builds a seed ElementaryLabel at node with a
// visited-ports slice sized to the graph's full key set, initialised
// false.
func NewElementaryLabel(g *Graph, node NodeID, qPickupable, qDeliverable int) *ElementaryLabel {
	return &ElementaryLabel{
		Label: Label{
			Graph:        g,
			Node:         node,
			QPickupable:  qPickupable,
			QDeliverable: qDeliverable,
		},
		Visited: make([]bool, g.NumPortKeys()),
	}
}

// EqualTol reports equality per §4.1, additionally requiring Visited
// to match exactly.
func (e *ElementaryLabel) EqualTol(other *ElementaryLabel, tol float64) bool {
	if !e.Label.EqualTol(&other.Label, tol) {
		return false
	}
	return visitedEqual(e.Visited, other.Visited)
}

// Dominates reports whether e dominates other under the five-condition
// order of §4.1. Cost is compared exactly, as in Label.Dominates.
func (e *ElementaryLabel) Dominates(other *ElementaryLabel) bool {
	if e.QPickupable < other.QPickupable ||
		e.QDeliverable < other.QDeliverable ||
		e.Cost > other.Cost {
		return false
	}

	visitedSubset := true
	visitedDiffers := false
	for i, v := range e.Visited {
		ov := other.Visited[i]
		if v && !ov {
			visitedSubset = false
		}
		if v != ov {
			visitedDiffers = true
		}
	}
	if !visitedSubset {
		return false
	}

	strict := e.QPickupable > other.QPickupable ||
		e.QDeliverable > other.QDeliverable ||
		e.Cost < other.Cost ||
		(visitedSubset && visitedDiffers)
	return strict
}

func visitedEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
