package pricing

import (
	"fmt"

	"pricer/pkg/pricingerr"
)

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// extendDirectional implements the LabelExtender transition of §4.2. When
// forward is true the label sits at e.From and extends to e.To (the
// ordinary case); when false it sits at e.To and extends to e.From,
// backing HeuristicsSolver.SolveFastBackward's transposed-graph walk. The
// resource/cost arithmetic is identical either way — only which endpoint
// is "the node being entered" changes.
//
// A row collision is a malformed-graph precondition violation (§7): it
// panics rather than returning an error, to be recovered once at
// SPSolver.Solve's top level instead of threading an error return through
// every call in the label-setting hot path.
func extendDirectional(g *Graph, label *Label, eid EdgeID, forward bool) (*Label, bool) {
	e := g.EdgeAt(eid)
	enter := e.To
	if !forward {
		enter = e.From
	}

	src := g.NodeAt(label.Node)
	dest := g.NodeAt(enter)
	if src.SameRow(dest) {
		panic(pricingerr.Wrap(fmt.Errorf("edge %d between node %d and node %d", eid, src.ID, dest.ID),
			pricingerr.PreconditionViolation, "row collision"))
	}

	port := g.PortOf(dest.Port)

	newLabel := &Label{
		Graph: g,
		Node:  enter,
		Prev:  label,
		Via:   eid,
	}
	newLabel.QPickupable = label.QPickupable - port.PuDemand
	newLabel.QDeliverable = minInt(label.QDeliverable-port.DeDemand, label.QPickupable-port.PuDemand)

	avoidedPenalty := port.PuPenalty + port.DePenalty
	dual := g.DualOf(enter)
	newLabel.Cost = label.Cost + e.Cost - avoidedPenalty - dual

	feasible := label.QPickupable >= port.PuDemand && label.QDeliverable >= port.DeDemand
	return newLabel, feasible
}

// ExtendLabel is the forward, non-elementary LabelExtender used by the
// reduced-graph labelling stage.
func ExtendLabel(g *Graph, label *Label, eid EdgeID) (*Label, bool) {
	return extendDirectional(g, label, eid, true)
}

// ExtendElementaryLabel is the forward, elementary LabelExtender used by
// ExactSolver. It additionally copies Visited and marks the entered
// (port, pickup type) key visited, rejecting the extension if that key was
// already visited.
func ExtendElementaryLabel(g *Graph, label *ElementaryLabel, eid EdgeID) (*ElementaryLabel, bool) {
	base, feasible := extendDirectional(g, &label.Label, eid, true)

	e := g.EdgeAt(eid)
	dest := g.NodeAt(e.To)
	idx := g.PortKeyIndex(dest.Key())

	visited := make([]bool, len(label.Visited))
	copy(visited, label.Visited)
	alreadyVisited := label.Visited[idx]
	visited[idx] = true

	newLabel := &ElementaryLabel{Label: *base, Visited: visited}
	return newLabel, feasible && !alreadyVisited
}
