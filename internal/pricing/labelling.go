package pricing

import "context"

// LabelLike is the constraint satisfied by both *Label and
// *ElementaryLabel, letting LabellingEngine be written once and
// monomorphised per concrete label type (§9: "two concrete variants of a
// label concept, not runtime-dispatched subtypes").
type LabelLike[T any] interface {
	Dominates(other T) bool
	EqualTol(other T, tol float64) bool
	PathTrace() []NodeID
	CostValue() float64
}

// ExtendFunc is a LabelExtender transition (§4.2) for a concrete label
// type T.
type ExtendFunc[T any] func(g *Graph, label T, eid EdgeID) (T, bool)

// LabellingEngine is the label-setting search of §4.3: a frontier of
// non-dominated labels per node, processed in ascending node-id order
// (node ids are topologically assigned by construction, so every edge's
// target has already-settled predecessors by the time it is reached).
type LabellingEngine[T LabelLike[T]] struct {
	Graph             *Graph
	Extend            ExtendFunc[T]
	ContextCheckEvery int
	Tol               float64
}

// NewLabellingEngine builds an engine for graph g using extend as the
// per-edge transition. checkEvery bounds how often the context is polled
// for cancellation (at least 1; non-positive values fall back to 256). tol
// is the EqualTol cost tolerance applied when a node's frontier already
// carries a near-duplicate of a newly produced label (ProgramParams.CostEqualityTolerance).
func NewLabellingEngine[T LabelLike[T]](g *Graph, extend ExtendFunc[T], checkEvery int, tol float64) *LabellingEngine[T] {
	if checkEvery <= 0 {
		checkEvery = 256
	}
	return &LabellingEngine[T]{Graph: g, Extend: extend, ContextCheckEvery: checkEvery, Tol: tol}
}

// Run executes the search from seed (a label at H1) to H2, returning every
// surviving H1->H2 label converted to a Solution.
func (eng *LabellingEngine[T]) Run(ctx context.Context, seed T) ([]Solution, error) {
	g := eng.Graph
	n := g.NumNodes()
	frontier := make([][]T, n)
	frontier[g.Source()] = []T{seed}

	steps := 0
	for nid := 0; nid < n; nid++ {
		labels := frontier[NodeID(nid)]
		if len(labels) == 0 {
			continue
		}
		for _, lbl := range labels {
			for _, eid := range g.OutEdges(NodeID(nid)) {
				steps++
				if steps%eng.ContextCheckEvery == 0 {
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					default:
					}
				}

				newLabel, feasible := eng.Extend(g, lbl, eid)
				if !feasible {
					continue
				}
				to := g.EdgeAt(eid).To
				frontier[to] = insertNonDominated(frontier[to], newLabel, eng.Tol)
			}
		}
	}

	sink := frontier[g.Sink()]
	solutions := make([]Solution, 0, len(sink))
	for _, lbl := range sink {
		solutions = append(solutions, NewSolution(lbl.PathTrace(), lbl.CostValue()))
	}
	return solutions, nil
}

// insertNonDominated inserts candidate into frontier, discarding it if any
// existing label dominates it (exact cost comparison, §4.1) and otherwise
// removing every label it dominates or that is its near-duplicate within
// tol (EqualTol) — a frontier entry tied with candidate on resources and
// cost up to tol is redundant once candidate is kept (§4.3).
func insertNonDominated[T LabelLike[T]](frontier []T, candidate T, tol float64) []T {
	for _, existing := range frontier {
		if existing.Dominates(candidate) {
			return frontier
		}
	}
	kept := frontier[:0]
	for _, existing := range frontier {
		if candidate.Dominates(existing) || existing.EqualTol(candidate, tol) {
			continue
		}
		kept = append(kept, existing)
	}
	return append(kept, candidate)
}
