package pricing

import (
	"context"
	"sort"
)

// HeuristicsSolver provides the three inexpensive producers of §4.4,
// operating on one vessel-class Graph.
type HeuristicsSolver struct {
	Params ProgramParams
	Graph  *Graph
}

// NewHeuristicsSolver builds a HeuristicsSolver for g.
func NewHeuristicsSolver(params ProgramParams, g *Graph) *HeuristicsSolver {
	return &HeuristicsSolver{Params: params, Graph: g}
}

// SolveFastForward is the greedy forward walk from H1 of §4.4, forking up
// to ForwardDiversification branches at each step and returning at most
// MaxForwardWalks solutions.
func (h *HeuristicsSolver) SolveFastForward() []Solution {
	seed := &Label{
		Graph:        h.Graph,
		Node:         h.Graph.Source(),
		QPickupable:  h.Graph.InitialQPickupable,
		QDeliverable: h.Graph.InitialQDeliverable,
	}
	return h.walk(seed, h.Graph.OutEdges, h.Graph.Sink(), h.Params.ForwardDiversification, h.Params.MaxForwardWalks, true)
}

// SolveFastBackward is the symmetric walk from H2 under the transposed
// graph of §4.4.
func (h *HeuristicsSolver) SolveFastBackward() []Solution {
	seed := &Label{
		Graph:        h.Graph,
		Node:         h.Graph.Sink(),
		QPickupable:  h.Graph.InitialQPickupable,
		QDeliverable: h.Graph.InitialQDeliverable,
	}
	return h.walk(seed, h.Graph.InEdges, h.Graph.Source(), h.Params.BackwardDiversification, h.Params.MaxBackwardWalks, false)
}

// SolveOnReducedGraph runs the non-elementary LabellingEngine on the
// lambda-sparsified graph (§4.4).
func (h *HeuristicsSolver) SolveOnReducedGraph(ctx context.Context, lambda float64) ([]Solution, error) {
	reduced := h.Graph.Sparsify(lambda)
	seed := &Label{
		Graph:        reduced,
		Node:         reduced.Source(),
		QPickupable:  reduced.InitialQPickupable,
		QDeliverable: reduced.InitialQDeliverable,
	}
	engine := NewLabellingEngine[*Label](reduced, ExtendLabel, h.Params.ContextCheckInterval, h.Params.CostEqualityTolerance)
	return engine.Run(ctx, seed)
}

// walk performs a bounded, k-best-successor beam search from seed towards
// target, following edgesOf(node) at each step (OutEdges for the forward
// walk, InEdges for the backward one). When forward is false the traced
// node sequence is reversed before being wrapped in a Solution, so that
// backward solutions compare equal, node-for-node, to a forward solution
// over the same path.
//
// Each walk only ever omits its own seed's dual/penalty from the
// accumulated cost (extendDirectional never charges the node a label
// already sits on): the forward walk's cost excludes H1, the backward
// walk's excludes H2. Over the same path the two totals therefore differ
// by (dualH2+penH2)-(dualH1+penH1), which is zero only because depot
// nodes carry zero dual/penalty in every scenario this solver handles.
func (h *HeuristicsSolver) walk(seed *Label, edgesOf func(NodeID) []EdgeID, target NodeID, branch, maxWalks int, forward bool) []Solution {
	frontier := []*Label{seed}
	var solutions []Solution

	for len(frontier) > 0 && len(solutions) < maxWalks {
		var next []*Label
		for _, lbl := range frontier {
			if lbl.Node == target {
				nodes := lbl.PathTrace()
				if !forward {
					reverseNodes(nodes)
				}
				solutions = append(solutions, NewSolution(nodes, lbl.Cost))
				if len(solutions) >= maxWalks {
					break
				}
				continue
			}

			type candidate struct {
				label *Label
				cost  float64
			}
			var candidates []candidate
			for _, eid := range edgesOf(lbl.Node) {
				newLabel, feasible := extendDirectional(h.Graph, lbl, eid, forward)
				if !feasible {
					continue
				}
				candidates = append(candidates, candidate{label: newLabel, cost: newLabel.Cost})
			}
			sort.Slice(candidates, func(i, j int) bool { return candidates[i].cost < candidates[j].cost })

			k := branch
			if k > len(candidates) {
				k = len(candidates)
			}
			for i := 0; i < k; i++ {
				next = append(next, candidates[i].label)
			}
		}

		if len(next) > maxWalks*branch {
			next = next[:maxWalks*branch]
		}
		frontier = next
	}

	return solutions
}

func reverseNodes(nodes []NodeID) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
