package pricing

import "context"

// ExactSolver runs the elementary LabellingEngine on the full graph (§4.5).
type ExactSolver struct {
	Graph *Graph
}

// NewExactSolver builds an ExactSolver for g.
func NewExactSolver(g *Graph) *ExactSolver {
	return &ExactSolver{Graph: g}
}

// Solve returns every H1->H2 elementary label as a Solution.
func (s *ExactSolver) Solve(ctx context.Context, params ProgramParams) ([]Solution, error) {
	g := s.Graph
	seed := NewElementaryLabel(g, g.Source(), g.InitialQPickupable, g.InitialQDeliverable)
	engine := NewLabellingEngine[*ElementaryLabel](g, ExtendElementaryLabel, params.ContextCheckInterval, params.CostEqualityTolerance)
	return engine.Run(ctx, seed)
}
