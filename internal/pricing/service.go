package pricing

import (
	"context"

	"github.com/google/uuid"
)

// PriceRequest is what a master/branch-and-bound driver supplies to a
// pricing call (§6): the vessel-class graphs carrying the current dual
// solution, and the pool to grow.
type PriceRequest struct {
	ProblemReference uuid.UUID
	Graphs           []VesselClassGraph
	Pool             *ColumnPool
}

// PriceResponse is what Price returns to the caller.
type PriceResponse struct {
	Accepted bool
	Reports  []StageReport
}

// PricingService is the plain Go interface modelling the master<->pricing
// boundary of §6. It deliberately has request/response-struct shaped
// methods rather than an ad hoc parameter list, so that an outer build
// step with protoc available can graft a real .proto contract onto it
// (method bodies unchanged) without this repository fabricating
// hand-written .pb.go-equivalent stubs (see SPEC_FULL.md §11).
type PricingService interface {
	// Price runs SPSolver.Solve for one pricing call.
	Price(ctx context.Context, req PriceRequest) (PriceResponse, error)
	// Health reports whether the service is ready to accept Price calls.
	Health(ctx context.Context) error
}

// service is the in-process PricingService adapter.
type service struct {
	params ProgramParams
}

// NewService builds the in-process PricingService adapter, which runs a
// fresh SPSolver per Price call.
func NewService(params ProgramParams) PricingService {
	return &service{params: params}
}

func (s *service) Price(ctx context.Context, req PriceRequest) (PriceResponse, error) {
	solver := NewSPSolver(req.ProblemReference, req.Graphs, s.params, nil)
	accepted, reports, err := solver.Solve(ctx, req.Pool)
	return PriceResponse{Accepted: accepted, Reports: reports}, err
}

func (s *service) Health(ctx context.Context) error {
	return ctx.Err()
}
