package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pricer/pkg/pricingerr"
)

// StageReport is the per-stage human-readable accounting of §4.6/§6.
type StageReport struct {
	Name                          string
	Accepted                      int
	DiscardedPositiveReducedCost int
	DiscardedInfeasible          int
	DiscardedDuplicateInStage    int
	DiscardedInPool              int
}

// String renders the report in the exact line format specified in §6.
func (r StageReport) String() string {
	return fmt.Sprintf(
		"%s.\nWe found %d new columns.\n"+
			"\t%d columns were discarded because they have positive reduced cost.\n"+
			"\t%d columns were discarded because they're infeasible wrt capacity constraints.\n"+
			"\t%d columns were discarded because they had already been generated in this iteration.\n"+
			"\t%d columns were discarded because they were already in the columns pool.",
		r.Name, r.Accepted,
		r.DiscardedPositiveReducedCost, r.DiscardedInfeasible, r.DiscardedDuplicateInStage, r.DiscardedInPool)
}

// VesselClassGraph pairs a vessel-class identifier with its time-expanded
// Graph, as produced by preprocessing (§6).
type VesselClassGraph struct {
	ID    string
	Graph *Graph
}

// SPSolver orchestrates the four-stage cascade of §4.6. It is stateless
// between calls aside from its graphs and params.
type SPSolver struct {
	ProblemReference uuid.UUID
	Graphs           []VesselClassGraph
	Params           ProgramParams
	Logger           *slog.Logger
}

// NewSPSolver builds an SPSolver. Graphs are stored sorted by vessel-class
// id so that stage execution order is deterministic regardless of the
// order callers supply them in (§4.6's ordering guarantee).
func NewSPSolver(ref uuid.UUID, graphs []VesselClassGraph, params ProgramParams, logger *slog.Logger) *SPSolver {
	sorted := append([]VesselClassGraph(nil), graphs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	if logger == nil {
		logger = slog.Default()
	}
	return &SPSolver{ProblemReference: ref, Graphs: sorted, Params: params, Logger: logger}
}

// Solve executes the cascade, mutating pool in place. It returns whether
// the pool grew, the per-stage reports produced so far (even on error, for
// diagnostics), and any error.
//
// Precondition violations raised by the labelling engine (panics, per §7)
// are recovered here and converted into a *pricingerr.Error rather than
// crashing the caller.
func (s *SPSolver) Solve(ctx context.Context, pool *ColumnPool) (accepted bool, reports []StageReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			accepted = false
			if asErr, ok := r.(error); ok {
				err = asErr
				return
			}
			err = pricingerr.New(pricingerr.PreconditionViolation, fmt.Sprintf("%v", r))
		}
	}()

	return s.runCascade(ctx, pool)
}

func (s *SPSolver) runCascade(ctx context.Context, pool *ColumnPool) (bool, []StageReport, error) {
	type stageFn func(context.Context, *ColumnPool) ([]Solution, StageReport, error)

	stages := []stageFn{
		func(ctx context.Context, pool *ColumnPool) ([]Solution, StageReport, error) {
			return s.runStage(ctx, "Fast forward heuristics", func(_ context.Context, vg VesselClassGraph) ([]Solution, error) {
				return NewHeuristicsSolver(s.Params, vg.Graph).SolveFastForward(), nil
			}, pool)
		},
		func(ctx context.Context, pool *ColumnPool) ([]Solution, StageReport, error) {
			return s.runStage(ctx, "Fast backward heuristics", func(_ context.Context, vg VesselClassGraph) ([]Solution, error) {
				return NewHeuristicsSolver(s.Params, vg.Graph).SolveFastBackward(), nil
			}, pool)
		},
		s.runReducedGraphStage,
		func(ctx context.Context, pool *ColumnPool) ([]Solution, StageReport, error) {
			return s.runStage(ctx, "Labelling on the complete graph", func(ctx context.Context, vg VesselClassGraph) ([]Solution, error) {
				return NewExactSolver(vg.Graph).Solve(ctx, s.Params)
			}, pool)
		},
	}

	var reports []StageReport
	for _, run := range stages {
		accepted, report, err := run(ctx, pool)
		reports = append(reports, report)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				err = pricingerr.Wrap(err, pricingerr.Canceled, "solve canceled")
			}
			return false, reports, err
		}
		if len(accepted) > 0 {
			for _, sol := range accepted {
				pool.Add(NewColumn(s.ProblemReference, sol))
			}
			return true, reports, nil
		}
	}
	return false, reports, nil
}

// runStage executes one stage's producer across every vessel-class graph
// (concurrently when Params.ParallelVesselClasses is set, per §4.7),
// then applies the five-bucket filter of §4.6 sequentially over the
// concatenated, order-preserved raw candidates — so the report and pool
// mutations are identical regardless of how many goroutines ran the
// search.
func (s *SPSolver) runStage(
	ctx context.Context,
	name string,
	produce func(context.Context, VesselClassGraph) ([]Solution, error),
	pool *ColumnPool,
) ([]Solution, StageReport, error) {
	report := StageReport{Name: name}
	raw := make([][]Solution, len(s.Graphs))

	if s.Params.ParallelVesselClasses && len(s.Graphs) > 1 {
		group, gctx := errgroup.WithContext(ctx)
		group.SetLimit(runtime.GOMAXPROCS(0))
		for i, vg := range s.Graphs {
			i, vg := i, vg
			group.Go(func() (err error) {
				// A panic in a worker goroutine is not seen by Solve's
				// recover, so convert it to an error here.
				defer func() {
					if r := recover(); r != nil {
						if asErr, ok := r.(error); ok {
							err = asErr
							return
						}
						err = pricingerr.New(pricingerr.PreconditionViolation, fmt.Sprintf("%v", r))
					}
				}()
				sols, err := produce(gctx, vg)
				if err != nil {
					return err
				}
				raw[i] = sols
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, report, err
		}
	} else {
		for i, vg := range s.Graphs {
			sols, err := produce(ctx, vg)
			if err != nil {
				return nil, report, err
			}
			raw[i] = sols
		}
	}

	var validSols []Solution
	for i, vg := range s.Graphs {
		for _, sol := range raw[i] {
			s.classify(&report, &validSols, sol, vg.Graph, pool)
		}
	}
	report.Accepted = len(validSols)
	s.logReport(report)
	return validSols, report, nil
}

// runReducedGraphStage is stage 3 (§4.4, §4.6): for each vessel-class
// graph in order, sweep lambda from LambdaStart to LambdaEnd, stopping the
// sweep as soon as any graph's sweep has produced an accepted column —
// mirroring the source's single shared valid_sols accumulator across the
// whole stage, which is why this stage is not dispatched through the
// generic concurrent runStage path: its early termination is coupled
// across graphs, not embarrassingly parallel per graph.
func (s *SPSolver) runReducedGraphStage(ctx context.Context, pool *ColumnPool) ([]Solution, StageReport, error) {
	report := StageReport{Name: "Labelling on the reduced graph"}
	var validSols []Solution

	for _, vg := range s.Graphs {
		h := NewHeuristicsSolver(s.Params, vg.Graph)
		for lambda := s.Params.LambdaStart; len(validSols) == 0 && lambda <= s.Params.LambdaEnd+1e-9; lambda += s.Params.LambdaInc {
			// Snap the accumulated lambda onto LambdaEnd when float drift
			// leaves it just short (0.1 summed ten times is 0.9999999999999999).
			step := lambda
			if s.Params.LambdaEnd-step < 1e-9 {
				step = s.Params.LambdaEnd
			}
			sols, err := h.SolveOnReducedGraph(ctx, step)
			if err != nil {
				return nil, report, err
			}
			for _, sol := range sols {
				s.classify(&report, &validSols, sol, vg.Graph, pool)
			}
		}
	}

	report.Accepted = len(validSols)
	s.logReport(report)
	return validSols, report, nil
}

// classify buckets a raw candidate per §4.6's strict priority order,
// appending it to validSols only when it is accepted.
func (s *SPSolver) classify(report *StageReport, validSols *[]Solution, sol Solution, g *Graph, pool *ColumnPool) {
	switch {
	case sol.ReducedCost > -s.Params.ReducedCostEpsilon:
		report.DiscardedPositiveReducedCost++
	case !sol.SatisfiesCapacityConstraints(g):
		report.DiscardedInfeasible++
	case containsSolution(*validSols, sol):
		report.DiscardedDuplicateInStage++
	case pool.Contains(sol):
		report.DiscardedInPool++
	default:
		*validSols = append(*validSols, sol)
	}
}

func (s *SPSolver) logReport(r StageReport) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(r.String(),
		"stage", r.Name,
		"accepted", r.Accepted,
		"discarded_reduced_cost", r.DiscardedPositiveReducedCost,
		"discarded_infeasible", r.DiscardedInfeasible,
		"discarded_duplicate", r.DiscardedDuplicateInStage,
		"discarded_in_pool", r.DiscardedInPool,
	)
}
