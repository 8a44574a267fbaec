package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pricer/internal/pricing"
)

// shape describes one synthetic graph family the benchmark command can
// drive the cascade against, mirroring the generator-function-per-shape
// idiom of the flow-solver's own benchmark suite.
type shape struct {
	name  string
	build func() *pricing.Graph
}

func shapes(size int) []shape {
	return []shape{
		{name: "line", build: func() *pricing.Graph { return pricing.GenerateLineGraph("panamax", size) }},
		{name: "layered", build: func() *pricing.Graph { return pricing.GenerateLayeredGraph("panamax", size/4+1, 4) }},
		{name: "dense", build: func() *pricing.Graph { return pricing.GenerateDenseGraph("panamax", size, 0.2, 7) }},
	}
}

// newBenchmarkCmd builds the "benchmark" subcommand: run the cascade
// against each synthetic graph shape and report wall-clock time and stage
// outcome, without requiring an on-disk instance (§11's benchmark harness).
func newBenchmarkCmd(configPath *string) *cobra.Command {
	var size int
	var repeats int

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run the pricing cascade against synthetic graphs and report timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			initLogger(cfg)
			params := paramsFromConfig(cfg.Pricing)

			quiet := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelError}))

			for _, s := range shapes(size) {
				g := s.build()
				graphs := []pricing.VesselClassGraph{{ID: g.VesselClass, Graph: g}}

				var total time.Duration
				var lastAccepted bool
				var lastStages int
				for i := 0; i < repeats; i++ {
					pool := pricing.NewColumnPool()
					solver := pricing.NewSPSolver(uuid.New(), graphs, params, quiet)

					start := time.Now()
					accepted, reports, err := solver.Solve(context.Background(), pool)
					total += time.Since(start)
					if err != nil {
						return fmt.Errorf("benchmark shape %s: %w", s.name, err)
					}
					lastAccepted = accepted
					lastStages = len(reports)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%-10s nodes=%-6d edges=%-6d avg=%-12s accepted=%t stages_run=%d\n",
					s.name, g.NumNodes(), g.NumEdges(), total/time.Duration(repeats), lastAccepted, lastStages)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 50, "graph size parameter (interpretation varies by shape)")
	cmd.Flags().IntVar(&repeats, "repeats", 5, "number of cascade runs to average per shape")
	return cmd
}
