package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pricer/internal/pricing"
	"pricer/pkg/config"
	"pricer/pkg/logger"
	"pricer/pkg/metrics"
	"pricer/pkg/telemetry"
)

// newPriceCmd builds the "price" subcommand: load an on-disk problem
// instance, run the pricing cascade once, and print the stage reports
// (§6/§11 — "graph instance load -> SPSolver.Solve -> report print").
func newPriceCmd(configPath *string) *cobra.Command {
	var instancePath string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Run the pricing cascade once against an on-disk problem instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			initLogger(cfg)
			metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)

			ctx := cmd.Context()
			var shutdownTracing func()
			if cfg.Tracing.Enabled {
				provider, err := telemetry.Init(ctx, telemetry.Config{
					Enabled:     cfg.Tracing.Enabled,
					Endpoint:    cfg.Tracing.Endpoint,
					ServiceName: cfg.Tracing.ServiceName,
					Version:     cfg.App.Version,
					Environment: cfg.App.Environment,
					SampleRate:  cfg.Tracing.SampleRate,
				})
				if err != nil {
					return fmt.Errorf("init tracing: %w", err)
				}
				shutdownTracing = func() { _ = provider.Shutdown(ctx) }
				defer shutdownTracing()
			}

			ref, graphs, err := pricing.LoadInstanceFile(instancePath)
			if err != nil {
				return fmt.Errorf("load instance: %w", err)
			}
			logger.Info("loaded problem instance", "problem_reference", ref.String(), "vessel_classes", len(graphs))

			params := paramsFromConfig(cfg.Pricing)
			if err := params.Validate(); err != nil {
				return fmt.Errorf("invalid pricing params: %w", err)
			}

			pool := pricing.NewColumnPool()
			solver := pricing.NewSPSolver(ref, graphs, params, logger.Log)

			accepted, reports, err := telemetry.TracePrice(ctx, ref.String(), len(graphs),
				func(ctx context.Context, _ string, _ int) (bool, error) {
					return solver.Solve(ctx, pool)
				})
			m := metrics.Get()
			for _, r := range reports {
				fmt.Fprintln(cmd.OutOrStdout(), r.String())
				m.RecordStage(r.Name, 0, r.Accepted, map[string]int{
					"positive_reduced_cost": r.DiscardedPositiveReducedCost,
					"infeasible":            r.DiscardedInfeasible,
					"duplicate_in_stage":    r.DiscardedDuplicateInStage,
					"in_pool":               r.DiscardedInPool,
				})
			}
			m.RecordCascadeOutcome(accepted)
			m.SetPoolSize(ref.String(), pool.Len())
			if err != nil {
				return fmt.Errorf("price: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\naccepted=%t pool_size=%d\n", accepted, pool.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&instancePath, "instance", "", "path to a JSON problem instance file")
	_ = cmd.MarkFlagRequired("instance")
	return cmd
}

// paramsFromConfig maps the koanf-loaded PricingConfig onto the solver's
// ProgramParams. Kept here, not in pkg/config, so that pkg/config has no
// compile-time dependency on internal/pricing.
func paramsFromConfig(c config.PricingConfig) pricing.ProgramParams {
	return pricing.ProgramParams{
		LambdaStart:             c.LambdaStart,
		LambdaEnd:               c.LambdaEnd,
		LambdaInc:               c.LambdaInc,
		CostEqualityTolerance:   c.CostEqualityTolerance,
		ReducedCostEpsilon:      c.ReducedCostEpsilon,
		ForwardDiversification:  c.ForwardDiversification,
		MaxForwardWalks:         c.MaxForwardWalks,
		BackwardDiversification: c.BackwardDiversification,
		MaxBackwardWalks:        c.MaxBackwardWalks,
		ParallelVesselClasses:   c.ParallelVesselClasses,
		ContextCheckInterval:    c.ContextCheckInterval,
	}
}
