package pricing

import (
	"errors"
	"fmt"
)

// ProgramParams is the recognised-options table of §6, plus the
// expansion's additive knobs (§10's Pricing config section binds these
// koanf-tagged fields via pkg/config).
type ProgramParams struct {
	LambdaStart float64 `koanf:"lambda_start"`
	LambdaEnd   float64 `koanf:"lambda_end"`
	LambdaInc   float64 `koanf:"lambda_inc"`

	CostEqualityTolerance float64 `koanf:"cost_equality_tolerance"`
	ReducedCostEpsilon    float64 `koanf:"reduced_cost_epsilon"`

	ForwardDiversification  int `koanf:"forward_diversification"`
	MaxForwardWalks         int `koanf:"max_forward_walks"`
	BackwardDiversification int `koanf:"backward_diversification"`
	MaxBackwardWalks        int `koanf:"max_backward_walks"`

	ParallelVesselClasses bool `koanf:"parallel_vessel_classes"`
	ContextCheckInterval  int  `koanf:"context_check_interval"`
}

// DefaultProgramParams returns the parameter set used when no
// configuration overrides are supplied.
func DefaultProgramParams() ProgramParams {
	return ProgramParams{
		LambdaStart:             0.1,
		LambdaEnd:               1.0,
		LambdaInc:               0.1,
		CostEqualityTolerance:   DefaultCostEqualityTolerance,
		ReducedCostEpsilon:      1e-7,
		ForwardDiversification:  3,
		MaxForwardWalks:         32,
		BackwardDiversification: 3,
		MaxBackwardWalks:        32,
		ContextCheckInterval:    256,
	}
}

// Validate accumulates every violated constraint into one wrapped error,
// mirroring pkg/config's Config.Validate accumulate-then-wrap pattern.
func (p ProgramParams) Validate() error {
	var errs []error
	if p.LambdaStart < 0 || p.LambdaStart > 1 {
		errs = append(errs, fmt.Errorf("lambda_start must be within [0,1], got %v", p.LambdaStart))
	}
	if p.LambdaEnd < 0 || p.LambdaEnd > 1 {
		errs = append(errs, fmt.Errorf("lambda_end must be within [0,1], got %v", p.LambdaEnd))
	}
	if p.LambdaStart > p.LambdaEnd {
		errs = append(errs, fmt.Errorf("lambda_start (%v) must not exceed lambda_end (%v)", p.LambdaStart, p.LambdaEnd))
	}
	if p.LambdaInc <= 0 {
		errs = append(errs, fmt.Errorf("lambda_inc must be positive, got %v", p.LambdaInc))
	}
	if p.CostEqualityTolerance <= 0 {
		errs = append(errs, fmt.Errorf("cost_equality_tolerance must be positive, got %v", p.CostEqualityTolerance))
	}
	if p.ReducedCostEpsilon <= 0 {
		errs = append(errs, fmt.Errorf("reduced_cost_epsilon must be positive, got %v", p.ReducedCostEpsilon))
	}
	if p.ForwardDiversification <= 0 {
		errs = append(errs, fmt.Errorf("forward_diversification must be positive, got %d", p.ForwardDiversification))
	}
	if p.BackwardDiversification <= 0 {
		errs = append(errs, fmt.Errorf("backward_diversification must be positive, got %d", p.BackwardDiversification))
	}
	if p.MaxForwardWalks <= 0 {
		errs = append(errs, fmt.Errorf("max_forward_walks must be positive, got %d", p.MaxForwardWalks))
	}
	if p.MaxBackwardWalks <= 0 {
		errs = append(errs, fmt.Errorf("max_backward_walks must be positive, got %d", p.MaxBackwardWalks))
	}
	return errors.Join(errs...)
}
