// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config is the top-level configuration tree for the pricer binary.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	Tracing TracingConfig `koanf:"tracing"`
	Pricing PricingConfig `koanf:"pricing"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig configures structured logging and (optional) log rotation.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // used when output=file
	MaxSize    int    `koanf:"max_size"`    // MB, before rotation
	MaxBackups int    `koanf:"max_backups"` // rotated files to keep
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig configures the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// TracingConfig configures OpenTelemetry trace export.
type TracingConfig struct {
	Enabled     bool    `koanf:"enabled"`
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// PricingConfig mirrors internal/pricing.ProgramParams in koanf form, so a
// Config loaded from file/env can be mapped straight onto it (§10/§11
// of the expanded spec).
type PricingConfig struct {
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

// Validate checks the configuration, accumulating every violation rather
// than stopping at the first.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		errs = append(errs, fmt.Sprintf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port))
	}

	if c.Pricing.LambdaStart < 0 || c.Pricing.LambdaStart > 1 {
		errs = append(errs, fmt.Sprintf("pricing.lambda_start must be within [0,1], got %v", c.Pricing.LambdaStart))
	}
	if c.Pricing.LambdaEnd < 0 || c.Pricing.LambdaEnd > 1 {
		errs = append(errs, fmt.Sprintf("pricing.lambda_end must be within [0,1], got %v", c.Pricing.LambdaEnd))
	}
	if c.Pricing.LambdaStart > c.Pricing.LambdaEnd {
		errs = append(errs, fmt.Sprintf("pricing.lambda_start (%v) must not exceed pricing.lambda_end (%v)", c.Pricing.LambdaStart, c.Pricing.LambdaEnd))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsDevelopment reports whether the app is running in a development
// environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the app is running in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
