package config

import (
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				App: AppConfig{Name: "pricer"},
				Log: LogConfig{Level: "info"},
			},
			wantErr: false,
		},
		{
			name:    "missing app name",
			cfg:     Config{Log: LogConfig{Level: "info"}},
			wantErr: true,
		},
		{
			name: "invalid log level",
			cfg: Config{
				App: AppConfig{Name: "pricer"},
				Log: LogConfig{Level: "invalid"},
			},
			wantErr: true,
		},
		{
			name: "valid debug level",
			cfg: Config{
				App: AppConfig{Name: "pricer"},
				Log: LogConfig{Level: "debug"},
			},
			wantErr: false,
		},
		{
			name: "metrics port out of range",
			cfg: Config{
				App:     AppConfig{Name: "pricer"},
				Log:     LogConfig{Level: "info"},
				Metrics: MetricsConfig{Enabled: true, Port: 0},
			},
			wantErr: true,
		},
		{
			name: "lambda_start exceeds lambda_end",
			cfg: Config{
				App:     AppConfig{Name: "pricer"},
				Log:     LogConfig{Level: "info"},
				Pricing: PricingConfig{LambdaStart: 0.8, LambdaEnd: 0.2},
			},
			wantErr: true,
		},
		{
			name: "valid pricing config",
			cfg: Config{
				App:     AppConfig{Name: "pricer"},
				Log:     LogConfig{Level: "info"},
				Pricing: PricingConfig{LambdaStart: 0.1, LambdaEnd: 1.0},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"dev", true},
		{"production", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"prod", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}
