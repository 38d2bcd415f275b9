package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.NSims != 10 || cfg.NReps != 8 || cfg.B0 != 0 || cfg.B1 != 0.40 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Seed != nil {
		t.Errorf("default seed should be unset, got %d", *cfg.Seed)
	}
}

func TestParseConfigYAMLOverridesDefaults(t *testing.T) {
	yamlText := `
log_level: debug
nsims: 500
nreps: 12
b1: 0.25
seed: 1234
intensities: [-10, 0, 10]
optimizer:
  method: gonum
  tolerance: 1.0e-10
`
	cfg, err := ParseConfigYAML([]byte(yamlText))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.NSims != 500 || cfg.NReps != 12 || cfg.B1 != 0.25 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Seed == nil || *cfg.Seed != 1234 {
		t.Errorf("expected seed 1234, got %v", cfg.Seed)
	}
	if len(cfg.Intensities) != 3 {
		t.Errorf("expected 3 intensities, got %v", cfg.Intensities)
	}
	if cfg.Optimizer.Method != "gonum" || cfg.Optimizer.Tolerance != 1e-10 {
		t.Errorf("optimizer overrides not applied: %+v", cfg.Optimizer)
	}
	// Untouched fields keep their defaults
	if cfg.B0 != 0 || cfg.Optimizer.StepMode != "constant" || cfg.Optimizer.MaxIterations != 1000 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseConfigYAMLValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad log level", "log_level: loud", "log_level"},
		{"zero nsims", "nsims: 0", "nsims"},
		{"negative nreps", "nreps: -3", "nreps"},
		{"negative workers", "workers: -1", "workers"},
		{"bad format", "format: csv", "format"},
		{"empty intensities", "intensities: []", "intensity"},
		{"short guess", "initial_guess: [0.1]", "initial_guess"},
		{"bad method", "optimizer: {method: annealing}", "method"},
		{"negative tolerance", "optimizer: {tolerance: -1}", "tolerance"},
		{"zero step scale", "optimizer: {step_scale: 0}", "step_scale"},
		{"bad step mode", "optimizer: {step_mode: scaled}", "step_mode"},
		{"zero iterations", "optimizer: {max_iterations: 0}", "max_iterations"},
		{"malformed yaml", "nsims: [", "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfigYAML([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("nsims: 3\nformat: jsonl\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NSims != 3 || cfg.Format != "jsonl" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
