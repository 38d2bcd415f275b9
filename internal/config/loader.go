package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the configuration of the classic command line defaults
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		NSims:        10,
		NReps:        8,
		B0:           0.0,
		B1:           0.40,
		Format:       "text",
		Intensities:  []float64{-20.0, -10.0, -5.0, 0.0, 5.0, 10.0, 20.0},
		InitialGuess: []float64{0.0, 0.40},
		Optimizer: Optimizer{
			Method:        "simplex",
			Tolerance:     1e-8,
			StepScale:     1.0,
			StepMode:      "constant",
			MaxIterations: 1000,
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfigYAML parses YAML on top of the defaults and validates the result
func ParseConfigYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration before any simulation work starts
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.NSims <= 0 {
		return fmt.Errorf("nsims must be positive, got %d", c.NSims)
	}
	if c.NReps <= 0 {
		return fmt.Errorf("nreps must be positive, got %d", c.NReps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	if c.Format != "text" && c.Format != "jsonl" {
		return fmt.Errorf("format must be 'text' or 'jsonl', got %s", c.Format)
	}
	if len(c.Intensities) == 0 {
		return fmt.Errorf("at least one intensity must be defined")
	}
	if len(c.InitialGuess) != 2 {
		return fmt.Errorf("initial_guess must have 2 values (intercept, slope), got %d", len(c.InitialGuess))
	}

	if err := validateOptimizer(&c.Optimizer); err != nil {
		return fmt.Errorf("optimizer validation failed: %w", err)
	}
	return nil
}

// validateOptimizer validates the optimizer section
func validateOptimizer(o *Optimizer) error {
	switch o.Method {
	case "simplex", "mayfly", "gonum":
	default:
		return fmt.Errorf("method must be simplex, mayfly, or gonum, got %s", o.Method)
	}
	if o.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, got %g", o.Tolerance)
	}
	if o.StepScale <= 0 {
		return fmt.Errorf("step_scale must be positive, got %g", o.StepScale)
	}
	if o.StepMode != "constant" && o.StepMode != "relative" {
		return fmt.Errorf("step_mode must be 'constant' or 'relative', got %s", o.StepMode)
	}
	if o.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", o.MaxIterations)
	}
	return nil
}
