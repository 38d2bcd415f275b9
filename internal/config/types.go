package config

// Config holds everything needed to run a batch of simulated experiments
type Config struct {
	LogLevel string `yaml:"log_level"`

	NSims int     `yaml:"nsims"`
	NReps int     `yaml:"nreps"`
	B0    float64 `yaml:"b0"`
	B1    float64 `yaml:"b1"`

	// Seed makes a run reproducible. Nil selects a time-based seed.
	Seed    *int64 `yaml:"seed,omitempty"`
	Workers int    `yaml:"workers"`
	Format  string `yaml:"format"`

	Intensities  []float64 `yaml:"intensities"`
	InitialGuess []float64 `yaml:"initial_guess"`

	Optimizer Optimizer `yaml:"optimizer"`
}

// Optimizer configures the fitting method
type Optimizer struct {
	Method        string  `yaml:"method"` // simplex, mayfly, gonum
	Tolerance     float64 `yaml:"tolerance"`
	StepScale     float64 `yaml:"step_scale"`
	StepMode      string  `yaml:"step_mode"` // constant, relative
	MaxIterations int     `yaml:"max_iterations"`
}
