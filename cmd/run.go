package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/cwbudde/psychofit/internal/config"
	"github.com/cwbudde/psychofit/internal/fit"
	"github.com/cwbudde/psychofit/internal/opt"
	"github.com/cwbudde/psychofit/internal/report"
	"github.com/cwbudde/psychofit/internal/sim"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	seed          int64
	workers       int
	method        string
	tolerance     float64
	stepScale     float64
	stepMode      string
	maxIterations int
	intensities   []float64
	format        string
	progressEvery time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run [nsims nreps b0 b1]",
	Short: "Simulate and fit nsims experiments",
	Long: `Simulates nsims experiments of nreps trials per intensity from the curve
p = 1/(1+exp(-(b0 + b1*x))) and refits each one.

Without arguments the defaults are nsims=10 nreps=8 b0=0.0 b1=0.40.
If any argument is given all four must be given. Flags go before the arguments.

Each output line holds: b0 b1 threshold slope x25 x75 acuity`,
	Args: validateRunArgs,
	RunE: runSimulation,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	defaults := config.Default()
	flags := cmd.Flags()
	// Flags must precede the positional arguments so that a negative b0 is
	// not mistaken for a flag.
	flags.SetInterspersed(false)
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.Int64Var(&seed, "seed", 0, "Random seed (default: time-based)")
	flags.IntVar(&workers, "workers", 0, "Parallel workers (0 = number of CPUs)")
	flags.StringVar(&method, "method", defaults.Optimizer.Method, "Fitting method: simplex, mayfly, gonum")
	flags.Float64Var(&tolerance, "tolerance", defaults.Optimizer.Tolerance, "Convergence tolerance on the simplex value spread")
	flags.Float64Var(&stepScale, "step-scale", defaults.Optimizer.StepScale, "Initial simplex step")
	flags.StringVar(&stepMode, "step-mode", defaults.Optimizer.StepMode, "Initial simplex layout: constant, relative")
	flags.IntVar(&maxIterations, "max-iterations", defaults.Optimizer.MaxIterations, "Optimizer iteration cap")
	flags.Float64SliceVar(&intensities, "intensities", defaults.Intensities, "Stimulus intensities")
	flags.StringVar(&format, "format", defaults.Format, "Output format: text, jsonl")
	flags.DurationVar(&progressEvery, "progress", 0, "Log progress at this interval (debug level, 0 = off)")
}

func validateRunArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 4 {
		return fmt.Errorf("expected no arguments or all four (nsims nreps b0 b1), got %d", len(args))
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != logLevel {
		setupLogger(cfg.LogLevel, os.Stderr)
	}

	runSeed := time.Now().UnixNano()
	if cfg.Seed != nil {
		runSeed = *cfg.Seed
	} else {
		slog.Info("Using time-based seed", "seed", runSeed)
	}

	settings, err := optimizerSettings(cfg.Optimizer)
	if err != nil {
		return err
	}
	fitMethod, err := sim.NewMethod(cfg.Optimizer.Method, settings, runSeed)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	result, err := sim.Run(cmd.Context(), sim.Config{
		NSims:            cfg.NSims,
		NReps:            cfg.NReps,
		Truth:            fit.Params{cfg.B0, cfg.B1},
		Intensities:      cfg.Intensities,
		InitialGuess:     fit.Params{cfg.InitialGuess[0], cfg.InitialGuess[1]},
		Seed:             uint64(runSeed),
		Workers:          cfg.Workers,
		Method:           fitMethod,
		ProgressInterval: progressEvery,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	return report.WriteAll(writer, result.Repetitions)
}

// resolveConfig layers defaults, the optional YAML file, positional
// arguments, and explicitly set flags, then validates the result.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if len(args) == 4 {
		if err := applyPositional(cfg, args); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		s := seed
		cfg.Seed = &s
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("method") {
		cfg.Optimizer.Method = method
	}
	if flags.Changed("tolerance") {
		cfg.Optimizer.Tolerance = tolerance
	}
	if flags.Changed("step-scale") {
		cfg.Optimizer.StepScale = stepScale
	}
	if flags.Changed("step-mode") {
		cfg.Optimizer.StepMode = stepMode
	}
	if flags.Changed("max-iterations") {
		cfg.Optimizer.MaxIterations = maxIterations
	}
	if flags.Changed("intensities") {
		cfg.Intensities = intensities
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyPositional parses nsims nreps b0 b1
func applyPositional(cfg *config.Config, args []string) error {
	nsims, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid nsims %q: %w", args[0], err)
	}
	nreps, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid nreps %q: %w", args[1], err)
	}
	b0, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid b0 %q: %w", args[2], err)
	}
	b1, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("invalid b1 %q: %w", args[3], err)
	}

	cfg.NSims = nsims
	cfg.NReps = nreps
	cfg.B0 = b0
	cfg.B1 = b1
	return nil
}

func optimizerSettings(o config.Optimizer) (opt.Settings, error) {
	mode, err := opt.ParseStepMode(o.StepMode)
	if err != nil {
		return opt.Settings{}, err
	}
	settings := opt.DefaultSettings()
	settings.Tolerance = o.Tolerance
	settings.StepScale = o.StepScale
	settings.StepMode = mode
	settings.MaxIterations = o.MaxIterations
	return settings, nil
}
