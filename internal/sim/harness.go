package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/cwbudde/psychofit/internal/fit"
	"github.com/cwbudde/psychofit/internal/opt"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config describes one batch of simulated experiments
type Config struct {
	NSims        int
	NReps        int // trials per intensity
	Truth        fit.Params
	Intensities  []float64
	InitialGuess fit.Params
	Seed         uint64
	Workers      int // 0 means runtime.NumCPU()
	Method       opt.Method[*fit.Dataset]

	// ProgressInterval throttles progress logging. Zero disables it.
	ProgressInterval time.Duration
}

func (c *Config) validate() error {
	if c.NSims <= 0 {
		return fmt.Errorf("nsims must be positive, got %d", c.NSims)
	}
	if c.NReps <= 0 {
		return fmt.Errorf("nreps must be positive, got %d", c.NReps)
	}
	if len(c.Intensities) == 0 {
		return fmt.Errorf("at least one intensity is required")
	}
	if c.Method == nil {
		return fmt.Errorf("method cannot be nil")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	return nil
}

// Repetition is the outcome of one simulate-and-fit unit of work
type Repetition struct {
	Index     int
	Estimate  fit.Estimate
	Derived   fit.Derived
	Positives int // trials with outcome 1 in the simulated dataset
}

// Result holds every repetition of a run, indexed by repetition number
type Result struct {
	RunID       string
	Repetitions []Repetition
	Elapsed     time.Duration
}

// Run executes cfg.NSims independent repetitions on a bounded worker pool.
//
// Repetition i draws from its own random stream seeded by (cfg.Seed, i), so the
// output depends only on the configuration, never on scheduling. Each task
// writes only its own slot of the result slice.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	runID := uuid.New().String()
	logger := slog.With("run_id", runID)
	logger.Info("Starting simulation",
		"nsims", cfg.NSims,
		"nreps", cfg.NReps,
		"b0", cfg.Truth[0],
		"b1", cfg.Truth[1],
		"seed", cfg.Seed,
		"workers", workers,
	)

	reps := make([]Repetition, cfg.NSims)
	var completed atomic.Int64

	progressDone := make(chan struct{})
	if cfg.ProgressInterval > 0 {
		go monitorProgress(ctx, logger, &completed, cfg.NSims, cfg.ProgressInterval, progressDone)
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.NSims; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := runRepetition(logger, cfg, i)
			if err != nil {
				return fmt.Errorf("repetition %d: %w", i, err)
			}
			reps[i] = rep
			completed.Add(1)
			return nil
		})
	}
	err := g.Wait()
	close(progressDone)
	if err != nil {
		logger.Error("Simulation failed", "error", err)
		return nil, err
	}

	elapsed := time.Since(start)
	summary := Summarize(reps)
	logger.Info("Simulation complete",
		"elapsed", elapsed,
		"mean_b1", summary.MeanSlope,
		"sd_b1", summary.SDSlope,
		"mean_threshold", summary.MeanThreshold,
		"mean_acuity", summary.MeanAcuity,
		"not_converged", summary.NotConverged,
		"undefined", summary.Undefined,
	)

	return &Result{
		RunID:       runID,
		Repetitions: reps,
		Elapsed:     elapsed,
	}, nil
}

// runRepetition simulates one dataset and fits it. The dataset lives only for
// the duration of this call. A stochastic method is reseeded from the same
// stream after the data are drawn.
func runRepetition(logger *slog.Logger, cfg Config, index int) (Repetition, error) {
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(index)))

	ds, err := fit.Simulate(rng, cfg.Truth, cfg.Intensities, cfg.NReps)
	if err != nil {
		return Repetition{}, err
	}

	method := cfg.Method
	if r, ok := method.(opt.Reseeder[*fit.Dataset]); ok {
		method = r.Reseed(int64(rng.Uint64()))
	}

	est, err := fit.EstimateParams(method, ds, cfg.InitialGuess)
	if err != nil {
		return Repetition{}, err
	}

	derived := fit.Derive(est.Params)
	if !est.Converged() {
		logger.Warn("Repetition did not converge",
			"rep", index,
			"iterations", est.Iterations,
			"nll", est.NLL,
			"b0", est.Params[0],
			"b1", est.Params[1],
		)
	}
	if !derived.Defined {
		logger.Warn("Derived quantities undefined", "rep", index, "b1", est.Params[1])
	}

	return Repetition{
		Index:     index,
		Estimate:  est,
		Derived:   derived,
		Positives: ds.Positives(),
	}, nil
}

// monitorProgress periodically logs how many repetitions have finished
func monitorProgress(ctx context.Context, logger *slog.Logger, completed *atomic.Int64, total int, interval time.Duration, done chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := completed.Load()
			var rate float64
			if elapsed := time.Since(start).Seconds(); elapsed > 0 {
				rate = float64(n) / elapsed
			}
			logger.Debug("Simulation progress",
				"completed", n,
				"total", total,
				"reps_per_second", rate,
			)
		}
	}
}
