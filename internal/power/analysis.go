package power

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cwbudde/psychofit/internal/fit"
	"github.com/cwbudde/psychofit/internal/opt"
	"github.com/cwbudde/psychofit/internal/sim"
)

// Config describes a power sweep. For every (subjects, trials, shift) cell,
// Experiments paired pre/post experiments are simulated and tested.
type Config struct {
	Subjects    []int
	Trials      []int // trials per intensity
	Shifts      []float64
	Experiments int
	Slope       float64
	Intensities []float64
	Seed        uint64
	Workers     int
	Method      opt.Method[*fit.Dataset]
}

func (c *Config) validate() error {
	if len(c.Subjects) == 0 || len(c.Trials) == 0 || len(c.Shifts) == 0 {
		return fmt.Errorf("subjects, trials, and shifts must each have at least one value")
	}
	for _, s := range c.Subjects {
		if s < 2 {
			return fmt.Errorf("subjects must be at least 2 for a paired test, got %d", s)
		}
	}
	if c.Experiments <= 0 {
		return fmt.Errorf("experiments must be positive, got %d", c.Experiments)
	}
	if c.Slope == 0 {
		return fmt.Errorf("slope cannot be zero")
	}
	return nil
}

// Cell is the detection rate for one combination of the sweep
type Cell struct {
	Subjects  int
	Trials    int
	Shift     float64
	D05       float64 // fraction of experiments with p < .05 and t > 0
	D01       float64 // fraction of experiments with p < .01 and t > 0
	Undefined int     // experiments whose t statistic could not be formed
}

// Analyze runs the sweep. emit, when non-nil, receives each cell as soon as it
// is finished.
func Analyze(ctx context.Context, cfg Config, emit func(Cell)) ([]Cell, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid power config: %w", err)
	}
	if len(cfg.Intensities) == 0 {
		cfg.Intensities = fit.DefaultIntensities()
	}

	var cells []Cell
	index := uint64(0)
	for _, s := range cfg.Subjects {
		for _, n := range cfg.Trials {
			for _, e := range cfg.Shifts {
				cell, err := analyzeCell(ctx, cfg, s, n, e, cfg.Seed+2*index)
				if err != nil {
					return cells, err
				}
				index++
				slog.Info("Power cell complete",
					"subjects", s,
					"trials", n,
					"shift", e,
					"d05", cell.D05,
					"d01", cell.D01,
				)
				if emit != nil {
					emit(cell)
				}
				cells = append(cells, cell)
			}
		}
	}
	return cells, nil
}

// analyzeCell simulates pre (threshold 0) and post (threshold shifted by e)
// groups and counts experiments where the post threshold is significantly larger.
func analyzeCell(ctx context.Context, cfg Config, subjects, trials int, shift float64, seed uint64) (Cell, error) {
	total := subjects * cfg.Experiments
	base := sim.Config{
		NSims:        total,
		NReps:        trials,
		Intensities:  cfg.Intensities,
		InitialGuess: fit.DefaultInitialGuess,
		Workers:      cfg.Workers,
		Method:       cfg.Method,
	}

	preCfg := base
	preCfg.Truth = fit.Params{0, cfg.Slope}
	preCfg.Seed = seed
	pre, err := sim.Run(ctx, preCfg)
	if err != nil {
		return Cell{}, fmt.Errorf("pre simulation: %w", err)
	}

	postCfg := base
	postCfg.Truth = fit.Params{-cfg.Slope * shift, cfg.Slope}
	postCfg.Seed = seed + 1
	post, err := sim.Run(ctx, postCfg)
	if err != nil {
		return Cell{}, fmt.Errorf("post simulation: %w", err)
	}

	cell := Cell{Subjects: subjects, Trials: trials, Shift: shift}
	preT := make([]float64, subjects)
	postT := make([]float64, subjects)
	d05, d01 := 0, 0
	for x := 0; x < cfg.Experiments; x++ {
		for i := 0; i < subjects; i++ {
			preT[i] = pre.Repetitions[x*subjects+i].Derived.Threshold
			postT[i] = post.Repetitions[x*subjects+i].Derived.Threshold
		}
		t, p, err := PairedTTest(postT, preT)
		if err != nil {
			cell.Undefined++
			continue
		}
		if t > 0 && p < 0.05 {
			d05++
		}
		if t > 0 && p < 0.01 {
			d01++
		}
	}

	cell.D05 = float64(d05) / float64(cfg.Experiments)
	cell.D01 = float64(d01) / float64(cfg.Experiments)
	return cell, nil
}
