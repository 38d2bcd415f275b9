package opt

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// Mayfly wraps the external Mayfly library to conform to the Method interface.
// It is a fixed-budget population search: it always runs MaxIters iterations,
// so a completed run reports StatusConverged.
type Mayfly[C any] struct {
	MaxIters int
	PopSize  int
	Seed     int64

	// Lower and Upper bound every dimension (the library uses scalar bounds).
	Lower float64
	Upper float64
}

// NewMayfly creates a new Mayfly optimizer adapter
func NewMayfly[C any](maxIters, popSize int, seed int64, lower, upper float64) *Mayfly[C] {
	return &Mayfly[C]{
		MaxIters: maxIters,
		PopSize:  popSize,
		Seed:     seed,
		Lower:    lower,
		Upper:    upper,
	}
}

// Reseed returns a copy of m that draws its population from seed
func (m *Mayfly[C]) Reseed(seed int64) Method[C] {
	c := *m
	c.Seed = seed
	return &c
}

// Minimize executes the Mayfly optimization using the external library.
// The starting point only fixes the dimension; the population is drawn within bounds.
func (m *Mayfly[C]) Minimize(obj Objective[C], x []float64, ctx C) (Result, error) {
	if obj == nil {
		return Result{}, fmt.Errorf("objective cannot be nil")
	}
	if len(x) == 0 {
		return Result{}, fmt.Errorf("initial guess cannot be empty")
	}
	if m.Lower >= m.Upper {
		return Result{}, fmt.Errorf("invalid bounds: lower %v must be below upper %v", m.Lower, m.Upper)
	}

	evals := 0
	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = func(p []float64) float64 {
		evals++
		return obj.Eval(p, ctx)
	}
	config.ProblemSize = len(x)
	config.MaxIterations = m.MaxIters
	config.NPop = m.PopSize
	config.LowerBound = m.Lower
	config.UpperBound = m.Upper

	// Set random seed for reproducibility
	config.Rand = rand.New(rand.NewSource(m.Seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		return Result{}, fmt.Errorf("mayfly optimization failed: %w", err)
	}

	copy(x, result.GlobalBest.Position)
	return Result{
		X:           x,
		F:           result.GlobalBest.Cost,
		Status:      StatusConverged,
		Iterations:  m.MaxIters,
		Evaluations: evals,
	}, nil
}
