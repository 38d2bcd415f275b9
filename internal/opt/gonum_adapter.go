package opt

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// Gonum runs gonum's Nelder-Mead implementation behind the Method interface.
// It serves as a reference for the native simplex.
type Gonum[C any] struct {
	Tolerance     float64
	MaxIterations int
}

// NewGonum creates a gonum-backed method
func NewGonum[C any](tolerance float64, maxIterations int) *Gonum[C] {
	return &Gonum[C]{Tolerance: tolerance, MaxIterations: maxIterations}
}

// Minimize runs optimize.Minimize with optimize.NelderMead
func (g *Gonum[C]) Minimize(obj Objective[C], x []float64, ctx C) (Result, error) {
	if obj == nil {
		return Result{}, fmt.Errorf("objective cannot be nil")
	}
	if len(x) == 0 {
		return Result{}, fmt.Errorf("initial guess cannot be empty")
	}

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			return obj.Eval(p, ctx)
		},
	}

	maxIters := g.MaxIterations
	if maxIters <= 0 {
		maxIters = defaultMaxIterations
	}
	settings := &optimize.Settings{
		MajorIterations: maxIters,
		Converger: &optimize.FunctionConverge{
			Absolute:   g.Tolerance,
			Relative:   g.Tolerance,
			Iterations: 20,
		},
	}

	result, err := optimize.Minimize(problem, x, settings, &optimize.NelderMead{})
	if result == nil {
		return Result{}, fmt.Errorf("gonum minimize failed: %w", err)
	}

	status := StatusConverged
	if err != nil || result.Status.Err() != nil {
		status = StatusIterationLimit
	}

	copy(x, result.X)
	return Result{
		X:           x,
		F:           result.F,
		Status:      status,
		Iterations:  result.Stats.MajorIterations,
		Evaluations: result.Stats.FuncEvaluations,
	}, nil
}
