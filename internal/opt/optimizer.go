package opt

import "errors"

// Objective evaluates a candidate parameter vector against a caller-owned context.
// Lower values are better. Implementations must not retain x.
type Objective[C any] interface {
	Eval(x []float64, ctx C) float64
}

// ObjectiveFunc adapts a plain function to the Objective interface.
type ObjectiveFunc[C any] func(x []float64, ctx C) float64

// Eval calls f(x, ctx).
func (f ObjectiveFunc[C]) Eval(x []float64, ctx C) float64 {
	return f(x, ctx)
}

// Method defines an optimization algorithm over objectives with context type C.
type Method[C any] interface {
	// Minimize searches for the minimum of obj starting at x.
	// x is overwritten with the best parameters found.
	Minimize(obj Objective[C], x []float64, ctx C) (Result, error)
}

// Status describes why an optimization run stopped.
type Status int

const (
	StatusConverged Status = iota
	StatusIterationLimit
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusIterationLimit:
		return "iteration_limit"
	default:
		return "unknown"
	}
}

// ErrNotConverged is reported by Result.Err when the iteration cap was hit.
var ErrNotConverged = errors.New("optimizer did not converge")

// Result holds the output of an optimization run
type Result struct {
	X           []float64
	F           float64
	Status      Status
	Iterations  int
	Evaluations int
}

// Converged reports whether the run met its convergence criterion.
func (r Result) Converged() bool {
	return r.Status == StatusConverged
}

// Err returns ErrNotConverged for runs that stopped on the iteration cap, nil otherwise.
func (r Result) Err() error {
	if r.Status == StatusIterationLimit {
		return ErrNotConverged
	}
	return nil
}

// Reseeder is implemented by stochastic methods. Reseed returns a copy of the
// method drawing from a new seed, leaving the receiver unchanged.
type Reseeder[C any] interface {
	Reseed(seed int64) Method[C]
}
