package fit

import (
	"fmt"

	"github.com/cwbudde/psychofit/internal/opt"
)

// Estimate is the fitted model for one dataset
type Estimate struct {
	Params      Params
	NLL         float64
	Status      opt.Status
	Iterations  int
	Evaluations int
}

// Converged reports whether the optimizer met its tolerance
func (e Estimate) Converged() bool {
	return e.Status == opt.StatusConverged
}

// EstimateParams recovers (b0, b1) from ds by minimizing the negative log-likelihood
func EstimateParams(method opt.Method[*Dataset], ds *Dataset, guess Params) (Estimate, error) {
	if ds == nil || ds.Len() == 0 {
		return Estimate{}, fmt.Errorf("dataset cannot be empty")
	}

	x := []float64{guess[0], guess[1]}
	res, err := method.Minimize(NegLogLikelihood{}, x, ds)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to fit dataset: %w", err)
	}

	return Estimate{
		Params:      Params{x[0], x[1]},
		NLL:         res.F,
		Status:      res.Status,
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
	}, nil
}
