package fit

import "math"

// probFloor keeps the likelihood away from log(0)
const probFloor = 1e-10

// NegLogLikelihood scores a candidate (intercept, slope) vector against a dataset.
// It implements opt.Objective[*Dataset].
type NegLogLikelihood struct{}

// Eval returns the total negative log-likelihood of ds under x. It never mutates ds.
func (NegLogLikelihood) Eval(x []float64, ds *Dataset) float64 {
	var nll float64
	for _, t := range ds.Trials {
		p := Logistic(x[0] + x[1]*t.Intensity)
		p = min(max(p, probFloor), 1-probFloor)
		if t.Response {
			nll -= math.Log(p)
		} else {
			nll -= math.Log(1 - p)
		}
	}
	return nll
}
