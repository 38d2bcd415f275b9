package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the spread of estimates across repetitions.
// Threshold and acuity statistics only cover repetitions with defined quantities.
// Standard deviations are NaN when fewer than two values are available.
type Summary struct {
	N            int
	Undefined    int
	NotConverged int

	MeanSlope, SDSlope         float64
	MeanThreshold, SDThreshold float64
	MeanAcuity, SDAcuity       float64
}

// Summarize computes mean and standard deviation of the fitted quantities
func Summarize(reps []Repetition) Summary {
	s := Summary{N: len(reps)}

	slopes := make([]float64, 0, len(reps))
	thresholds := make([]float64, 0, len(reps))
	acuities := make([]float64, 0, len(reps))
	for _, r := range reps {
		if !r.Estimate.Converged() {
			s.NotConverged++
		}
		slopes = append(slopes, r.Estimate.Params[1])
		if !r.Derived.Defined {
			s.Undefined++
			continue
		}
		thresholds = append(thresholds, r.Derived.Threshold)
		acuities = append(acuities, r.Derived.Acuity)
	}

	s.MeanSlope, s.SDSlope = meanStdDev(slopes)
	s.MeanThreshold, s.SDThreshold = meanStdDev(thresholds)
	s.MeanAcuity, s.SDAcuity = meanStdDev(acuities)
	return s
}

func meanStdDev(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return x[0], math.NaN()
	}
	return stat.MeanStdDev(x, nil)
}
