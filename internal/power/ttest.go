package power

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrUndefined is returned when a t statistic cannot be formed
var ErrUndefined = errors.New("t statistic undefined")

// PairedTTest compares a and b pairwise (a[i] - b[i]) and returns the t
// statistic and two-sided p-value against a zero mean difference.
func PairedTTest(a, b []float64) (t, p float64, err error) {
	if len(a) != len(b) {
		return 0, 0, fmt.Errorf("sample lengths differ: %d vs %d", len(a), len(b))
	}
	n := len(a)
	if n < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 pairs, got %d", ErrUndefined, n)
	}

	diffs := make([]float64, n)
	for i := range a {
		diffs[i] = a[i] - b[i]
		if math.IsNaN(diffs[i]) || math.IsInf(diffs[i], 0) {
			return 0, 0, fmt.Errorf("%w: pair %d is not finite", ErrUndefined, i)
		}
	}

	mean, sd := stat.MeanStdDev(diffs, nil)
	if sd == 0 {
		return 0, 0, fmt.Errorf("%w: zero variance", ErrUndefined)
	}

	t = mean / (sd / math.Sqrt(float64(n)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	p = 2 * (1 - dist.CDF(math.Abs(t)))
	return t, p, nil
}
