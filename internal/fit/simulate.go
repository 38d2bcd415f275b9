package fit

import (
	"fmt"
	"math/rand/v2"
)

// Simulate draws a dataset of len(intensities)*nreps trials from the truth model.
// Trials are grouped by intensity in the given order. A trial is positive when a
// uniform draw in [0,1) does not exceed the model probability at its intensity.
func Simulate(rng *rand.Rand, truth Params, intensities []float64, nreps int) (*Dataset, error) {
	if len(intensities) == 0 {
		return nil, fmt.Errorf("at least one intensity is required")
	}
	if nreps <= 0 {
		return nil, fmt.Errorf("nreps must be positive, got %d", nreps)
	}

	ds := NewDataset(len(intensities) * nreps)
	for _, x := range intensities {
		p := truth.Prob(x)
		for j := 0; j < nreps; j++ {
			ds.Add(x, rng.Float64() <= p)
		}
	}
	return ds, nil
}
