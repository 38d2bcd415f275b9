package fit

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroSlope is returned when an inverse is requested for a flat curve
var ErrZeroSlope = errors.New("slope is zero")

// Logistic maps a linear predictor to a probability in (0,1)
func Logistic(y float64) float64 {
	return 1 / (1 + math.Exp(-y))
}

// InverseLogistic returns the intensity at which the model reaches probability p.
// A zero slope yields NaN and ErrZeroSlope.
func InverseLogistic(p float64, b Params) (float64, error) {
	if !(p > 0 && p < 1) {
		return math.NaN(), fmt.Errorf("probability must be in (0,1), got %v", p)
	}
	if b[1] == 0 {
		return math.NaN(), ErrZeroSlope
	}
	return (math.Log(-p/(p-1)) - b[0]) / b[1], nil
}

// Derived holds the quantities reported for a fitted curve
type Derived struct {
	Threshold float64 // intensity at p=0.5
	Slope     float64 // b1/4, the slope at threshold
	X25       float64
	X75       float64
	Acuity    float64 // X75 - X25

	// Defined is false when the fit is degenerate; the NaN fields must then
	// be read as undefined rather than as numbers.
	Defined bool
}

// Derive computes threshold, slope, and acuity for b
func Derive(b Params) Derived {
	d := Derived{Slope: b[1] / 4}

	x25, err25 := InverseLogistic(0.25, b)
	x75, err75 := InverseLogistic(0.75, b)
	if err25 != nil || err75 != nil {
		d.Threshold, d.X25, d.X75, d.Acuity = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return d
	}

	d.Threshold = -b[0] / b[1]
	d.X25 = x25
	d.X75 = x75
	d.Acuity = x75 - x25
	d.Defined = isFinite(d.Threshold) && isFinite(d.Acuity)
	return d
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
