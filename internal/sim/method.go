package sim

import (
	"fmt"

	"github.com/cwbudde/psychofit/internal/fit"
	"github.com/cwbudde/psychofit/internal/opt"
)

// Method names accepted by NewMethod
const (
	MethodSimplex = "simplex"
	MethodMayfly  = "mayfly"
	MethodGonum   = "gonum"
)

// Mayfly search settings for a 2-parameter logistic fit
const (
	mayflyIters = 200
	mayflyPop   = 30
	mayflyLower = -10.0
	mayflyUpper = 10.0
)

// NewMethod builds the optimizer used to fit each repetition
func NewMethod(name string, settings opt.Settings, seed int64) (opt.Method[*fit.Dataset], error) {
	switch name {
	case MethodSimplex, "":
		return opt.NewSimplex[*fit.Dataset](settings), nil
	case MethodMayfly:
		return opt.NewMayfly[*fit.Dataset](mayflyIters, mayflyPop, seed, mayflyLower, mayflyUpper), nil
	case MethodGonum:
		return opt.NewGonum[*fit.Dataset](settings.Tolerance, settings.MaxIterations), nil
	default:
		return nil, fmt.Errorf("unknown method: %s", name)
	}
}
