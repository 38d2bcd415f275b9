package opt

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// StepMode selects how the initial simplex is laid out around the guess
type StepMode int

const (
	// StepConstant offsets each axis by StepScale.
	StepConstant StepMode = iota
	// StepRelative offsets each axis by StepScale*|x_i|, or ZeroStep when x_i is zero.
	StepRelative
)

func (m StepMode) String() string {
	switch m {
	case StepConstant:
		return "constant"
	case StepRelative:
		return "relative"
	default:
		return "unknown"
	}
}

// ParseStepMode converts a step mode name into a StepMode
func ParseStepMode(name string) (StepMode, error) {
	switch name {
	case "constant":
		return StepConstant, nil
	case "relative":
		return StepRelative, nil
	default:
		return 0, fmt.Errorf("unknown step mode: %s", name)
	}
}

const (
	defaultTolerance     = 1e-8
	defaultXTolerance    = 1e-6
	defaultStepScale     = 1.0
	defaultZeroStep      = 0.00025
	defaultMaxIterations = 1000

	reflectCoef  = 1.0
	expandCoef   = 2.0
	contractCoef = 0.5
	shrinkCoef   = 0.5
)

// Settings configures a Nelder-Mead run
type Settings struct {
	// Tolerance is the convergence threshold on the spread of objective values
	// across the simplex, tested both absolutely and relative to their magnitude.
	Tolerance float64

	// XTolerance bounds how far any vertex may lie from the best one, per
	// coordinate, scaled by max(1, |best|). Both tolerances must hold. Zero
	// selects the default.
	XTolerance float64

	// StepScale sizes the initial simplex (see StepMode).
	StepScale float64
	StepMode  StepMode

	// ZeroStep replaces a zero guess component in StepRelative mode.
	ZeroStep float64

	// MaxIterations bounds the search. Zero selects the default.
	MaxIterations int
}

// DefaultSettings returns the settings used by the estimation harness
func DefaultSettings() Settings {
	return Settings{
		Tolerance:     defaultTolerance,
		XTolerance:    defaultXTolerance,
		StepScale:     defaultStepScale,
		StepMode:      StepConstant,
		ZeroStep:      defaultZeroStep,
		MaxIterations: defaultMaxIterations,
	}
}

func (s Settings) validate() error {
	if s.Tolerance < 0 || math.IsNaN(s.Tolerance) {
		return fmt.Errorf("tolerance must be non-negative, got %v", s.Tolerance)
	}
	if s.XTolerance < 0 || math.IsNaN(s.XTolerance) {
		return fmt.Errorf("x tolerance must be non-negative, got %v", s.XTolerance)
	}
	if !(s.StepScale > 0) || math.IsInf(s.StepScale, 0) {
		return fmt.Errorf("step scale must be positive and finite, got %v", s.StepScale)
	}
	if s.MaxIterations < 0 {
		return fmt.Errorf("max iterations cannot be negative, got %d", s.MaxIterations)
	}
	return nil
}

func (s Settings) initialStep(xi float64) float64 {
	if s.StepMode == StepRelative {
		if xi == 0 {
			return s.ZeroStep
		}
		return s.StepScale * math.Abs(xi)
	}
	return s.StepScale
}

type vertex struct {
	x   []float64
	f   float64
	seq int // insertion order, breaks ties
}

// NelderMead minimizes obj with the downhill simplex method, starting at x.
//
// ctx is handed unchanged to every objective call. On return x holds the best
// vertex found. The search stops once both the value spread and the vertex
// spread are within tolerance. When MaxIterations is reached first the
// best vertex is still returned, with Status set to StatusIterationLimit.
//
// All working state is local to the call, so concurrent runs with distinct
// contexts do not interfere.
func NelderMead[C any](obj Objective[C], x []float64, ctx C, s Settings) (Result, error) {
	if obj == nil {
		return Result{}, fmt.Errorf("objective cannot be nil")
	}
	d := len(x)
	if d == 0 {
		return Result{}, fmt.Errorf("initial guess cannot be empty")
	}
	if err := s.validate(); err != nil {
		return Result{}, err
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = defaultMaxIterations
	}
	if s.ZeroStep <= 0 {
		s.ZeroStep = defaultZeroStep
	}
	if s.XTolerance == 0 {
		s.XTolerance = defaultXTolerance
	}

	evals := 0
	eval := func(p []float64) float64 {
		evals++
		f := obj.Eval(p, ctx)
		if math.IsNaN(f) {
			return math.Inf(1)
		}
		return f
	}

	seq := 0
	simplex := make([]vertex, d+1)
	for i := range simplex {
		p := slices.Clone(x)
		if i > 0 {
			p[i-1] += s.initialStep(x[i-1])
		}
		simplex[i] = vertex{x: p, f: eval(p), seq: seq}
		seq++
	}

	replace := func(v *vertex, p []float64, f float64) {
		copy(v.x, p)
		v.f = f
		v.seq = seq
		seq++
	}

	centroid := make([]float64, d)
	reflected := make([]float64, d)
	candidate := make([]float64, d)

	status := StatusIterationLimit
	iter := 0
	for {
		slices.SortFunc(simplex, compareVertices)
		best, worst := &simplex[0], &simplex[d]

		if hasConverged(best.f, worst.f, s.Tolerance) && hasCollapsed(simplex, s.XTolerance) {
			status = StatusConverged
			break
		}
		if iter >= s.MaxIterations {
			break
		}
		iter++

		clear(centroid)
		for _, v := range simplex[:d] {
			for j, xj := range v.x {
				centroid[j] += xj
			}
		}
		for j := range centroid {
			centroid[j] /= float64(d)
		}

		moveAlong(reflected, centroid, worst.x, -reflectCoef)
		fr := eval(reflected)

		switch {
		case fr < best.f:
			moveAlong(candidate, centroid, reflected, expandCoef)
			if fe := eval(candidate); fe < fr {
				replace(worst, candidate, fe)
			} else {
				replace(worst, reflected, fr)
			}
		case fr < simplex[d-1].f:
			replace(worst, reflected, fr)
		default:
			moveAlong(candidate, centroid, worst.x, contractCoef)
			if fc := eval(candidate); fc < worst.f {
				replace(worst, candidate, fc)
				continue
			}
			for i := 1; i <= d; i++ {
				v := &simplex[i]
				moveAlong(v.x, best.x, v.x, shrinkCoef)
				v.f = eval(v.x)
			}
		}
	}

	copy(x, simplex[0].x)
	return Result{
		X:           x,
		F:           simplex[0].f,
		Status:      status,
		Iterations:  iter,
		Evaluations: evals,
	}, nil
}

// moveAlong sets dst = base + coef*(p - base). dst may alias p.
func moveAlong(dst, base, p []float64, coef float64) {
	for j := range dst {
		dst[j] = base[j] + coef*(p[j]-base[j])
	}
}

func compareVertices(a, b vertex) int {
	if c := cmp.Compare(a.f, b.f); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

func hasConverged(fBest, fWorst, tol float64) bool {
	spread := fWorst - fBest
	if math.IsNaN(spread) || math.IsInf(spread, 0) {
		return false
	}
	if spread <= tol {
		return true
	}
	return 2*spread <= tol*(math.Abs(fWorst)+math.Abs(fBest))
}

// hasCollapsed reports whether every vertex lies within tol of the best
// vertex (simplex[0]) in each coordinate. Equal values alone are not enough:
// vertices spread along one contour line have no value spread.
func hasCollapsed(simplex []vertex, tol float64) bool {
	best := simplex[0].x
	scale := 1.0
	for _, b := range best {
		scale = max(scale, math.Abs(b))
	}
	limit := tol * scale
	for _, v := range simplex[1:] {
		for j, xj := range v.x {
			if !(math.Abs(xj-best[j]) <= limit) {
				return false
			}
		}
	}
	return true
}

// Simplex is a Method backed by NelderMead
type Simplex[C any] struct {
	Settings Settings
}

// NewSimplex creates a Nelder-Mead method with the given settings
func NewSimplex[C any](settings Settings) *Simplex[C] {
	return &Simplex[C]{Settings: settings}
}

// Minimize runs NelderMead with the method's settings
func (m *Simplex[C]) Minimize(obj Objective[C], x []float64, ctx C) (Result, error) {
	return NelderMead(obj, x, ctx, m.Settings)
}
