package sim

import (
	"math"
	"testing"

	"github.com/cwbudde/psychofit/internal/fit"
	"github.com/cwbudde/psychofit/internal/opt"
)

func repFor(b fit.Params, status opt.Status) Repetition {
	return Repetition{
		Estimate: fit.Estimate{Params: b, Status: status},
		Derived:  fit.Derive(b),
	}
}

func TestSummarize(t *testing.T) {
	reps := []Repetition{
		repFor(fit.Params{0, 0.4}, opt.StatusConverged),
		repFor(fit.Params{-0.4, 0.4}, opt.StatusConverged),
		repFor(fit.Params{0.2, 0}, opt.StatusIterationLimit),
	}

	s := Summarize(reps)
	if s.N != 3 {
		t.Errorf("N = %d, want 3", s.N)
	}
	if s.Undefined != 1 {
		t.Errorf("Undefined = %d, want 1", s.Undefined)
	}
	if s.NotConverged != 1 {
		t.Errorf("NotConverged = %d, want 1", s.NotConverged)
	}
	if math.Abs(s.MeanSlope-0.8/3) > 1e-12 {
		t.Errorf("MeanSlope = %v, want %v", s.MeanSlope, 0.8/3)
	}
	if math.Abs(s.MeanThreshold-0.5) > 1e-12 {
		t.Errorf("MeanThreshold = %v, want 0.5", s.MeanThreshold)
	}
	if math.Abs(s.SDThreshold-math.Sqrt(0.5)) > 1e-12 {
		t.Errorf("SDThreshold = %v, want %v", s.SDThreshold, math.Sqrt(0.5))
	}
	if math.Abs(s.SDAcuity) > 1e-12 {
		t.Errorf("SDAcuity = %v, want 0", s.SDAcuity)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.N != 0 || !math.IsNaN(s.MeanSlope) || !math.IsNaN(s.MeanThreshold) {
		t.Errorf("empty summary should report NaN means, got %+v", s)
	}
}
