package fit

import (
	"math"
	"testing"
)

func TestNegLogLikelihoodSingleTrial(t *testing.T) {
	ds := NewDataset(1)
	ds.Add(0, true)

	got := NegLogLikelihood{}.Eval([]float64{0, 1}, ds)
	if math.Abs(got-math.Ln2) > 1e-12 {
		t.Errorf("expected ln 2, got %v", got)
	}
}

func TestNegLogLikelihoodNonNegativeAndFinite(t *testing.T) {
	ds := NewDataset(4)
	ds.Add(-20, false)
	ds.Add(-5, true)
	ds.Add(5, false)
	ds.Add(20, true)

	candidates := [][]float64{
		{0, 0},
		{0, 0.4},
		{100, 100},
		{-500, 0},
		{0, -1e6},
	}

	for _, x := range candidates {
		nll := NegLogLikelihood{}.Eval(x, ds)
		if nll < 0 {
			t.Errorf("Eval(%v) = %v, want non-negative", x, nll)
		}
		if math.IsInf(nll, 0) || math.IsNaN(nll) {
			t.Errorf("Eval(%v) = %v, clamping should keep it finite", x, nll)
		}
	}
}

func TestNegLogLikelihoodClampBound(t *testing.T) {
	// A certain miss under an extreme model costs at most -log(1e-10).
	ds := NewDataset(1)
	ds.Add(10, false)

	got := NegLogLikelihood{}.Eval([]float64{0, 1000}, ds)
	want := -math.Log(probFloor)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("expected clamped cost %v, got %v", want, got)
	}
}

func TestNegLogLikelihoodDoesNotMutateDataset(t *testing.T) {
	ds := NewDataset(3)
	ds.Add(-1, true)
	ds.Add(0, false)
	ds.Add(1, true)
	before := append([]Trial{}, ds.Trials...)

	NegLogLikelihood{}.Eval([]float64{0.2, 0.7}, ds)

	for i := range before {
		if ds.Trials[i] != before[i] {
			t.Fatalf("trial %d changed: %+v -> %+v", i, before[i], ds.Trials[i])
		}
	}
}

func TestNegLogLikelihoodPrefersTruth(t *testing.T) {
	// Outcomes generated deterministically at the model's expected rates.
	truth := Params{0, 0.4}
	ds := NewDataset(700)
	for _, x := range DefaultIntensities() {
		positives := int(math.Round(truth.Prob(x) * 100))
		for j := 0; j < 100; j++ {
			ds.Add(x, j < positives)
		}
	}

	nll := NegLogLikelihood{}
	atTruth := nll.Eval(truth[:], ds)
	for _, other := range [][]float64{{1, 0.4}, {0, 0.1}, {0, 1.5}, {-1, 0.2}} {
		if got := nll.Eval(other, ds); got <= atTruth {
			t.Errorf("Eval(%v) = %v should exceed value at truth %v", other, got, atTruth)
		}
	}
}
