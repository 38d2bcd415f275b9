package opt

import (
	"math"
	"testing"
)

// Sphere function: f(x) = sum(x_i^2), minimum at origin
func sphere(x []float64, _ struct{}) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func TestMayflyAdapterOnSphere(t *testing.T) {
	optimizer := NewMayfly[struct{}](100, 20, 42, -10, 10) // maxIters, popSize, seed, bounds

	x := make([]float64, 3)
	res, err := optimizer.Minimize(ObjectiveFunc[struct{}](sphere), x, struct{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should converge close to zero
	if res.F > 0.1 {
		t.Errorf("Expected cost near 0, got %f", res.F)
	}

	// Check that best params are near origin
	for i, v := range x {
		if math.Abs(v) > 1.0 {
			t.Errorf("Parameter %d = %f, expected near 0", i, v)
		}
	}

	if !res.Converged() {
		t.Errorf("fixed-budget run should report convergence, got %s", res.Status)
	}
	if res.Evaluations == 0 {
		t.Error("expected objective evaluations to be counted")
	}
}

func TestMayflyAdapterDeterministic(t *testing.T) {
	// Run twice with same seed (popSize must be >=20 for mayfly v0.1.0)
	run := func() float64 {
		optimizer := NewMayfly[struct{}](50, 20, 123, -5, 5)
		res, err := optimizer.Minimize(ObjectiveFunc[struct{}](sphere), make([]float64, 2), struct{}{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return res.F
	}

	cost1, cost2 := run(), run()
	if cost1 != cost2 {
		t.Errorf("Non-deterministic: cost1=%f, cost2=%f", cost1, cost2)
	}
}

func TestMayflyAdapterRejectsInvertedBounds(t *testing.T) {
	optimizer := NewMayfly[struct{}](10, 20, 1, 5, -5)
	if _, err := optimizer.Minimize(ObjectiveFunc[struct{}](sphere), make([]float64, 2), struct{}{}); err == nil {
		t.Error("expected error for inverted bounds")
	}
}

func TestMayflyReseedReturnsIndependentCopy(t *testing.T) {
	m := NewMayfly[struct{}](50, 20, 7, -5, 5)

	var method Method[struct{}] = m
	r, ok := method.(Reseeder[struct{}])
	if !ok {
		t.Fatal("Mayfly should implement Reseeder")
	}
	reseeded, ok := r.Reseed(99).(*Mayfly[struct{}])
	if !ok {
		t.Fatalf("Reseed returned %T, want *Mayfly", reseeded)
	}
	if reseeded == m {
		t.Fatal("Reseed must return a copy")
	}
	if reseeded.Seed != 99 || m.Seed != 7 {
		t.Errorf("seeds: copy %d (want 99), original %d (want 7)", reseeded.Seed, m.Seed)
	}
	if reseeded.MaxIters != m.MaxIters || reseeded.PopSize != m.PopSize || reseeded.Lower != m.Lower || reseeded.Upper != m.Upper {
		t.Errorf("Reseed changed settings: %+v vs %+v", reseeded, m)
	}
}
