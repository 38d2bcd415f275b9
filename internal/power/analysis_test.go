package power

import (
	"context"
	"testing"

	"github.com/cwbudde/psychofit/internal/fit"
	"github.com/cwbudde/psychofit/internal/opt"
)

func TestAnalyzeDetectsLargeShift(t *testing.T) {
	cfg := Config{
		Subjects:    []int{8},
		Trials:      []int{40},
		Shifts:      []float64{0, 4},
		Experiments: 20,
		Slope:       0.4,
		Seed:        17,
		Workers:     4,
		Method:      opt.NewSimplex[*fit.Dataset](opt.DefaultSettings()),
	}

	var emitted []Cell
	cells, err := Analyze(context.Background(), cfg, func(c Cell) { emitted = append(emitted, c) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 2 || len(emitted) != 2 {
		t.Fatalf("expected 2 cells, got %d (emitted %d)", len(cells), len(emitted))
	}

	none, large := cells[0], cells[1]
	if none.Shift != 0 || large.Shift != 4 {
		t.Fatalf("cells out of order: %+v", cells)
	}
	if none.D05 > 0.3 {
		t.Errorf("no shift should rarely be detected, got D05=%v", none.D05)
	}
	if large.D05 < 0.9 {
		t.Errorf("a 4-unit shift should almost always be detected, got D05=%v", large.D05)
	}
	if large.D01 > large.D05 {
		t.Errorf("D01 (%v) cannot exceed D05 (%v)", large.D01, large.D05)
	}
}

func TestAnalyzeRejectsInvalidConfig(t *testing.T) {
	method := opt.NewSimplex[*fit.Dataset](opt.DefaultSettings())
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no subjects", Config{Trials: []int{5}, Shifts: []float64{1}, Experiments: 1, Slope: 0.4, Method: method}},
		{"one subject", Config{Subjects: []int{1}, Trials: []int{5}, Shifts: []float64{1}, Experiments: 1, Slope: 0.4, Method: method}},
		{"zero experiments", Config{Subjects: []int{5}, Trials: []int{5}, Shifts: []float64{1}, Slope: 0.4, Method: method}},
		{"zero slope", Config{Subjects: []int{5}, Trials: []int{5}, Shifts: []float64{1}, Experiments: 1, Method: method}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Analyze(context.Background(), tt.cfg, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}
