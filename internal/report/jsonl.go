package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/cwbudde/psychofit/internal/sim"
)

// Entry is the JSON form of one repetition.
// Derived quantities are null when the fit is degenerate.
type Entry struct {
	Rep        int      `json:"rep"`
	B0         float64  `json:"b0"`
	B1         float64  `json:"b1"`
	Threshold  *float64 `json:"threshold"`
	Slope      float64  `json:"slope"`
	X25        *float64 `json:"x25"`
	X75        *float64 `json:"x75"`
	Acuity     *float64 `json:"acuity"`
	NLL        float64  `json:"nll"`
	Converged  bool     `json:"converged"`
	Status     string   `json:"status"`
	Iterations int      `json:"iterations"`
	Positives  int      `json:"positives"`
}

// NewEntry converts a repetition to its JSON form
func NewEntry(rep sim.Repetition) Entry {
	b, d := rep.Estimate.Params, rep.Derived
	return Entry{
		Rep:        rep.Index,
		B0:         b[0],
		B1:         b[1],
		Threshold:  finiteOrNil(d.Threshold),
		Slope:      d.Slope,
		X25:        finiteOrNil(d.X25),
		X75:        finiteOrNil(d.X75),
		Acuity:     finiteOrNil(d.Acuity),
		NLL:        rep.Estimate.NLL,
		Converged:  rep.Estimate.Converged(),
		Status:     rep.Estimate.Status.String(),
		Iterations: rep.Estimate.Iterations,
		Positives:  rep.Positives,
	}
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// JSONLWriter writes entries as JSON lines.
// It uses buffered I/O and is safe for concurrent use.
type JSONLWriter struct {
	mu     sync.Mutex
	writer *bufio.Writer
}

// NewJSONLWriter creates a JSON lines writer on w
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{writer: bufio.NewWriterSize(w, 64*1024)} // 64KB buffer
}

// Write appends one repetition as a JSON line
func (jw *JSONLWriter) Write(rep sim.Repetition) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	data, err := json.Marshal(NewEntry(rep))
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if _, err := jw.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	if err := jw.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

// Flush writes any buffered data
func (jw *JSONLWriter) Flush() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if err := jw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush jsonl writer: %w", err)
	}
	return nil
}
