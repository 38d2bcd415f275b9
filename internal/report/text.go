package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cwbudde/psychofit/internal/sim"
)

// TextWriter prints the classic seven-column fixed-point line:
//
//	b0 b1 threshold slope x25 x75 acuity
//
// Undefined derived quantities print as NaN.
type TextWriter struct {
	writer *bufio.Writer
}

// NewTextWriter creates a text writer on w
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{writer: bufio.NewWriter(w)}
}

// Write formats one repetition
func (tw *TextWriter) Write(rep sim.Repetition) error {
	b, d := rep.Estimate.Params, rep.Derived
	_, err := fmt.Fprintf(tw.writer, "%8.5f %8.5f %8.5f %8.5f %8.5f %8.5f %8.5f\n",
		b[0], b[1], d.Threshold, d.Slope, d.X25, d.X75, d.Acuity)
	if err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	return nil
}

// Flush writes buffered lines
func (tw *TextWriter) Flush() error {
	if err := tw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush text writer: %w", err)
	}
	return nil
}
