package report

import (
	"fmt"
	"io"

	"github.com/cwbudde/psychofit/internal/sim"
)

// Output formats accepted by NewWriter
const (
	FormatText  = "text"
	FormatJSONL = "jsonl"
)

// Writer emits one record per repetition.
// Records are buffered and reach the underlying writer on Flush.
type Writer interface {
	Write(rep sim.Repetition) error
	Flush() error
}

// NewWriter creates a writer for the named format
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(w), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteAll writes every repetition in index order and flushes
func WriteAll(w Writer, reps []sim.Repetition) error {
	for _, rep := range reps {
		if err := w.Write(rep); err != nil {
			return err
		}
	}
	return w.Flush()
}
