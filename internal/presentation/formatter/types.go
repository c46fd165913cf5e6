package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-timeline-export/internal/analysis"
)

// Report bundles one statistics run for rendering.
type Report struct {
	RunID    string            `json:"run_id"`
	InputDir string            `json:"input_dir"`
	Summary  *analysis.Summary `json:"summary"`
}

// Formatter renders one statistics report to an output stream.
type Formatter interface {
	Format(out io.Writer, report *Report) error
}

// New returns the formatter for the named output format.
func New(format string) (Formatter, error) {
	switch format {
	case "json":
		return NewJSONFormatter(), nil
	case "table":
		return NewTableFormatter(), nil
	default:
		return nil, fmt.Errorf("invalid output format '%s': must be either 'table' or 'json'", format)
	}
}
