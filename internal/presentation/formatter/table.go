package formatter

import (
	"io"

	"github.com/penwyp/go-timeline-export/internal/presentation/report"
)

// TableFormatter renders the human-readable terminal report.
type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Format(out io.Writer, rep *Report) error {
	report.NewRenderer(out).Render(rep.RunID, rep.InputDir, rep.Summary)
	return nil
}
