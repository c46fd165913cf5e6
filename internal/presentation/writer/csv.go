package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/penwyp/go-timeline-export/internal/core/timeline"
)

// Output file names produced by a conversion.
const (
	ActivityFileName = "activity.csv"
	VisitFileName    = "visit.csv"
)

// CSVWriter writes activity.csv and visit.csv into an output directory.
// Each table carries a leading index column numbering rows from 0 in
// post-sort order.
type CSVWriter struct {
	delimiter rune
}

// NewCSVWriter creates a CSVWriter using the given field delimiter.
// A zero delimiter falls back to a comma.
func NewCSVWriter(delimiter rune) *CSVWriter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVWriter{delimiter: delimiter}
}

// Write persists the two sorted record collections into outputDir.
func (w *CSVWriter) Write(outputDir string, activities, visits []timeline.Record) error {
	if err := w.writeTable(filepath.Join(outputDir, ActivityFileName), timeline.ActivityColumns, activities); err != nil {
		return err
	}
	return w.writeTable(filepath.Join(outputDir, VisitFileName), timeline.VisitColumns, visits)
}

func (w *CSVWriter) writeTable(path string, columns []string, records []timeline.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	cw.Comma = w.delimiter

	header := make([]string, 0, len(columns)+1)
	header = append(header, "index")
	header = append(header, columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	for i, record := range records {
		row := make([]string, 0, len(columns)+1)
		row = append(row, strconv.Itoa(i))
		row = append(row, record.Fields()...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
