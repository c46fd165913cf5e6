package converter

import (
	"fmt"
	"os"
	"time"

	"github.com/penwyp/go-timeline-export/internal/core/timeline"
	"github.com/penwyp/go-timeline-export/internal/data/parser"
	"github.com/penwyp/go-timeline-export/internal/data/scanner"
	"github.com/penwyp/go-timeline-export/internal/presentation/writer"
	"github.com/penwyp/go-timeline-export/internal/util"
)

// Output formats accepted by Config.Format.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

type Config struct {
	InputDir  string
	OutputDir string
	Format    string
	Delimiter rune
}

// Converter drives the scan, parse, classify, sort and write pipeline.
// A single instance may run repeatedly over the same tree; unchanged
// input files are served from the parser cache.
type Converter struct {
	config  *Config
	scanner *scanner.FileScanner
	parser  *parser.Parser
}

func New(config *Config) *Converter {
	return &Converter{
		config:  config,
		scanner: scanner.NewFileScanner(config.InputDir),
		parser:  parser.NewParser(),
	}
}

// Run executes one full conversion. The first decode or classification
// failure aborts the run before the output directory is touched, so bad
// input never leaves partial output behind.
func (c *Converter) Run() error {
	startTime := time.Now()
	util.LogInfo(fmt.Sprintf("Starting conversion of %s", c.config.InputDir))

	// Phase 1: Scan input tree
	scanStart := time.Now()
	files, err := c.scanner.Scan()
	if err != nil {
		return fmt.Errorf("failed to scan input directory: %w", err)
	}
	scanDuration := time.Since(scanStart)
	util.LogDebug(fmt.Sprintf("Phase 1 - File scan duration: %v, found %d files", scanDuration, len(files)))

	// Phase 2: Parse and classify. A tree with no export files is valid
	// input and produces header-only tables.
	collectStart := time.Now()
	var activities, visits []timeline.Record
	objectCount := 0
	for _, file := range files {
		objects, err := c.parser.ParseFile(file)
		if err != nil {
			return err
		}

		for i, raw := range objects {
			record, err := timeline.Classify(raw)
			if err != nil {
				return fmt.Errorf("%s: timeline object %d: %w", file, i, err)
			}
			switch record.Kind {
			case timeline.KindActivity:
				activities = append(activities, record)
			case timeline.KindVisit:
				visits = append(visits, record)
			}
			objectCount++
		}
	}
	collectDuration := time.Since(collectStart)
	util.LogDebug(fmt.Sprintf("Phase 2 - Parse and classify duration: %v, %d objects (%d activities, %d visits)",
		collectDuration, objectCount, len(activities), len(visits)))

	// Phase 3: Sort each collection by start time
	sortStart := time.Now()
	timeline.SortByStartTime(activities)
	timeline.SortByStartTime(visits)
	sortDuration := time.Since(sortStart)
	util.LogDebug(fmt.Sprintf("Phase 3 - Sorting duration: %v", sortDuration))

	// Phase 4: Write output tables
	outputStart := time.Now()
	if err := os.MkdirAll(c.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := c.writeOutput(activities, visits); err != nil {
		return err
	}
	outputDuration := time.Since(outputStart)
	util.LogDebug(fmt.Sprintf("Phase 4 - Output duration: %v", outputDuration))

	totalDuration := time.Since(startTime)
	util.LogInfo(fmt.Sprintf("Conversion completed: %d files, %d activities, %d visits",
		len(files), len(activities), len(visits)))
	util.LogDebug(fmt.Sprintf("Total duration: %v (scan:%v collect:%v sort:%v output:%v)",
		totalDuration, scanDuration, collectDuration, sortDuration, outputDuration))

	return nil
}

func (c *Converter) writeOutput(activities, visits []timeline.Record) error {
	switch c.config.Format {
	case FormatSQLite:
		return writer.NewSQLiteWriter().Write(c.config.OutputDir, activities, visits)
	default:
		return writer.NewCSVWriter(c.config.Delimiter).Write(c.config.OutputDir, activities, visits)
	}
}
