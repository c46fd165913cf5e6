package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/golang/geo/s2"

	"github.com/penwyp/go-timeline-export/internal/core/timeline"
	"github.com/penwyp/go-timeline-export/internal/data/parser"
	"github.com/penwyp/go-timeline-export/internal/data/scanner"
	"github.com/penwyp/go-timeline-export/internal/util"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// TimeRange holds the earliest and latest raw start timestamps seen.
type TimeRange struct {
	Earliest string `json:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty"`
}

// Span parses the range endpoints and returns the duration between them.
// A range with unparseable or missing endpoints has no span.
func (r TimeRange) Span() (time.Duration, bool) {
	if r.Earliest == "" || r.Latest == "" {
		return 0, false
	}
	earliest, err := time.Parse(time.RFC3339, r.Earliest)
	if err != nil {
		return 0, false
	}
	latest, err := time.Parse(time.RFC3339, r.Latest)
	if err != nil {
		return 0, false
	}
	return latest.Sub(earliest), true
}

func (r *TimeRange) observe(start *string) {
	if start == nil {
		return
	}
	if r.Earliest == "" || *start < r.Earliest {
		r.Earliest = *start
	}
	if r.Latest == "" || *start > r.Latest {
		r.Latest = *start
	}
}

// NameCount is one entry of a frequency ranking.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary aggregates display-only statistics over a scanned export tree.
// Records are never mutated or persisted.
type Summary struct {
	Files      int `json:"files"`
	Activities int `json:"activities"`
	Visits     int `json:"visits"`

	ActivityRange TimeRange `json:"activity_range"`
	VisitRange    TimeRange `json:"visit_range"`

	// ActivityTypes and Places are sorted by count descending, ties by name.
	ActivityTypes []NameCount `json:"activity_types"`
	Places        []NameCount `json:"places"`

	// RecordedMeters sums the distance field of activity segments.
	// DisplacementMeters sums great-circle distances between segment endpoints.
	RecordedMeters     float64 `json:"recorded_meters"`
	DisplacementMeters float64 `json:"displacement_meters"`

	MissingStartTimes int `json:"missing_start_times"`
}

// Analyzer runs the scan, parse and classify pipeline without writing
// output, accumulating a Summary instead.
type Analyzer struct {
	inputDir string
	scanner  *scanner.FileScanner
	parser   *parser.Parser
}

func New(inputDir string) *Analyzer {
	return &Analyzer{
		inputDir: inputDir,
		scanner:  scanner.NewFileScanner(inputDir),
		parser:   parser.NewParser(),
	}
}

// Run aggregates statistics over every export file under the input tree.
// Like a conversion it is fail-fast: the first malformed document or
// record aborts the run.
func (a *Analyzer) Run() (*Summary, error) {
	startTime := time.Now()

	files, err := a.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	summary := &Summary{Files: len(files)}
	activityTypes := make(map[string]int)
	places := make(map[string]int)

	for _, file := range files {
		objects, err := a.parser.ParseFile(file)
		if err != nil {
			return nil, err
		}
		for i, raw := range objects {
			record, err := timeline.Classify(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: timeline object %d: %w", file, i, err)
			}
			summary.observe(record, activityTypes, places)
		}
	}

	summary.ActivityTypes = sortedCounts(activityTypes)
	summary.Places = sortedCounts(places)

	util.LogDebug(fmt.Sprintf("Statistics run completed: duration %v, %d files, %d activities, %d visits",
		time.Since(startTime), summary.Files, summary.Activities, summary.Visits))

	return summary, nil
}

func (s *Summary) observe(record timeline.Record, activityTypes, places map[string]int) {
	if record.StartTime() == nil {
		s.MissingStartTimes++
	}

	switch record.Kind {
	case timeline.KindActivity:
		s.Activities++
		activity := record.Activity
		s.ActivityRange.observe(activity.StartTime)
		if activity.ActivityType != nil {
			activityTypes[*activity.ActivityType]++
		}
		if activity.Distance != nil {
			if meters, err := activity.Distance.Float64(); err == nil {
				s.RecordedMeters += meters
			}
		}
		if activity.StartLatitudeE7 != nil && activity.StartLongitudeE7 != nil &&
			activity.EndLatitudeE7 != nil && activity.EndLongitudeE7 != nil {
			s.DisplacementMeters += displacementMeters(
				*activity.StartLatitudeE7, *activity.StartLongitudeE7,
				*activity.EndLatitudeE7, *activity.EndLongitudeE7)
		}
	case timeline.KindVisit:
		s.Visits++
		visit := record.Visit
		s.VisitRange.observe(visit.StartTime)
		if visit.Name != nil {
			places[*visit.Name]++
		}
	}
}

// displacementMeters returns the great-circle distance in meters between
// two E7 coordinate pairs.
func displacementMeters(startLat, startLon, endLat, endLon int64) float64 {
	p1 := s2.LatLngFromDegrees(float64(startLat)/1e7, float64(startLon)/1e7)
	p2 := s2.LatLngFromDegrees(float64(endLat)/1e7, float64(endLon)/1e7)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

func sortedCounts(counts map[string]int) []NameCount {
	result := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, NameCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}
