package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-timeline-export/internal/analysis"
)

func renderToString(t *testing.T, summary *analysis.Summary) string {
	t.Helper()
	var buf bytes.Buffer
	r := &Renderer{out: &buf, width: 80}
	r.Render("8a0bd5f2-0000-0000-0000-000000000000", "/data/exports", summary)
	return buf.String()
}

func sampleSummary() *analysis.Summary {
	return &analysis.Summary{
		Files:      3,
		Activities: 1200,
		Visits:     800,
		ActivityRange: analysis.TimeRange{
			Earliest: "2021-01-01T00:00:00Z",
			Latest:   "2021-03-01T00:00:00Z",
		},
		VisitRange: analysis.TimeRange{
			Earliest: "2021-01-02T00:00:00Z",
			Latest:   "2021-02-28T00:00:00Z",
		},
		ActivityTypes: []analysis.NameCount{
			{Name: "WALKING", Count: 700},
			{Name: "IN_PASSENGER_VEHICLE", Count: 500},
		},
		Places: []analysis.NameCount{
			{Name: "Example Cafe", Count: 600},
			{Name: "Office", Count: 200},
		},
		RecordedMeters:     1234567,
		DisplacementMeters: 987654,
	}
}

func TestRenderIncludesAllSections(t *testing.T) {
	output := renderToString(t, sampleSummary())

	assert.Contains(t, output, "Timeline Export Statistics")
	assert.Contains(t, output, "Run ID: 8a0bd5f2-0000-0000-0000-000000000000")
	assert.Contains(t, output, "Input Directory: /data/exports")
	assert.Contains(t, output, "=== Overview ===")
	assert.Contains(t, output, "Files Scanned: 3")
	assert.Contains(t, output, "Timeline Objects: 2,000")
	assert.Contains(t, output, "=== Activity Segments ===")
	assert.Contains(t, output, "Date Range: 2021-01-01T00:00:00Z to 2021-03-01T00:00:00Z")
	assert.Contains(t, output, "Span: 59d 0h")
	assert.Contains(t, output, "Recorded Distance: 1234.6 km")
	assert.Contains(t, output, "Endpoint Displacement: 987.7 km")
	assert.Contains(t, output, "Top Activity Types:")
	assert.Contains(t, output, "WALKING")
	assert.Contains(t, output, "58.3%")
	assert.Contains(t, output, "=== Place Visits ===")
	assert.Contains(t, output, "Top Places:")
	assert.Contains(t, output, "Example Cafe")
	assert.Contains(t, output, "75.0%")
}

func TestRenderEmptySummary(t *testing.T) {
	output := renderToString(t, &analysis.Summary{})

	assert.Contains(t, output, "Files Scanned: 0")
	assert.Contains(t, output, "No activity segments found")
	assert.Contains(t, output, "No place visits found")
	assert.NotContains(t, output, "Date Range:")
	assert.NotContains(t, output, "Records Without Start Time")
}

func TestRenderReportsMissingStartTimes(t *testing.T) {
	summary := sampleSummary()
	summary.MissingStartTimes = 4

	output := renderToString(t, summary)
	assert.Contains(t, output, "Records Without Start Time: 4")
}

func TestRenderRankingCapsEntries(t *testing.T) {
	summary := sampleSummary()
	summary.ActivityTypes = []analysis.NameCount{
		{Name: "TYPE_A", Count: 60},
		{Name: "TYPE_B", Count: 50},
		{Name: "TYPE_C", Count: 40},
		{Name: "TYPE_D", Count: 30},
		{Name: "TYPE_E", Count: 20},
		{Name: "TYPE_F", Count: 10},
	}

	output := renderToString(t, summary)

	assert.Contains(t, output, "TYPE_E")
	assert.NotContains(t, output, "TYPE_F", "ranking tables are limited to the top five entries")
}

func TestRenderTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("VERY_LONG_SEGMENT_NAME_", 10)
	summary := sampleSummary()
	summary.Places = []analysis.NameCount{{Name: long, Count: 800}}

	var buf bytes.Buffer
	r := &Renderer{out: &buf, width: 60}
	r.Render("run", "/data", summary)

	output := buf.String()
	assert.NotContains(t, output, long, "over-wide names must be truncated")
	assert.Contains(t, output, "..")
}

func TestNameColumnWidthBounds(t *testing.T) {
	r := &Renderer{width: 80}

	narrow := r.nameColumnWidth([]analysis.NameCount{{Name: "short", Count: 1}})
	assert.Equal(t, 5, narrow)

	wide := r.nameColumnWidth([]analysis.NameCount{{Name: strings.Repeat("x", 500), Count: 1}})
	assert.Equal(t, 60, wide)
}

func TestNewRendererUsesTerminalFallback(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})
	require.NotNil(t, r)
	assert.Positive(t, r.width)
	assert.LessOrEqual(t, r.width, 100)
}
