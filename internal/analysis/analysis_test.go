package analysis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMonthly(t *testing.T, inputDir, relPath, doc string) {
	t.Helper()
	path := filepath.Join(inputDir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
}

func TestAnalyzerRunAggregates(t *testing.T) {
	inputDir := t.TempDir()

	writeMonthly(t, inputDir, "2021_JANUARY.json", `{"timelineObjects": [
		{"activitySegment": {
			"startLocation": {"latitudeE7": 0, "longitudeE7": 0},
			"endLocation": {"latitudeE7": 0, "longitudeE7": 10000000},
			"duration": {"startTimestamp": "2021-01-05T00:00:00Z"},
			"distance": 120000,
			"activityType": "IN_PASSENGER_VEHICLE"
		}},
		{"activitySegment": {
			"duration": {"startTimestamp": "2021-01-02T00:00:00Z"},
			"distance": 500.5,
			"activityType": "WALKING"
		}},
		{"placeVisit": {
			"location": {"name": "Example Cafe"},
			"duration": {"startTimestamp": "2021-01-03T00:00:00Z"}
		}}
	]}`)
	writeMonthly(t, inputDir, "2021_FEBRUARY.json", `{"timelineObjects": [
		{"activitySegment": {
			"duration": {"startTimestamp": "2021-02-01T00:00:00Z"},
			"activityType": "WALKING"
		}},
		{"placeVisit": {
			"location": {"name": "Example Cafe"},
			"duration": {"startTimestamp": "2021-02-02T00:00:00Z"}
		}},
		{"placeVisit": {"location": {"name": "Office"}}}
	]}`)

	summary, err := New(inputDir).Run()
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 3, summary.Activities)
	assert.Equal(t, 3, summary.Visits)
	assert.Equal(t, 1, summary.MissingStartTimes)

	assert.Equal(t, "2021-01-02T00:00:00Z", summary.ActivityRange.Earliest)
	assert.Equal(t, "2021-02-01T00:00:00Z", summary.ActivityRange.Latest)
	assert.Equal(t, "2021-01-03T00:00:00Z", summary.VisitRange.Earliest)
	assert.Equal(t, "2021-02-02T00:00:00Z", summary.VisitRange.Latest)

	require.Len(t, summary.ActivityTypes, 2)
	assert.Equal(t, NameCount{Name: "WALKING", Count: 2}, summary.ActivityTypes[0])
	assert.Equal(t, NameCount{Name: "IN_PASSENGER_VEHICLE", Count: 1}, summary.ActivityTypes[1])

	require.Len(t, summary.Places, 2)
	assert.Equal(t, NameCount{Name: "Example Cafe", Count: 2}, summary.Places[0])
	assert.Equal(t, NameCount{Name: "Office", Count: 1}, summary.Places[1])

	assert.InDelta(t, 120500.5, summary.RecordedMeters, 0.001)

	// One degree of longitude along the equator.
	assert.InDelta(t, 111194.9, summary.DisplacementMeters, 1.0)
}

func TestAnalyzerRunEmptyTree(t *testing.T) {
	summary, err := New(t.TempDir()).Run()
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Files)
	assert.Equal(t, 0, summary.Activities)
	assert.Equal(t, 0, summary.Visits)
	assert.Empty(t, summary.ActivityTypes)
	assert.Empty(t, summary.Places)
	assert.Equal(t, "", summary.ActivityRange.Earliest)
}

func TestAnalyzerRunFailsOnInvalidRecord(t *testing.T) {
	inputDir := t.TempDir()
	writeMonthly(t, inputDir, "2021_MARCH.json", `{"timelineObjects": [{"bogus": {}}]}`)

	summary, err := New(inputDir).Run()
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Contains(t, err.Error(), "2021_MARCH.json")
}

func TestAnalyzerRunFailsOnMissingDirectory(t *testing.T) {
	summary, err := New("/path/that/does/not/exist").Run()
	require.Error(t, err)
	assert.Nil(t, summary)
}

func TestTimeRangeSpan(t *testing.T) {
	tests := []struct {
		name   string
		rng    TimeRange
		want   time.Duration
		wantOK bool
	}{
		{
			name:   "two days apart",
			rng:    TimeRange{Earliest: "2021-01-01T00:00:00Z", Latest: "2021-01-03T00:00:00Z"},
			want:   48 * time.Hour,
			wantOK: true,
		},
		{
			name:   "offset timestamps",
			rng:    TimeRange{Earliest: "2021-01-01T00:00:00+01:00", Latest: "2021-01-01T02:00:00+01:00"},
			want:   2 * time.Hour,
			wantOK: true,
		},
		{
			name:   "empty range",
			rng:    TimeRange{},
			wantOK: false,
		},
		{
			name:   "unparseable endpoint",
			rng:    TimeRange{Earliest: "not-a-time", Latest: "2021-01-03T00:00:00Z"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := tt.rng.Span()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, span)
			}
		})
	}
}

func TestDisplacementMeters(t *testing.T) {
	// Same point yields zero.
	assert.InDelta(t, 0, displacementMeters(375000000, -1224000000, 375000000, -1224000000), 0.0001)

	// One degree of latitude is the same length anywhere.
	oneDegLat := displacementMeters(0, 0, 10000000, 0)
	assert.InDelta(t, 111194.9, oneDegLat, 1.0)
}

func TestSortedCountsTieBreaksByName(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 2, "c": 5}

	result := sortedCounts(counts)

	require.Len(t, result, 3)
	assert.Equal(t, "c", result[0].Name)
	assert.Equal(t, "a", result[1].Name)
	assert.Equal(t, "b", result[2].Name)
}
