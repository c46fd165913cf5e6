package writer

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-timeline-export/internal/core/timeline"
)

func strPtr(s string) *string { return &s }
func intPtr(v int64) *int64 { return &v }
func numPtr(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func sampleActivity(start string) timeline.Record {
	return timeline.Record{
		Kind: timeline.KindActivity,
		Activity: &timeline.Activity{
			StartLatitudeE7:  intPtr(375000000),
			StartLongitudeE7: intPtr(-1224000000),
			StartTime:        strPtr(start),
			Distance:         numPtr("8042"),
			ActivityType:     strPtr("WALKING"),
		},
	}
}

func sampleVisit(start string) timeline.Record {
	return timeline.Record{
		Kind: timeline.KindVisit,
		Visit: &timeline.Visit{
			LatitudeE7: intPtr(375000000),
			Name:       strPtr("Example Place"),
			StartTime:  strPtr(start),
		},
	}
}

func readTable(t *testing.T, path string, delimiter rune) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = delimiter
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriterEmptyInput(t *testing.T) {
	outputDir := t.TempDir()
	w := NewCSVWriter(',')

	require.NoError(t, w.Write(outputDir, nil, nil))

	activityRows := readTable(t, filepath.Join(outputDir, ActivityFileName), ',')
	require.Len(t, activityRows, 1, "empty input should still produce a header row")
	assert.Equal(t, []string{
		"index", "timeline_type",
		"start_latitude", "start_longitude", "end_latitude", "end_longitude",
		"start_time", "end_time", "distance", "activity_type",
	}, activityRows[0])

	visitRows := readTable(t, filepath.Join(outputDir, VisitFileName), ',')
	require.Len(t, visitRows, 1)
	assert.Equal(t, []string{
		"index", "timeline_type",
		"location_latitude", "location_longitude",
		"place_id", "address", "name", "start_time", "end_time",
	}, visitRows[0])
}

func TestCSVWriterRowContent(t *testing.T) {
	outputDir := t.TempDir()
	w := NewCSVWriter(',')

	activities := []timeline.Record{
		sampleActivity("2021-01-01T00:00:00Z"),
		{Kind: timeline.KindActivity, Activity: &timeline.Activity{}},
	}
	visits := []timeline.Record{sampleVisit("2021-01-02T00:00:00Z")}

	require.NoError(t, w.Write(outputDir, activities, visits))

	activityRows := readTable(t, filepath.Join(outputDir, ActivityFileName), ',')
	require.Len(t, activityRows, 3)
	assert.Equal(t, []string{
		"0", "activity", "375000000", "-1224000000", "", "",
		"2021-01-01T00:00:00Z", "", "8042", "WALKING",
	}, activityRows[1])
	assert.Equal(t, []string{
		"1", "activity", "", "", "", "", "", "", "", "",
	}, activityRows[2], "absent fields render as empty cells")

	visitRows := readTable(t, filepath.Join(outputDir, VisitFileName), ',')
	require.Len(t, visitRows, 2)
	assert.Equal(t, []string{
		"0", "visit", "375000000", "", "", "", "Example Place",
		"2021-01-02T00:00:00Z", "",
	}, visitRows[1])
}

func TestCSVWriterCustomDelimiter(t *testing.T) {
	outputDir := t.TempDir()
	w := NewCSVWriter(';')

	require.NoError(t, w.Write(outputDir, []timeline.Record{sampleActivity("2021-01-01T00:00:00Z")}, nil))

	data, err := os.ReadFile(filepath.Join(outputDir, ActivityFileName))
	require.NoError(t, err)
	firstLine := strings.SplitN(string(data), "\n", 2)[0]
	assert.Contains(t, firstLine, "index;timeline_type;")

	rows := readTable(t, filepath.Join(outputDir, ActivityFileName), ';')
	require.Len(t, rows, 2)
	assert.Equal(t, "WALKING", rows[1][9])
}

func TestCSVWriterZeroDelimiterDefaultsToComma(t *testing.T) {
	w := NewCSVWriter(0)
	assert.Equal(t, ',', int32(w.delimiter))
}

func TestCSVWriterDeterministicOutput(t *testing.T) {
	activities := []timeline.Record{
		sampleActivity("2021-01-01T00:00:00Z"),
		sampleActivity("2021-02-01T00:00:00Z"),
	}
	visits := []timeline.Record{sampleVisit("2021-01-15T00:00:00Z")}

	firstDir := t.TempDir()
	secondDir := t.TempDir()
	w := NewCSVWriter(',')

	require.NoError(t, w.Write(firstDir, activities, visits))
	require.NoError(t, w.Write(secondDir, activities, visits))

	for _, name := range []string{ActivityFileName, VisitFileName} {
		first, err := os.ReadFile(filepath.Join(firstDir, name))
		require.NoError(t, err)
		second, err := os.ReadFile(filepath.Join(secondDir, name))
		require.NoError(t, err)
		assert.Equal(t, first, second, "repeated runs must be byte-identical")
	}
}

func TestCSVWriterQuotesFieldsContainingDelimiter(t *testing.T) {
	outputDir := t.TempDir()
	w := NewCSVWriter(',')

	visits := []timeline.Record{{
		Kind: timeline.KindVisit,
		Visit: &timeline.Visit{
			Address: strPtr("1 Example St, Springfield"),
			Name:    strPtr("Cafe \"Corner\""),
		},
	}}

	require.NoError(t, w.Write(outputDir, nil, visits))

	rows := readTable(t, filepath.Join(outputDir, VisitFileName), ',')
	require.Len(t, rows, 2)
	assert.Equal(t, "1 Example St, Springfield", rows[1][5])
	assert.Equal(t, "Cafe \"Corner\"", rows[1][6])
}
