package timeline

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Kind identifies which of the two recognized timeline shapes a Record holds.
type Kind string

const (
	KindActivity Kind = "activity"
	KindVisit    Kind = "visit"
)

// ActivityColumns is the output column order for activity rows, excluding the
// leading index column.
var ActivityColumns = []string{
	"timeline_type",
	"start_latitude",
	"start_longitude",
	"end_latitude",
	"end_longitude",
	"start_time",
	"end_time",
	"distance",
	"activity_type",
}

// VisitColumns is the output column order for visit rows, excluding the
// leading index column.
var VisitColumns = []string{
	"timeline_type",
	"location_latitude",
	"location_longitude",
	"place_id",
	"address",
	"name",
	"start_time",
	"end_time",
}

// Activity is one flattened activity segment: a period of movement between
// two locations. Every field except the kind tag is optional; absent fields
// stay nil and render as empty cells.
//
// Coordinates are E7 fixed-point integers (degrees x 1e7) exactly as they
// appear in the export. Distance keeps the raw JSON number literal so integer
// and fractional inputs round-trip unchanged.
type Activity struct {
	StartLatitudeE7  *int64
	StartLongitudeE7 *int64
	EndLatitudeE7    *int64
	EndLongitudeE7   *int64
	StartTime        *string
	EndTime          *string
	Distance         *json.Number
	ActivityType     *string
}

// Fields renders the row cells in ActivityColumns order.
func (a *Activity) Fields() []string {
	return []string{
		string(KindActivity),
		formatE7(a.StartLatitudeE7),
		formatE7(a.StartLongitudeE7),
		formatE7(a.EndLatitudeE7),
		formatE7(a.EndLongitudeE7),
		formatString(a.StartTime),
		formatString(a.EndTime),
		formatNumber(a.Distance),
		formatString(a.ActivityType),
	}
}

// Visit is one flattened place visit: a stay at a single location.
type Visit struct {
	LatitudeE7  *int64
	LongitudeE7 *int64
	PlaceID     *string
	Address     *string
	Name        *string
	StartTime   *string
	EndTime     *string
}

// Fields renders the row cells in VisitColumns order.
func (v *Visit) Fields() []string {
	return []string{
		string(KindVisit),
		formatE7(v.LatitudeE7),
		formatE7(v.LongitudeE7),
		formatString(v.PlaceID),
		formatString(v.Address),
		formatString(v.Name),
		formatString(v.StartTime),
		formatString(v.EndTime),
	}
}

// Record is the tagged union over the two timeline shapes. Exactly one of
// Activity and Visit is non-nil, matching Kind. Records are immutable once
// produced by Classify.
type Record struct {
	Kind     Kind
	Activity *Activity
	Visit    *Visit
}

// StartTime returns the record's start timestamp, or nil when absent.
func (r Record) StartTime() *string {
	switch r.Kind {
	case KindActivity:
		return r.Activity.StartTime
	case KindVisit:
		return r.Visit.StartTime
	}
	return nil
}

// Fields renders the record's row cells, excluding the leading index column.
func (r Record) Fields() []string {
	switch r.Kind {
	case KindActivity:
		return r.Activity.Fields()
	case KindVisit:
		return r.Visit.Fields()
	}
	return nil
}

// SortByStartTime stable-sorts records by their raw start-time string,
// ascending. Records without a start time order after all timestamped ones;
// ties keep their encounter order. Timestamps compare as strings, which for
// the export's fixed-offset RFC 3339 values matches chronological order.
func SortByStartTime(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].StartTime(), records[j].StartTime()
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}

func formatE7(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatNumber(v *json.Number) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func sortedKeys(raw RawTimelineObject) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
