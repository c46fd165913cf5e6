package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// RawTimelineObject is one element of a monthly export's timelineObjects
// array, decoded only far enough to see its top-level keys.
type RawTimelineObject map[string]json.RawMessage

const (
	keyActivitySegment = "activitySegment"
	keyPlaceVisit      = "placeVisit"
)

// Wire shapes of the Semantic Location History export. Only the fields the
// flat rows need are decoded; everything else in the export is ignored.
type wireLocation struct {
	LatitudeE7  *int64  `json:"latitudeE7"`
	LongitudeE7 *int64  `json:"longitudeE7"`
	PlaceID     *string `json:"placeId"`
	Address     *string `json:"address"`
	Name        *string `json:"name"`
}

type wireDuration struct {
	StartTimestamp *string `json:"startTimestamp"`
	EndTimestamp   *string `json:"endTimestamp"`
}

type wireActivitySegment struct {
	StartLocation wireLocation `json:"startLocation"`
	EndLocation   wireLocation `json:"endLocation"`
	Duration      wireDuration `json:"duration"`
	Distance      *json.Number `json:"distance"`
	ActivityType  *string      `json:"activityType"`
}

type wirePlaceVisit struct {
	Location wireLocation `json:"location"`
	Duration wireDuration `json:"duration"`
}

// Classify identifies a raw timeline object as an activity segment or a place
// visit and extracts its flat row. A raw object with a key count other than
// one, or a single key that is neither recognized shape, fails with
// *InvalidRecordShapeError.
func Classify(raw RawTimelineObject) (Record, error) {
	if len(raw) != 1 {
		return Record{}, &InvalidRecordShapeError{Keys: sortedKeys(raw)}
	}

	if data, ok := raw[keyActivitySegment]; ok {
		var seg wireActivitySegment
		if err := sonic.Unmarshal(data, &seg); err != nil {
			return Record{}, fmt.Errorf("decode %s: %w", keyActivitySegment, err)
		}
		return Record{
			Kind: KindActivity,
			Activity: &Activity{
				StartLatitudeE7:  seg.StartLocation.LatitudeE7,
				StartLongitudeE7: seg.StartLocation.LongitudeE7,
				EndLatitudeE7:    seg.EndLocation.LatitudeE7,
				EndLongitudeE7:   seg.EndLocation.LongitudeE7,
				StartTime:        seg.Duration.StartTimestamp,
				EndTime:          seg.Duration.EndTimestamp,
				Distance:         seg.Distance,
				ActivityType:     seg.ActivityType,
			},
		}, nil
	}

	if data, ok := raw[keyPlaceVisit]; ok {
		var visit wirePlaceVisit
		if err := sonic.Unmarshal(data, &visit); err != nil {
			return Record{}, fmt.Errorf("decode %s: %w", keyPlaceVisit, err)
		}
		return Record{
			Kind: KindVisit,
			Visit: &Visit{
				LatitudeE7:  visit.Location.LatitudeE7,
				LongitudeE7: visit.Location.LongitudeE7,
				PlaceID:     visit.Location.PlaceID,
				Address:     visit.Location.Address,
				Name:        visit.Location.Name,
				StartTime:   visit.Duration.StartTimestamp,
				EndTime:     visit.Duration.EndTimestamp,
			},
		}, nil
	}

	return Record{}, &InvalidRecordShapeError{Keys: sortedKeys(raw)}
}
