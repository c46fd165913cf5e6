package fixtures

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Location mirrors the location mapping in a Semantic Location History export
type Location struct {
	LatitudeE7  *int64 `json:"latitudeE7,omitempty"`
	LongitudeE7 *int64 `json:"longitudeE7,omitempty"`
	PlaceID     string `json:"placeId,omitempty"`
	Address     string `json:"address,omitempty"`
	Name        string `json:"name,omitempty"`
}

// Duration holds the raw start and end timestamps of a timeline object
type Duration struct {
	StartTimestamp string `json:"startTimestamp,omitempty"`
	EndTimestamp   string `json:"endTimestamp,omitempty"`
}

// ActivitySegment represents a movement between two locations
type ActivitySegment struct {
	StartLocation *Location `json:"startLocation,omitempty"`
	EndLocation   *Location `json:"endLocation,omitempty"`
	Duration      *Duration `json:"duration,omitempty"`
	Distance      *int64    `json:"distance,omitempty"`
	ActivityType  string    `json:"activityType,omitempty"`
}

// PlaceVisit represents a stay at one location
type PlaceVisit struct {
	Location *Location `json:"location,omitempty"`
	Duration *Duration `json:"duration,omitempty"`
}

// TimelineObject wraps exactly one of the two record shapes
type TimelineObject struct {
	ActivitySegment *ActivitySegment `json:"activitySegment,omitempty"`
	PlaceVisit      *PlaceVisit      `json:"placeVisit,omitempty"`
}

// MonthlyExport is the top-level document of one monthly export file
type MonthlyExport struct {
	TimelineObjects []TimelineObject `json:"timelineObjects"`
}

// TestDataGenerator generates synthetic Semantic Location History trees
type TestDataGenerator struct {
	baseDir string
}

// NewTestDataGenerator creates a new test data generator
func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{
		baseDir: baseDir,
	}
}

// Timestamp formats t the way Google exports carry timestamps
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// E7 converts decimal degrees to the E7 integer representation
func E7(degrees float64) int64 {
	return int64(math.Round(degrees * 1e7))
}

// Visit builds a placeVisit timeline object
func Visit(name, placeID string, start, end time.Time, latE7, lonE7 int64) TimelineObject {
	return TimelineObject{
		PlaceVisit: &PlaceVisit{
			Location: &Location{
				LatitudeE7:  &latE7,
				LongitudeE7: &lonE7,
				PlaceID:     placeID,
				Name:        name,
			},
			Duration: &Duration{
				StartTimestamp: Timestamp(start),
				EndTimestamp:   Timestamp(end),
			},
		},
	}
}

// Segment builds an activitySegment timeline object
func Segment(activityType string, start, end time.Time, startLatE7, startLonE7, endLatE7, endLonE7, distance int64) TimelineObject {
	return TimelineObject{
		ActivitySegment: &ActivitySegment{
			StartLocation: &Location{
				LatitudeE7:  &startLatE7,
				LongitudeE7: &startLonE7,
			},
			EndLocation: &Location{
				LatitudeE7:  &endLatE7,
				LongitudeE7: &endLonE7,
			},
			Duration: &Duration{
				StartTimestamp: Timestamp(start),
				EndTimestamp:   Timestamp(end),
			},
			Distance:     &distance,
			ActivityType: activityType,
		},
	}
}

// MonthlyFileName returns the conventional path of one monthly export,
// e.g. "Semantic Location History/2021/2021_MAY.json".
func MonthlyFileName(year int, month time.Month) string {
	name := fmt.Sprintf("%d_%s.json", year, strings.ToUpper(month.String()))
	return filepath.Join("Semantic Location History", strconv.Itoa(year), name)
}

// GenerateSimpleMonth generates one month with a deterministic
// home-walk-office-drive day
func (g *TestDataGenerator) GenerateSimpleMonth(year int, month time.Month) error {
	day := time.Date(year, month, 3, 8, 0, 0, 0, time.UTC)

	homeLat, homeLon := E7(37.5), E7(-122.4)
	officeLat, officeLon := E7(37.6), E7(-122.3)

	export := MonthlyExport{
		TimelineObjects: []TimelineObject{
			Visit("Home", "ChIJhome0000", day, day.Add(1*time.Hour), homeLat, homeLon),
			Segment("WALKING", day.Add(1*time.Hour), day.Add(90*time.Minute),
				homeLat, homeLon, officeLat, officeLon, 1200),
			Visit("Office", "ChIJoffice00", day.Add(90*time.Minute), day.Add(9*time.Hour),
				officeLat, officeLon),
			Segment("IN_PASSENGER_VEHICLE", day.Add(9*time.Hour), day.Add(10*time.Hour),
				officeLat, officeLon, homeLat, homeLon, 15000),
		},
	}

	return g.WriteExport(MonthlyFileName(year, month), export)
}

// GenerateYear generates twelve simple months for one year
func (g *TestDataGenerator) GenerateYear(year int) error {
	for month := time.January; month <= time.December; month++ {
		if err := g.GenerateSimpleMonth(year, month); err != nil {
			return err
		}
	}
	return nil
}

// WriteExport writes one monthly export document below the base directory
func (g *TestDataGenerator) WriteExport(relPath string, export MonthlyExport) error {
	path := filepath.Join(g.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(export)
}

// WriteRaw writes arbitrary file content below the base directory,
// for malformed or hand-crafted fixtures
func (g *TestDataGenerator) WriteRaw(relPath, content string) error {
	path := filepath.Join(g.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// CreateEmptyExport writes an export with no timeline objects
func (g *TestDataGenerator) CreateEmptyExport(relPath string) error {
	return g.WriteExport(relPath, MonthlyExport{TimelineObjects: []TimelineObject{}})
}

// CleanupTestData removes all generated test data
func (g *TestDataGenerator) CleanupTestData() error {
	return os.RemoveAll(g.baseDir)
}

// GetBaseDir returns the base directory for test data
func (g *TestDataGenerator) GetBaseDir() string {
	return g.baseDir
}
