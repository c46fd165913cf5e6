package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/penwyp/go-timeline-export/internal/core/timeline"
)

// DatabaseFileName is the sqlite artifact produced by --format sqlite.
const DatabaseFileName = "timeline.db"

const schema = `
CREATE TABLE IF NOT EXISTS activity (
    idx             INTEGER PRIMARY KEY,
    timeline_type   TEXT NOT NULL,
    start_latitude  INTEGER,
    start_longitude INTEGER,
    end_latitude    INTEGER,
    end_longitude   INTEGER,
    start_time      TEXT,
    end_time        TEXT,
    distance        NUMERIC,
    activity_type   TEXT
);

CREATE TABLE IF NOT EXISTS visit (
    idx                INTEGER PRIMARY KEY,
    timeline_type      TEXT NOT NULL,
    location_latitude  INTEGER,
    location_longitude INTEGER,
    place_id           TEXT,
    address            TEXT,
    name               TEXT,
    start_time         TEXT,
    end_time           TEXT
);
`

// SQLiteWriter writes both record collections into a single timeline.db.
// The idx column holds the post-sort row index; absent fields become NULL.
type SQLiteWriter struct{}

// NewSQLiteWriter creates a SQLiteWriter.
func NewSQLiteWriter() *SQLiteWriter {
	return &SQLiteWriter{}
}

// Write rebuilds timeline.db in outputDir from the sorted records. Any
// database left by a previous run is replaced, keeping reruns reproducible.
func (w *SQLiteWriter) Write(outputDir string, activities, visits []timeline.Record) error {
	dbPath := filepath.Join(outputDir, DatabaseFileName)
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale %s: %w", dbPath, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertActivities(tx, activities); err != nil {
		return err
	}
	if err := insertVisits(tx, visits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return db.Close()
}

func insertActivities(tx *sql.Tx, records []timeline.Record) error {
	stmt, err := tx.Prepare(`INSERT INTO activity (
		idx, timeline_type, start_latitude, start_longitude, end_latitude, end_longitude,
		start_time, end_time, distance, activity_type
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare activity insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		a := record.Activity
		_, err := stmt.Exec(i, string(record.Kind),
			a.StartLatitudeE7, a.StartLongitudeE7, a.EndLatitudeE7, a.EndLongitudeE7,
			a.StartTime, a.EndTime, a.Distance, a.ActivityType)
		if err != nil {
			return fmt.Errorf("insert activity row %d: %w", i, err)
		}
	}
	return nil
}

func insertVisits(tx *sql.Tx, records []timeline.Record) error {
	stmt, err := tx.Prepare(`INSERT INTO visit (
		idx, timeline_type, location_latitude, location_longitude,
		place_id, address, name, start_time, end_time
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare visit insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		v := record.Visit
		_, err := stmt.Exec(i, string(record.Kind),
			v.LatitudeE7, v.LongitudeE7,
			v.PlaceID, v.Address, v.Name, v.StartTime, v.EndTime)
		if err != nil {
			return fmt.Errorf("insert visit row %d: %w", i, err)
		}
	}
	return nil
}
