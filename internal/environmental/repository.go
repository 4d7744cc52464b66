package environmental

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Query bounds. Hours beyond MaxQueryHours are clamped, not rejected.
const (
	DefaultQueryHours = 24
	MaxQueryHours     = 168
)

// QueryParams narrow a readings query. LocationID is mandatory.
type QueryParams struct {
	LocationID string
	ZoneID     string
	Type       ReadingType
	Hours      int
}

// Repository defines environmental reading persistence.
type Repository interface {
	InsertBatch(ctx context.Context, readings []Reading) error
	Query(ctx context.Context, params QueryParams) ([]Reading, error)
	LatestByZone(ctx context.Context, locationID, zoneID string) ([]Reading, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, locationID string, status Status, since time.Time) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time // test hook
}

// NewRepository creates a SQLite-backed environmental repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// InsertBatch writes readings in a single transaction.
func (r *SQLiteRepository) InsertBatch(ctx context.Context, readings []Reading) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO environmental_readings (id, timestamp, location_id, zone_id,
		 sensor_id, type, value, unit, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range readings {
		rd := &readings[i]
		_, err := stmt.ExecContext(ctx,
			rd.ID, rd.Timestamp.UTC().Format(time.RFC3339), rd.LocationID, rd.ZoneID,
			rd.SensorID, string(rd.Type), rd.Value, rd.Unit, string(rd.Status))
		if err != nil {
			return fmt.Errorf("inserting reading %s: %w", rd.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert: %w", err)
	}
	return nil
}

// Query returns readings within the requested window, newest first.
func (r *SQLiteRepository) Query(ctx context.Context, params QueryParams) ([]Reading, error) {
	hours := params.Hours
	if hours <= 0 {
		hours = DefaultQueryHours
	}
	if hours > MaxQueryHours {
		hours = MaxQueryHours
	}
	cutoff := r.now().Add(-time.Duration(hours) * time.Hour)

	clauses := []string{"location_id = ?", "timestamp >= ?"}
	args := []any{params.LocationID, cutoff.UTC().Format(time.RFC3339)}
	if params.ZoneID != "" {
		clauses = append(clauses, "zone_id = ?")
		args = append(args, params.ZoneID)
	}
	if params.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, string(params.Type))
	}

	query := `SELECT id, timestamp, location_id, zone_id, sensor_id, type, value,
		unit, status FROM environmental_readings WHERE ` + strings.Join(clauses, " AND ") +
		" ORDER BY timestamp DESC"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	return collectReadings(rows)
}

// LatestByZone returns the most recent reading of each type for a zone.
func (r *SQLiteRepository) LatestByZone(ctx context.Context, locationID, zoneID string) ([]Reading, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, location_id, zone_id, sensor_id, type, value, unit, status
		 FROM environmental_readings
		 WHERE location_id = ? AND zone_id = ?
		   AND timestamp = (
		     SELECT MAX(timestamp) FROM environmental_readings r2
		     WHERE r2.location_id = environmental_readings.location_id
		       AND r2.zone_id = environmental_readings.zone_id
		       AND r2.type = environmental_readings.type
		   )
		 ORDER BY type ASC`, locationID, zoneID)
	if err != nil {
		return nil, fmt.Errorf("querying latest readings: %w", err)
	}
	defer rows.Close()

	return collectReadings(rows)
}

// Count returns the total number of reading records.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM environmental_readings").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting readings: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of readings with the given status at
// a location since the cutoff. Used by the dashboard summary.
func (r *SQLiteRepository) CountByStatus(ctx context.Context, locationID string, status Status, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM environmental_readings WHERE location_id = ? AND status = ? AND timestamp >= ?",
		locationID, string(status), since.UTC().Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting readings by status: %w", err)
	}
	return count, nil
}

func collectReadings(rows *sql.Rows) ([]Reading, error) {
	readings := []Reading{}
	for rows.Next() {
		var rd Reading
		var timestamp, readingType, status string
		err := rows.Scan(&rd.ID, &timestamp, &rd.LocationID, &rd.ZoneID, &rd.SensorID,
			&readingType, &rd.Value, &rd.Unit, &status)
		if err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		rd.Timestamp, _ = time.Parse(time.RFC3339, timestamp) //nolint:errcheck // format is controlled
		rd.Type = ReadingType(readingType)
		rd.Status = Status(status)
		readings = append(readings, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating readings: %w", err)
	}
	return readings, nil
}
