package power

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// QueryParams narrow a power readings query. AssetID is mandatory; the
// caller is responsible for verifying the asset belongs to the tenant.
type QueryParams struct {
	AssetID     string
	Granularity Granularity
	Start       time.Time
	End         time.Time
}

// Repository defines power reading persistence.
type Repository interface {
	InsertBatch(ctx context.Context, readings []Reading) error
	Query(ctx context.Context, params QueryParams) ([]Reading, error)
	Latest(ctx context.Context, assetID string) (*Reading, error)
	Count(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLite-backed power repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const readingColumns = `id, timestamp, asset_id, tenant_id, granularity,
	circuit_a_voltage, circuit_a_current, circuit_a_power, circuit_a_capacity, circuit_a_utilization,
	circuit_b_voltage, circuit_b_current, circuit_b_power, circuit_b_capacity, circuit_b_utilization,
	total_power, total_utilization, average_power, peak_power, min_power`

// InsertBatch writes readings in a single transaction.
func (r *SQLiteRepository) InsertBatch(ctx context.Context, readings []Reading) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO power_readings ("+readingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range readings {
		rd := &readings[i]
		_, err := stmt.ExecContext(ctx,
			rd.ID, rd.Timestamp.UTC().Format(time.RFC3339), rd.AssetID, rd.TenantID,
			string(rd.Granularity),
			rd.CircuitA.Voltage, rd.CircuitA.Current, rd.CircuitA.Power,
			rd.CircuitA.Capacity, rd.CircuitA.UtilizationPercent,
			rd.CircuitB.Voltage, rd.CircuitB.Current, rd.CircuitB.Power,
			rd.CircuitB.Capacity, rd.CircuitB.UtilizationPercent,
			rd.TotalPower, rd.TotalUtilization,
			nullFloat(rd.AveragePower), nullFloat(rd.PeakPower), nullFloat(rd.MinPower))
		if err != nil {
			return fmt.Errorf("inserting reading %s: %w", rd.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert: %w", err)
	}
	return nil
}

// Query returns an asset's readings in chronological order.
func (r *SQLiteRepository) Query(ctx context.Context, params QueryParams) ([]Reading, error) {
	clauses := []string{"asset_id = ?"}
	args := []any{params.AssetID}

	if params.Granularity != "" {
		clauses = append(clauses, "granularity = ?")
		args = append(args, string(params.Granularity))
	}
	if !params.Start.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, params.Start.UTC().Format(time.RFC3339))
	}
	if !params.End.IsZero() {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, params.End.UTC().Format(time.RFC3339))
	}

	query := "SELECT " + readingColumns + " FROM power_readings WHERE " +
		strings.Join(clauses, " AND ") + " ORDER BY timestamp ASC"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	readings := []Reading{}
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, *rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating readings: %w", err)
	}
	return readings, nil
}

// Latest returns an asset's most recent reading, or nil when the asset
// has none.
func (r *SQLiteRepository) Latest(ctx context.Context, assetID string) (*Reading, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+readingColumns+" FROM power_readings WHERE asset_id = ? ORDER BY timestamp DESC LIMIT 1",
		assetID)
	if err != nil {
		return nil, fmt.Errorf("querying latest reading: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanReading(rows)
}

// Count returns the total number of reading records.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM power_readings").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting readings: %w", err)
	}
	return count, nil
}

func scanReading(rows *sql.Rows) (*Reading, error) {
	var rd Reading
	var timestamp, granularity string
	var avg, peak, minPower sql.NullFloat64

	err := rows.Scan(&rd.ID, &timestamp, &rd.AssetID, &rd.TenantID, &granularity,
		&rd.CircuitA.Voltage, &rd.CircuitA.Current, &rd.CircuitA.Power,
		&rd.CircuitA.Capacity, &rd.CircuitA.UtilizationPercent,
		&rd.CircuitB.Voltage, &rd.CircuitB.Current, &rd.CircuitB.Power,
		&rd.CircuitB.Capacity, &rd.CircuitB.UtilizationPercent,
		&rd.TotalPower, &rd.TotalUtilization, &avg, &peak, &minPower)
	if err != nil {
		return nil, fmt.Errorf("scanning reading: %w", err)
	}

	rd.Timestamp, _ = time.Parse(time.RFC3339, timestamp) //nolint:errcheck // format is controlled
	rd.Granularity = Granularity(granularity)
	if avg.Valid {
		rd.AveragePower = avg.Float64
	}
	if peak.Valid {
		rd.PeakPower = peak.Float64
	}
	if minPower.Valid {
		rd.MinPower = minPower.Float64
	}

	return &rd, nil
}

func nullFloat(v float64) sql.NullFloat64 {
	if v == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
