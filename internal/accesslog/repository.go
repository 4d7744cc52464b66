package accesslog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Listing bounds. Callers asking for more than maxListLimit are clamped,
// not rejected.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// QueryParams narrow an access log listing. TenantID and AssetIDs are
// mandatory scope; the rest are optional filters.
type QueryParams struct {
	TenantID string
	AssetIDs []string
	Action   Action
	Start    time.Time
	End      time.Time
	Limit    int
	Offset   int
}

// Page is a window of logs plus the total match count for pagination.
type Page struct {
	Logs  []Log
	Total int
}

// Repository defines access log persistence.
type Repository interface {
	InsertBatch(ctx context.Context, logs []Log) error
	Query(ctx context.Context, params QueryParams) (*Page, error)
	Count(ctx context.Context) (int, error)
	CountSince(ctx context.Context, tenantID string, assetIDs []string, since time.Time) (int, error)
}

// SQLiteRepository implements Repository using SQLite. Access logs are
// the portal's largest table, so filtering and pagination stay in SQL.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLite-backed access log repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InsertBatch writes a batch of logs in a single transaction.
func (r *SQLiteRepository) InsertBatch(ctx context.Context, logs []Log) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO access_logs (id, timestamp, tenant_id, person_name, badge_id,
		 access_point, location_id, zone_id, asset_id, action, method, success,
		 duration_seconds, denial_reason, escort_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range logs {
		l := &logs[i]
		_, err := stmt.ExecContext(ctx,
			l.ID, l.Timestamp.UTC().Format(time.RFC3339), l.TenantID, l.PersonName,
			l.BadgeID, l.AccessPoint, l.LocationID, l.ZoneID, l.AssetID,
			string(l.Action), string(l.Method), boolToInt(l.Success),
			nullInt(l.DurationSeconds), nullString(l.DenialReason), nullString(l.EscortName),
		)
		if err != nil {
			return fmt.Errorf("inserting log %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert: %w", err)
	}
	return nil
}

// Query returns a page of logs matching the params, newest first.
func (r *SQLiteRepository) Query(ctx context.Context, params QueryParams) (*Page, error) {
	where, args := buildWhere(params)

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM access_logs "+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting logs: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, timestamp, tenant_id, person_name, badge_id, access_point,
		location_id, zone_id, asset_id, action, method, success, duration_seconds,
		denial_reason, escort_name FROM access_logs ` + where +
		" ORDER BY timestamp DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("querying logs: %w", err)
	}
	defer rows.Close()

	logs := []Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating logs: %w", err)
	}

	return &Page{Logs: logs, Total: total}, nil
}

// Count returns the total number of log records.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM access_logs").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting logs: %w", err)
	}
	return count, nil
}

// CountSince returns the number of a tenant's events for the given assets
// at or after the cutoff. Used by the dashboard summary.
func (r *SQLiteRepository) CountSince(ctx context.Context, tenantID string, assetIDs []string, since time.Time) (int, error) {
	where, args := buildWhere(QueryParams{
		TenantID: tenantID,
		AssetIDs: assetIDs,
		Start:    since,
	})

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM access_logs "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting recent logs: %w", err)
	}
	return count, nil
}

// buildWhere assembles the WHERE clause for a query.
func buildWhere(params QueryParams) (string, []any) {
	clauses := []string{"tenant_id = ?"}
	args := []any{params.TenantID}

	if len(params.AssetIDs) > 0 {
		placeholders := strings.Repeat("?,", len(params.AssetIDs))
		clauses = append(clauses, "asset_id IN ("+placeholders[:len(placeholders)-1]+")")
		for _, id := range params.AssetIDs {
			args = append(args, id)
		}
	}
	if params.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, string(params.Action))
	}
	if !params.Start.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, params.Start.UTC().Format(time.RFC3339))
	}
	if !params.End.IsZero() {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, params.End.UTC().Format(time.RFC3339))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func scanLog(rows *sql.Rows) (*Log, error) {
	var l Log
	var timestamp, action, method string
	var success int
	var duration sql.NullInt64
	var denialReason, escortName sql.NullString

	err := rows.Scan(&l.ID, &timestamp, &l.TenantID, &l.PersonName, &l.BadgeID,
		&l.AccessPoint, &l.LocationID, &l.ZoneID, &l.AssetID, &action, &method,
		&success, &duration, &denialReason, &escortName)
	if err != nil {
		return nil, fmt.Errorf("scanning log: %w", err)
	}

	l.Timestamp, _ = time.Parse(time.RFC3339, timestamp) //nolint:errcheck // format is controlled
	l.Action = Action(action)
	l.Method = Method(method)
	l.Success = success != 0
	if duration.Valid {
		l.DurationSeconds = int(duration.Int64)
	}
	if denialReason.Valid {
		l.DenialReason = denialReason.String
	}
	if escortName.Valid {
		l.EscortName = escortName.String
	}

	return &l, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(n int) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(n), Valid: true}
}
