package announcement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// defaultListLimit bounds listings when the caller does not specify one.
const defaultListLimit = 10

// ListParams narrow an announcement listing.
type ListParams struct {
	TenantID   string
	Severity   Severity
	ActiveOnly bool
	Limit      int
}

// Repository defines announcement persistence.
type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	Get(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, params ListParams) ([]Announcement, error)
	Count(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite. Announcements are
// few; filtering and ordering happen in Go after loading all rows.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time // test hook
}

// NewRepository creates a SQLite-backed announcement repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// Create inserts an announcement. The ID is generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, a *Announcement) error {
	if a.ID == "" {
		a.ID = "ann-" + uuid.NewString()[:8]
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now().UTC()
	}

	targets, err := json.Marshal(a.TargetTenants)
	if err != nil {
		return fmt.Errorf("encoding target tenants: %w", err)
	}

	var expiresAt sql.NullString
	if a.ExpiresAt != nil {
		expiresAt = sql.NullString{String: a.ExpiresAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO announcements (id, title, message, severity, visibility,
		 target_tenants, created_by, created_at, expires_at, pinned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Message, string(a.Severity), string(a.Visibility),
		string(targets), a.CreatedBy, a.CreatedAt.UTC().Format(time.RFC3339),
		expiresAt, boolToInt(a.Pinned),
	)
	if err != nil {
		return fmt.Errorf("creating announcement: %w", err)
	}
	return nil
}

// Get retrieves an announcement by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Announcement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, message, severity, visibility, target_tenants,
		 created_by, created_at, expires_at, pinned FROM announcements WHERE id = ?`, id)
	return scanAnnouncement(row)
}

// List returns the announcements visible to a tenant, sorted by severity
// (critical first) then creation time descending, truncated to the limit.
func (r *SQLiteRepository) List(ctx context.Context, params ListParams) ([]Announcement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, message, severity, visibility, target_tenants,
		 created_by, created_at, expires_at, pinned FROM announcements`)
	if err != nil {
		return nil, fmt.Errorf("listing announcements: %w", err)
	}
	defer rows.Close()

	now := r.now()
	matched := []Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		if !a.VisibleTo(params.TenantID) {
			continue
		}
		if params.Severity != "" && a.Severity != params.Severity {
			continue
		}
		if params.ActiveOnly && a.Expired(now) {
			continue
		}
		matched = append(matched, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating announcements: %w", err)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if severityRank[matched[i].Severity] != severityRank[matched[j].Severity] {
			return severityRank[matched[i].Severity] < severityRank[matched[j].Severity]
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Count returns the number of announcement records.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM announcements").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting announcements: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(s scanner) (*Announcement, error) {
	var a Announcement
	var severity, visibility, targets, createdAt string
	var expiresAt sql.NullString
	var pinned int

	err := s.Scan(&a.ID, &a.Title, &a.Message, &severity, &visibility,
		&targets, &a.CreatedBy, &createdAt, &expiresAt, &pinned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("scanning announcement: %w", err)
	}

	a.Severity = Severity(severity)
	a.Visibility = Visibility(visibility)
	a.Pinned = pinned != 0
	if err := json.Unmarshal([]byte(targets), &a.TargetTenants); err != nil {
		return nil, fmt.Errorf("decoding target tenants: %w", err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	if expiresAt.Valid {
		t, _ := time.Parse(time.RFC3339, expiresAt.String) //nolint:errcheck // format is controlled
		a.ExpiresAt = &t
	}

	return &a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
