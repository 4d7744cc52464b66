package camera

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository defines camera persistence.
type Repository interface {
	Create(ctx context.Context, c *Camera) error
	Get(ctx context.Context, id string) (*Camera, error)
	List(ctx context.Context) ([]Camera, error)
	ListForTenant(ctx context.Context, tenantID string, assetIDs []string, status Status) ([]Camera, error)
	Count(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite. The camera
// inventory is small, so ListForTenant loads all rows and filters in Go
// rather than pushing the JSON membership checks into SQL.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLite-backed camera repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const cameraColumns = `id, name, location_id, zone_id, asset_id, stream_url, type,
	visibility, assigned_tenants, assigned_assets, status, created_at`

// Create inserts a camera record.
func (r *SQLiteRepository) Create(ctx context.Context, c *Camera) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	tenants, err := json.Marshal(c.AssignedTenants)
	if err != nil {
		return fmt.Errorf("encoding assigned tenants: %w", err)
	}
	assets, err := json.Marshal(c.AssignedAssets)
	if err != nil {
		return fmt.Errorf("encoding assigned assets: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO cameras (id, name, location_id, zone_id, asset_id, stream_url,
		 type, visibility, assigned_tenants, assigned_assets, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.LocationID, c.ZoneID, nullString(c.AssetID), c.StreamURL,
		string(c.Type), string(c.Visibility), string(tenants), string(assets),
		string(c.Status), c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating camera: %w", err)
	}
	return nil
}

// Get retrieves a camera by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Camera, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+cameraColumns+" FROM cameras WHERE id = ?", id)
	return scanCamera(row)
}

// List returns all cameras ordered by ID.
func (r *SQLiteRepository) List(ctx context.Context) ([]Camera, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+cameraColumns+" FROM cameras ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing cameras: %w", err)
	}
	defer rows.Close()

	cameras := []Camera{}
	for rows.Next() {
		c, err := scanCamera(rows)
		if err != nil {
			return nil, err
		}
		cameras = append(cameras, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cameras: %w", err)
	}
	return cameras, nil
}

// ListForTenant returns the cameras visible to a tenant within the given
// asset scope, optionally narrowed by status.
func (r *SQLiteRepository) ListForTenant(ctx context.Context, tenantID string, assetIDs []string, status Status) ([]Camera, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := []Camera{}
	for _, c := range all {
		if !c.VisibleTo(tenantID, assetIDs) {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		visible = append(visible, c)
	}
	return visible, nil
}

// Count returns the number of camera records.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cameras").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting cameras: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCamera(s scanner) (*Camera, error) {
	var c Camera
	var assetID sql.NullString
	var camType, visibility, tenants, assets, status, createdAt string

	err := s.Scan(&c.ID, &c.Name, &c.LocationID, &c.ZoneID, &assetID, &c.StreamURL,
		&camType, &visibility, &tenants, &assets, &status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCameraNotFound
		}
		return nil, fmt.Errorf("scanning camera: %w", err)
	}

	c.Type = Type(camType)
	c.Visibility = Visibility(visibility)
	c.Status = Status(status)
	if assetID.Valid {
		c.AssetID = assetID.String
	}
	if err := json.Unmarshal([]byte(tenants), &c.AssignedTenants); err != nil {
		return nil, fmt.Errorf("decoding assigned tenants: %w", err)
	}
	if err := json.Unmarshal([]byte(assets), &c.AssignedAssets); err != nil {
		return nil, fmt.Errorf("decoding assigned assets: %w", err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &c, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
