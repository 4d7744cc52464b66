package tenant

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository defines tenant and asset persistence.
type Repository interface {
	CreateTenant(ctx context.Context, t *Tenant) error
	GetTenant(ctx context.Context, id string) (*Tenant, error)
	ListTenants(ctx context.Context) ([]Tenant, error)
	CreateAsset(ctx context.Context, a *Asset) error
	GetAsset(ctx context.Context, id string) (*Asset, error)
	ListAssetsByTenant(ctx context.Context, tenantID string) ([]Asset, error)
	CountTenants(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLite-backed tenant repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateTenant inserts a tenant record.
func (r *SQLiteRepository) CreateTenant(ctx context.Context, t *Tenant) error {
	locations, err := json.Marshal(t.AssignedLocations)
	if err != nil {
		return fmt.Errorf("encoding assigned locations: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tenants (id, company_name, status, tier, assigned_locations,
		 contact_email, billing_contact, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CompanyName, string(t.Status), string(t.Tier), string(locations),
		nullString(t.ContactEmail), nullString(t.BillingContact),
		t.CreatedAt.UTC().Format(time.RFC3339), t.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating tenant: %w", err)
	}
	return nil
}

// GetTenant retrieves a tenant by ID.
func (r *SQLiteRepository) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, company_name, status, tier, assigned_locations, contact_email,
		 billing_contact, created_at, updated_at FROM tenants WHERE id = ?`, id)
	return scanTenant(row)
}

// ListTenants returns all tenants ordered by company name.
func (r *SQLiteRepository) ListTenants(ctx context.Context) ([]Tenant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_name, status, tier, assigned_locations, contact_email,
		 billing_contact, created_at, updated_at FROM tenants ORDER BY company_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	tenants := []Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenants: %w", err)
	}
	return tenants, nil
}

// CreateAsset inserts an asset record.
func (r *SQLiteRepository) CreateAsset(ctx context.Context, a *Asset) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (id, type, location_id, zone_id, name, tenant_id, size,
		 status, rack_profile, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, string(a.Type), a.LocationID, a.ZoneID, a.Name, a.TenantID,
		a.Size, a.Status, nullString(string(a.RackProfile)),
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating asset: %w", err)
	}
	return nil
}

// GetAsset retrieves an asset by ID.
func (r *SQLiteRepository) GetAsset(ctx context.Context, id string) (*Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, type, location_id, zone_id, name, tenant_id, size, status,
		 rack_profile, created_at FROM assets WHERE id = ?`, id)
	return scanAsset(row)
}

// ListAssetsByTenant returns the tenant's assets ordered by ID.
func (r *SQLiteRepository) ListAssetsByTenant(ctx context.Context, tenantID string) ([]Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, location_id, zone_id, name, tenant_id, size, status,
		 rack_profile, created_at FROM assets WHERE tenant_id = ? ORDER BY id ASC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	assets := []Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}
	return assets, nil
}

// CountTenants returns the number of tenant records.
func (r *SQLiteRepository) CountTenants(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tenants").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tenants: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTenant(s scanner) (*Tenant, error) {
	var t Tenant
	var status, tier, locations string
	var contactEmail, billingContact sql.NullString
	var createdAt, updatedAt string

	err := s.Scan(&t.ID, &t.CompanyName, &status, &tier, &locations,
		&contactEmail, &billingContact, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("scanning tenant: %w", err)
	}

	t.Status = Status(status)
	t.Tier = Tier(tier)
	if err := json.Unmarshal([]byte(locations), &t.AssignedLocations); err != nil {
		return nil, fmt.Errorf("decoding assigned locations: %w", err)
	}
	if contactEmail.Valid {
		t.ContactEmail = contactEmail.String
	}
	if billingContact.Valid {
		t.BillingContact = billingContact.String
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &t, nil
}

func scanAsset(s scanner) (*Asset, error) {
	var a Asset
	var assetType, status string
	var rackProfile sql.NullString
	var createdAt string

	err := s.Scan(&a.ID, &assetType, &a.LocationID, &a.ZoneID, &a.Name,
		&a.TenantID, &a.Size, &status, &rackProfile, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("scanning asset: %w", err)
	}

	a.Type = AssetType(assetType)
	a.Status = status
	if rackProfile.Valid {
		a.RackProfile = RackProfile(rackProfile.String)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &a, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
