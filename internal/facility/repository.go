package facility

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository defines location and zone persistence.
type Repository interface {
	CreateLocation(ctx context.Context, l *Location) error
	GetLocation(ctx context.Context, id string) (*Location, error)
	ListLocations(ctx context.Context) ([]Location, error)
	CreateZone(ctx context.Context, z *Zone) error
	GetZone(ctx context.Context, id string) (*Zone, error)
	ListZones(ctx context.Context, locationID string) ([]Zone, error)
	CountLocations(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a SQLite-backed facility repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateLocation inserts a location record.
func (r *SQLiteRepository) CreateLocation(ctx context.Context, l *Location) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (id, name, short_name, status, city, state, country, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.ShortName, l.Status,
		nullString(l.City), nullString(l.State), nullString(l.Country),
		l.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating location: %w", err)
	}
	return nil
}

// GetLocation retrieves a location by ID.
func (r *SQLiteRepository) GetLocation(ctx context.Context, id string) (*Location, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, short_name, status, city, state, country, created_at
		 FROM locations WHERE id = ?`, id)
	return scanLocation(row)
}

// ListLocations returns all locations ordered by ID.
func (r *SQLiteRepository) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, short_name, status, city, state, country, created_at
		 FROM locations ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locations: %w", err)
	}
	return locations, nil
}

// CreateZone inserts a zone record.
func (r *SQLiteRepository) CreateZone(ctx context.Context, z *Zone) error {
	cages, err := json.Marshal(z.Cages)
	if err != nil {
		return fmt.Errorf("encoding cages: %w", err)
	}
	racks, err := json.Marshal(z.Racks)
	if err != nil {
		return fmt.Errorf("encoding racks: %w", err)
	}
	sensors, err := json.Marshal(z.EnvironmentalSensors)
	if err != nil {
		return fmt.Errorf("encoding sensors: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO zones (id, location_id, name, cages, racks, environmental_sensors)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		z.ID, z.LocationID, z.Name, string(cages), string(racks), string(sensors),
	)
	if err != nil {
		return fmt.Errorf("creating zone: %w", err)
	}
	return nil
}

// GetZone retrieves a zone by ID.
func (r *SQLiteRepository) GetZone(ctx context.Context, id string) (*Zone, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, location_id, name, cages, racks, environmental_sensors
		 FROM zones WHERE id = ?`, id)
	return scanZone(row)
}

// ListZones returns the zones of a location ordered by ID.
func (r *SQLiteRepository) ListZones(ctx context.Context, locationID string) ([]Zone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, location_id, name, cages, racks, environmental_sensors
		 FROM zones WHERE location_id = ? ORDER BY id ASC`, locationID)
	if err != nil {
		return nil, fmt.Errorf("listing zones: %w", err)
	}
	defer rows.Close()

	zones := []Zone{}
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, err
		}
		zones = append(zones, *z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zones: %w", err)
	}
	return zones, nil
}

// CountLocations returns the number of location records.
func (r *SQLiteRepository) CountLocations(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting locations: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(s scanner) (*Location, error) {
	var l Location
	var city, state, country sql.NullString
	var createdAt string

	err := s.Scan(&l.ID, &l.Name, &l.ShortName, &l.Status, &city, &state, &country, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("scanning location: %w", err)
	}

	if city.Valid {
		l.City = city.String
	}
	if state.Valid {
		l.State = state.String
	}
	if country.Valid {
		l.Country = country.String
	}
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &l, nil
}

func scanZone(s scanner) (*Zone, error) {
	var z Zone
	var cages, racks, sensors string

	err := s.Scan(&z.ID, &z.LocationID, &z.Name, &cages, &racks, &sensors)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("scanning zone: %w", err)
	}

	if err := json.Unmarshal([]byte(cages), &z.Cages); err != nil {
		return nil, fmt.Errorf("decoding cages: %w", err)
	}
	if err := json.Unmarshal([]byte(racks), &z.Racks); err != nil {
		return nil, fmt.Errorf("decoding racks: %w", err)
	}
	if err := json.Unmarshal([]byte(sensors), &z.EnvironmentalSensors); err != nil {
		return nil, fmt.Errorf("decoding sensors: %w", err)
	}

	return &z, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
