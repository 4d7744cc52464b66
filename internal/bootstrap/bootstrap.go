package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/radiusdc/portal-core/internal/accesslog"
	"github.com/radiusdc/portal-core/internal/announcement"
	"github.com/radiusdc/portal-core/internal/auth"
	"github.com/radiusdc/portal-core/internal/camera"
	"github.com/radiusdc/portal-core/internal/environmental"
	"github.com/radiusdc/portal-core/internal/facility"
	"github.com/radiusdc/portal-core/internal/infrastructure/config"
	"github.com/radiusdc/portal-core/internal/power"
	"github.com/radiusdc/portal-core/internal/tenant"
)

// Stores aggregates the portal repositories backed by one database.
type Stores struct {
	Facility      facility.Repository
	Tenants       tenant.Repository
	Users         auth.UserRepository
	Cameras       camera.Repository
	Announcements announcement.Repository
	AccessLogs    accesslog.Repository
	Environmental environmental.Repository
	Power         power.Repository
}

// NewStores creates SQLite-backed repositories sharing the given database.
func NewStores(db *sql.DB) *Stores {
	return &Stores{
		Facility:      facility.NewRepository(db),
		Tenants:       tenant.NewRepository(db),
		Users:         auth.NewUserRepository(db),
		Cameras:       camera.NewRepository(db),
		Announcements: announcement.NewRepository(db),
		AccessLogs:    accesslog.NewRepository(db),
		Environmental: environmental.NewRepository(db),
		Power:         power.NewRepository(db),
	}
}

// Counts summarises what Run seeded and generated.
type Counts struct {
	Locations     int
	Tenants       int
	Users         int
	Cameras       int
	Announcements int

	AccessLogs            int
	EnvironmentalReadings int
	PowerReadings         int
}

// Run populates an empty store with seed records and synthetic history.
//
// It returns the per-table counts so the caller can log what a fresh boot
// produced. A non-zero cfg.Seed fixes the random source, making the
// generated data identical across restarts.
func Run(ctx context.Context, stores *Stores, cfg config.DemoDataConfig, logger *slog.Logger) (*Counts, error) {
	start := time.Now()
	counts := &Counts{}

	var err error
	if counts.Locations, err = facility.Seed(ctx, stores.Facility, logger); err != nil {
		return nil, fmt.Errorf("seeding facility: %w", err)
	}
	if counts.Tenants, err = tenant.Seed(ctx, stores.Tenants, logger); err != nil {
		return nil, fmt.Errorf("seeding tenants: %w", err)
	}
	if counts.Users, err = auth.SeedUsers(ctx, stores.Users, logger); err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	if counts.Cameras, err = camera.Seed(ctx, stores.Cameras, logger); err != nil {
		return nil, fmt.Errorf("seeding cameras: %w", err)
	}
	if counts.Announcements, err = announcement.Seed(ctx, stores.Announcements, logger); err != nil {
		return nil, fmt.Errorf("seeding announcements: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic demo data

	if counts.AccessLogs, err = generateAccessLogs(ctx, stores, cfg, rng); err != nil {
		return nil, fmt.Errorf("generating access logs: %w", err)
	}
	if counts.EnvironmentalReadings, err = generateEnvironmental(ctx, stores, cfg, rng); err != nil {
		return nil, fmt.Errorf("generating environmental readings: %w", err)
	}
	if counts.PowerReadings, err = generatePower(ctx, stores, rng); err != nil {
		return nil, fmt.Errorf("generating power readings: %w", err)
	}

	logger.Info("demo data ready",
		"locations", counts.Locations,
		"tenants", counts.Tenants,
		"users", counts.Users,
		"cameras", counts.Cameras,
		"announcements", counts.Announcements,
		"access_logs", counts.AccessLogs,
		"environmental_readings", counts.EnvironmentalReadings,
		"power_readings", counts.PowerReadings,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return counts, nil
}

// generateAccessLogs creates synthetic badge activity for every tenant's
// assets over the configured trailing window.
func generateAccessLogs(ctx context.Context, stores *Stores, cfg config.DemoDataConfig, rng *rand.Rand) (int, error) {
	tenants, err := stores.Tenants.ListTenants(ctx)
	if err != nil {
		return 0, err
	}

	gen := accesslog.NewGenerator(rng)
	total := 0
	for _, t := range tenants {
		assets, err := stores.Tenants.ListAssetsByTenant(ctx, t.ID)
		if err != nil {
			return 0, err
		}
		if len(assets) == 0 {
			continue
		}

		genAssets := make([]accesslog.GeneratorAsset, 0, len(assets))
		for _, a := range assets {
			genAssets = append(genAssets, accesslog.GeneratorAsset{
				ID:         a.ID,
				Name:       a.Name,
				LocationID: a.LocationID,
				ZoneID:     a.ZoneID,
			})
		}

		logs := gen.Generate(t.ID, genAssets, cfg.AccessLogDays, cfg.AccessLogsPerDay)
		if err := stores.AccessLogs.InsertBatch(ctx, logs); err != nil {
			return 0, err
		}
		total += len(logs)
	}

	return total, nil
}

// generateEnvironmental creates hourly temperature and humidity readings
// for every zone of every location.
func generateEnvironmental(ctx context.Context, stores *Stores, cfg config.DemoDataConfig, rng *rand.Rand) (int, error) {
	locations, err := stores.Facility.ListLocations(ctx)
	if err != nil {
		return 0, err
	}

	gen := environmental.NewGenerator(rng)
	total := 0
	for _, loc := range locations {
		zones, err := stores.Facility.ListZones(ctx, loc.ID)
		if err != nil {
			return 0, err
		}

		genZones := make([]environmental.GeneratorZone, 0, len(zones))
		for _, z := range zones {
			genZones = append(genZones, environmental.GeneratorZone{ID: z.ID, Name: z.Name})
		}

		readings := gen.Generate(loc.ID, genZones, cfg.EnvironmentalHours)
		if err := stores.Environmental.InsertBatch(ctx, readings); err != nil {
			return 0, err
		}
		total += len(readings)
	}

	return total, nil
}

// generatePower creates hourly and weekly power readings for every rack,
// using the rack's profile to pick its electrical envelope.
func generatePower(ctx context.Context, stores *Stores, rng *rand.Rand) (int, error) {
	tenants, err := stores.Tenants.ListTenants(ctx)
	if err != nil {
		return 0, err
	}

	gen := power.NewGenerator(rng)
	total := 0
	for _, t := range tenants {
		assets, err := stores.Tenants.ListAssetsByTenant(ctx, t.ID)
		if err != nil {
			return 0, err
		}

		for _, a := range assets {
			if a.Type != tenant.AssetRack {
				continue
			}
			profile := power.ProfileFor(string(a.RackProfile))
			readings := gen.Generate(a.ID, t.ID, profile)
			if err := stores.Power.InsertBatch(ctx, readings); err != nil {
				return 0, err
			}
			total += len(readings)
		}
	}

	return total, nil
}
