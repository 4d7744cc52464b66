package power

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/radiusdc/portal-core/internal/infrastructure/database"
	_ "github.com/radiusdc/portal-core/migrations"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := database.Open(database.Config{Path: database.MemoryPath, BusyTimeout: 5000})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, stmt := range []string{
		"INSERT INTO locations (id, name, short_name) VALUES ('dc-denver-1', 'Denver DC', 'DEN1')",
		"INSERT INTO tenants (id, company_name) VALUES ('tenant-acme', 'Acme Corporation')",
		`INSERT INTO assets (id, type, location_id, zone_id, name, tenant_id)
		 VALUES ('rack-101', 'rack', 'dc-denver-1', 'zone-north', 'Rack 101', 'tenant-acme')`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("seed fixture: %v", err)
		}
	}

	repo := NewRepository(db.DB)
	g := NewGenerator(rand.New(rand.NewSource(7))) //nolint:gosec // deterministic test data
	if err := repo.InsertBatch(ctx, g.Generate("rack-101", "tenant-acme", ProfileFor("standard"))); err != nil {
		t.Fatalf("insert readings: %v", err)
	}
	return repo
}

func TestQuery_ByGranularity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	hourly, err := repo.Query(ctx, QueryParams{AssetID: "rack-101", Granularity: GranularityHourly})
	if err != nil {
		t.Fatalf("query hourly: %v", err)
	}
	if len(hourly) != hourlyDays*24 {
		t.Errorf("hourly readings = %d, want %d", len(hourly), hourlyDays*24)
	}

	weekly, err := repo.Query(ctx, QueryParams{AssetID: "rack-101", Granularity: GranularityWeekly})
	if err != nil {
		t.Fatalf("query weekly: %v", err)
	}
	if len(weekly) != weeklyCount {
		t.Errorf("weekly readings = %d, want %d", len(weekly), weeklyCount)
	}
	for _, rd := range weekly {
		if rd.AveragePower == 0 {
			t.Fatal("weekly aggregate lost in round-trip")
		}
	}
}

func TestQuery_TimeWindow(t *testing.T) {
	repo := newTestRepo(t)

	start := time.Now().AddDate(0, 0, -2)
	readings, err := repo.Query(context.Background(), QueryParams{
		AssetID: "rack-101",
		Start:   start,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(readings) == 0 {
		t.Fatal("expected readings in the window")
	}
	for i, rd := range readings {
		if rd.Timestamp.Before(start.Add(-time.Second)) {
			t.Fatalf("reading predates window start")
		}
		if i > 0 && rd.Timestamp.Before(readings[i-1].Timestamp) {
			t.Fatal("readings not chronological")
		}
	}
}

func TestLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	latest, err := repo.Latest(ctx, "rack-101")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil {
		t.Fatal("expected a reading")
	}
	if latest.Granularity != GranularityHourly {
		t.Errorf("latest granularity = %q, want hourly", latest.Granularity)
	}
	if time.Since(latest.Timestamp) > 2*time.Hour {
		t.Errorf("latest reading is stale: %v", latest.Timestamp)
	}

	// Unknown asset yields nil, not an error.
	missing, err := repo.Latest(ctx, "rack-999")
	if err != nil {
		t.Fatalf("latest missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil reading for unknown asset")
	}
}
