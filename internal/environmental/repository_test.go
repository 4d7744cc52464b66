package environmental

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
	if _, err := db.ExecContext(ctx,
		"INSERT INTO locations (id, name, short_name) VALUES ('dc-denver-1', 'Denver DC', 'DEN1')"); err != nil {
		t.Fatalf("insert location: %v", err)
	}

	repo := NewRepository(db.DB)
	g := NewGenerator(rand.New(rand.NewSource(7))) //nolint:gosec // deterministic test data
	if err := repo.InsertBatch(ctx, g.Generate("dc-denver-1", testZones, 48)); err != nil {
		t.Fatalf("insert readings: %v", err)
	}
	return repo
}

func TestQuery_WindowAndFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Default window is 24 hours: 24 x 2 zones x 2 types.
	readings, err := repo.Query(ctx, QueryParams{LocationID: "dc-denver-1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(readings) != 24*2*2 {
		t.Errorf("default window readings = %d, want %d", len(readings), 24*2*2)
	}

	// Zone filter.
	readings, err = repo.Query(ctx, QueryParams{
		LocationID: "dc-denver-1",
		ZoneID:     "zone-north",
		Hours:      48,
	})
	if err != nil {
		t.Fatalf("query zone: %v", err)
	}
	if len(readings) != 48*2 {
		t.Errorf("zone readings = %d, want %d", len(readings), 48*2)
	}
	for _, rd := range readings {
		if rd.ZoneID != "zone-north" {
			t.Fatalf("zone = %q, want zone-north", rd.ZoneID)
		}
	}

	// Type filter.
	readings, err = repo.Query(ctx, QueryParams{
		LocationID: "dc-denver-1",
		Type:       TypeHumidity,
		Hours:      48,
	})
	if err != nil {
		t.Fatalf("query type: %v", err)
	}
	for _, rd := range readings {
		if rd.Type != TypeHumidity {
			t.Fatalf("type = %q, want humidity", rd.Type)
		}
	}

	// Unknown location returns an empty slice, not an error.
	readings, err = repo.Query(ctx, QueryParams{LocationID: "dc-phoenix-1"})
	if err != nil {
		t.Fatalf("query unknown location: %v", err)
	}
	if len(readings) != 0 {
		t.Errorf("unknown location readings = %d, want 0", len(readings))
	}
}

func TestQuery_HoursClamp(t *testing.T) {
	repo := newTestRepo(t)

	// 10000 hours clamps to the 168-hour maximum; we only stored 48.
	readings, err := repo.Query(context.Background(), QueryParams{
		LocationID: "dc-denver-1",
		Hours:      10000,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(readings) != 48*2*2 {
		t.Errorf("clamped readings = %d, want %d", len(readings), 48*2*2)
	}
}

func TestLatestByZone(t *testing.T) {
	repo := newTestRepo(t)

	latest, err := repo.LatestByZone(context.Background(), "dc-denver-1", "zone-south")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("latest readings = %d, want 2 (one per type)", len(latest))
	}
	if latest[0].Type == latest[1].Type {
		t.Error("expected one reading per type")
	}
	for _, rd := range latest {
		if time.Since(rd.Timestamp) > 2*time.Hour {
			t.Errorf("latest reading is stale: %v", rd.Timestamp)
		}
	}
}

func TestCountByStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	since := time.Now().Add(-48 * time.Hour)
	var total int
	for _, status := range []Status{StatusNormal, StatusWarning, StatusCritical} {
		n, err := repo.CountByStatus(ctx, "dc-denver-1", status, since)
		if err != nil {
			t.Fatalf("count %s: %v", status, err)
		}
		total += n
	}

	all, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count all: %v", err)
	}
	if total != all {
		t.Errorf("status counts sum to %d, total is %d", total, all)
	}
}
