package accesslog

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
		"INSERT INTO tenants (id, company_name) VALUES ('tenant-techstart', 'TechStart Industries')",
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("seed fixture: %v", err)
		}
	}
	return NewRepository(db.DB)
}

func seedLogs(t *testing.T, repo *SQLiteRepository) []Log {
	t.Helper()

	g := NewGenerator(rand.New(rand.NewSource(7))) //nolint:gosec // deterministic test data
	logs := g.Generate("tenant-acme", testAssets, 10, 10)

	// One foreign-tenant log to prove scoping.
	other := logs[0]
	other.ID = "log-other-tenant"
	other.TenantID = "tenant-techstart"
	logs = append(logs, other)

	if err := repo.InsertBatch(context.Background(), logs); err != nil {
		t.Fatalf("insert batch: %v", err)
	}
	return logs
}

func TestQuery_TenantScoping(t *testing.T) {
	repo := newTestRepo(t)
	logs := seedLogs(t, repo)

	page, err := repo.Query(context.Background(), QueryParams{
		TenantID: "tenant-acme",
		AssetIDs: []string{"cage-5a", "rack-101"},
		Limit:    MaxListLimit,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if page.Total != len(logs)-1 {
		t.Errorf("total = %d, want %d", page.Total, len(logs)-1)
	}
	for _, l := range page.Logs {
		if l.TenantID != "tenant-acme" {
			t.Fatalf("foreign tenant log %s leaked", l.ID)
		}
	}
}

func TestQuery_Pagination(t *testing.T) {
	repo := newTestRepo(t)
	seedLogs(t, repo)
	ctx := context.Background()

	params := QueryParams{
		TenantID: "tenant-acme",
		AssetIDs: []string{"cage-5a", "rack-101"},
		Limit:    10,
	}
	first, err := repo.Query(ctx, params)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Logs) != 10 {
		t.Fatalf("first page = %d logs, want 10", len(first.Logs))
	}

	params.Offset = 10
	second, err := repo.Query(ctx, params)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if second.Total != first.Total {
		t.Errorf("totals differ across pages: %d vs %d", first.Total, second.Total)
	}
	if len(second.Logs) == 0 {
		t.Fatal("second page empty")
	}
	if second.Logs[0].ID == first.Logs[0].ID {
		t.Error("offset did not advance the window")
	}

	// Pages stay newest first across the boundary.
	last := first.Logs[len(first.Logs)-1]
	if second.Logs[0].Timestamp.After(last.Timestamp) {
		t.Error("second page is newer than the end of the first")
	}
}

func TestQuery_Filters(t *testing.T) {
	repo := newTestRepo(t)
	seedLogs(t, repo)
	ctx := context.Background()

	denied, err := repo.Query(ctx, QueryParams{
		TenantID: "tenant-acme",
		Action:   ActionDenied,
		Limit:    MaxListLimit,
	})
	if err != nil {
		t.Fatalf("query denied: %v", err)
	}
	for _, l := range denied.Logs {
		if l.Action != ActionDenied {
			t.Fatalf("action = %q, want denied", l.Action)
		}
	}

	oneAsset, err := repo.Query(ctx, QueryParams{
		TenantID: "tenant-acme",
		AssetIDs: []string{"cage-5a"},
		Limit:    MaxListLimit,
	})
	if err != nil {
		t.Fatalf("query asset: %v", err)
	}
	for _, l := range oneAsset.Logs {
		if l.AssetID != "cage-5a" {
			t.Fatalf("asset = %q, want cage-5a", l.AssetID)
		}
	}

	cutoff := time.Now().AddDate(0, 0, -3)
	recent, err := repo.Query(ctx, QueryParams{
		TenantID: "tenant-acme",
		Start:    cutoff,
		Limit:    MaxListLimit,
	})
	if err != nil {
		t.Fatalf("query recent: %v", err)
	}
	for _, l := range recent.Logs {
		if l.Timestamp.Before(cutoff.Add(-time.Second)) {
			t.Fatalf("log at %v predates cutoff %v", l.Timestamp, cutoff)
		}
	}
}

func TestQuery_LimitClamp(t *testing.T) {
	repo := newTestRepo(t)
	seedLogs(t, repo)

	// An oversized limit is clamped, not rejected.
	page, err := repo.Query(context.Background(), QueryParams{
		TenantID: "tenant-acme",
		Limit:    10000,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(page.Logs) > MaxListLimit {
		t.Errorf("returned %d logs, max is %d", len(page.Logs), MaxListLimit)
	}
}

func TestCountSince(t *testing.T) {
	repo := newTestRepo(t)
	seedLogs(t, repo)
	ctx := context.Background()

	all, err := repo.CountSince(ctx, "tenant-acme", nil, time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("count since: %v", err)
	}
	day, err := repo.CountSince(ctx, "tenant-acme", nil, time.Now().AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("count since day: %v", err)
	}
	if day > all {
		t.Errorf("24h count %d exceeds 30d count %d", day, all)
	}
	if all == 0 {
		t.Error("expected non-zero 30d count")
	}
}

func TestCountSince_AssetScoping(t *testing.T) {
	repo := newTestRepo(t)
	seedLogs(t, repo)
	ctx := context.Background()

	since := time.Now().AddDate(0, 0, -30)
	all, err := repo.CountSince(ctx, "tenant-acme", nil, since)
	if err != nil {
		t.Fatalf("count all: %v", err)
	}
	oneAsset, err := repo.CountSince(ctx, "tenant-acme", []string{"cage-5a"}, since)
	if err != nil {
		t.Fatalf("count asset: %v", err)
	}
	if oneAsset >= all {
		t.Errorf("asset-scoped count %d not below tenant count %d", oneAsset, all)
	}

	page, err := repo.Query(ctx, QueryParams{
		TenantID: "tenant-acme",
		AssetIDs: []string{"cage-5a"},
		Start:    since,
		Limit:    MaxListLimit,
	})
	if err != nil {
		t.Fatalf("query asset: %v", err)
	}
	if oneAsset != page.Total {
		t.Errorf("count = %d, query total = %d", oneAsset, page.Total)
	}
}
