package announcement

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/radiusdc/portal-core/internal/infrastructure/database"
	_ "github.com/radiusdc/portal-core/migrations"
)

// testClock pins "now" inside the seed data's validity window so
// ActiveOnly filtering behaves the same regardless of when tests run.
var testClock = mustParse("2026-01-16T12:00:00Z")

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

	repo := NewRepository(db.DB)
	repo.now = func() time.Time { return testClock }

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := Seed(ctx, repo, logger); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func TestList_SeverityThenRecency(t *testing.T) {
	repo := newTestRepo(t)

	anns, err := repo.List(context.Background(), ListParams{
		TenantID:   "tenant-acme",
		ActiveOnly: true,
		Limit:      100,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(anns) != 5 {
		t.Fatalf("announcements = %d, want 5", len(anns))
	}

	// Critical first, then warning, then infos newest-first.
	wantOrder := []string{"ann-002", "ann-001", "ann-003", "ann-004", "ann-005"}
	for i, want := range wantOrder {
		if anns[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, anns[i].ID, want)
		}
	}
}

func TestList_TenantTargeting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// TechStart is not targeted by the tenant-specific advisory.
	anns, err := repo.List(ctx, ListParams{
		TenantID:   "tenant-techstart",
		ActiveOnly: true,
		Limit:      100,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, a := range anns {
		if a.ID == "ann-005" {
			t.Error("tenant-specific announcement leaked to untargeted tenant")
		}
	}
	if len(anns) != 4 {
		t.Errorf("techstart announcements = %d, want 4", len(anns))
	}
}

func TestList_ActiveOnlyAndSeverity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Move the clock past the critical notice's expiry.
	repo.now = func() time.Time { return mustParse("2026-01-19T00:00:00Z") }

	anns, err := repo.List(ctx, ListParams{
		TenantID:   "tenant-acme",
		ActiveOnly: true,
		Limit:      100,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, a := range anns {
		if a.ID == "ann-002" {
			t.Error("expired announcement returned with ActiveOnly")
		}
	}

	// With ActiveOnly off the expired notice comes back.
	anns, err = repo.List(ctx, ListParams{TenantID: "tenant-acme", Limit: 100})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(anns) != 5 {
		t.Errorf("all announcements = %d, want 5", len(anns))
	}

	// Severity filter.
	anns, err = repo.List(ctx, ListParams{
		TenantID: "tenant-acme",
		Severity: SeverityWarning,
		Limit:    100,
	})
	if err != nil {
		t.Fatalf("list warnings: %v", err)
	}
	if len(anns) != 1 || anns[0].ID != "ann-001" {
		t.Errorf("warnings = %v, want [ann-001]", anns)
	}
}

func TestList_DefaultLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		a := Announcement{
			Title:      "Filler",
			Message:    "filler notice",
			Severity:   SeverityInfo,
			Visibility: VisibilityPublic,
			CreatedBy:  "Operations Team",
		}
		if err := repo.Create(ctx, &a); err != nil {
			t.Fatalf("create filler: %v", err)
		}
	}

	anns, err := repo.List(ctx, ListParams{TenantID: "tenant-acme"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(anns) != defaultListLimit {
		t.Errorf("announcements = %d, want default limit %d", len(anns), defaultListLimit)
	}
}

func TestCreate_GeneratesID(t *testing.T) {
	repo := newTestRepo(t)

	a := Announcement{
		Title:      "Ad-hoc notice",
		Message:    "short message",
		Severity:   SeverityInfo,
		Visibility: VisibilityPublic,
		CreatedBy:  "Operations Team",
	}
	if err := repo.Create(context.Background(), &a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := repo.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Ad-hoc notice" {
		t.Errorf("title = %q", got.Title)
	}
	if got.ExpiresAt != nil {
		t.Error("expected no expiry")
	}
}
