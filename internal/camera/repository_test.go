package camera

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

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
	_, err = db.ExecContext(ctx,
		"INSERT INTO locations (id, name, short_name) VALUES ('dc-denver-1', 'Denver DC - Downtown', 'DEN1')")
	if err != nil {
		t.Fatalf("insert location: %v", err)
	}

	repo := NewRepository(db.DB)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := Seed(ctx, repo, logger); err != nil {
		t.Fatalf("seed cameras: %v", err)
	}
	return repo
}

func TestVisibleTo(t *testing.T) {
	shared := Camera{
		AssignedTenants: []string{"tenant-acme", "tenant-techstart"},
		AssignedAssets:  []string{},
	}
	restricted := Camera{
		AssignedTenants: []string{"tenant-acme"},
		AssignedAssets:  []string{"rack-101", "rack-102"},
	}

	cases := []struct {
		name     string
		cam      Camera
		tenantID string
		assets   []string
		want     bool
	}{
		{"shared camera, assigned tenant", shared, "tenant-acme", nil, true},
		{"shared camera, unassigned tenant", shared, "tenant-globalfin", nil, false},
		{"restricted camera, overlapping assets", restricted, "tenant-acme", []string{"rack-102"}, true},
		{"restricted camera, no overlap", restricted, "tenant-acme", []string{"cage-5a"}, false},
		{"restricted camera, wrong tenant with matching asset", restricted, "tenant-techstart", []string{"rack-101"}, false},
		{"restricted camera, empty asset scope", restricted, "tenant-acme", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cam.VisibleTo(tc.tenantID, tc.assets); got != tc.want {
				t.Errorf("VisibleTo = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestListForTenant(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Acme with full asset scope sees both overviews plus its two
	// asset-specific cameras.
	cams, err := repo.ListForTenant(ctx, "tenant-acme", []string{"cage-5a", "rack-101", "rack-102"}, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cams) != 4 {
		ids := make([]string, len(cams))
		for i, c := range cams {
			ids[i] = c.ID
		}
		t.Fatalf("acme cameras = %d (%v), want 4", len(cams), ids)
	}

	// Narrowing the asset scope drops the rack row camera.
	cams, err = repo.ListForTenant(ctx, "tenant-acme", []string{"cage-5a"}, "")
	if err != nil {
		t.Fatalf("list narrowed: %v", err)
	}
	if len(cams) != 3 {
		t.Errorf("narrowed cameras = %d, want 3", len(cams))
	}

	// Status filter.
	cams, err = repo.ListForTenant(ctx, "tenant-techstart", []string{"cage-1a", "rack-201"}, StatusMaintenance)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(cams) != 1 || cams[0].ID != "cam-rack-201" {
		t.Errorf("maintenance cameras = %v, want [cam-rack-201]", cams)
	}

	// A tenant never sees another tenant's feeds.
	cams, err = repo.ListForTenant(ctx, "tenant-techstart", []string{"cage-5a", "rack-101"}, "")
	if err != nil {
		t.Fatalf("list cross-tenant: %v", err)
	}
	for _, c := range cams {
		for _, owner := range c.AssignedTenants {
			if owner == "tenant-acme" && len(c.AssignedAssets) > 0 {
				t.Errorf("camera %s leaked across tenants", c.ID)
			}
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.Get(context.Background(), "cam-missing"); !errors.Is(err, ErrCameraNotFound) {
		t.Errorf("error = %v, want ErrCameraNotFound", err)
	}
}
