package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/radiusdc/portal-core/internal/infrastructure/database"
	_ "github.com/radiusdc/portal-core/migrations"
)

// newTestRepo opens an in-memory database with the schema applied and
// returns a user repository over it.
func newTestRepo(t *testing.T) *SQLiteUserRepository {
	t.Helper()

	db, err := database.Open(database.Config{Path: database.MemoryPath, BusyTimeout: 5000})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seedTenants(t, db)
	return NewUserRepository(db.DB)
}

// seedTenants inserts the tenants referenced by test users so foreign
// keys hold.
func seedTenants(t *testing.T, db *database.DB) {
	t.Helper()

	for _, id := range []string{"tenant-acme", "tenant-techstart", "tenant-globalfin"} {
		_, err := db.ExecContext(context.Background(),
			"INSERT INTO tenants (id, company_name) VALUES (?, ?)", id, id)
		if err != nil {
			t.Fatalf("seed tenant %s: %v", id, err)
		}
	}
}

// testLogger returns a logger that discards output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestUser returns a user with sensible defaults for repository tests.
func newTestUser(t *testing.T, email string) *User {
	t.Helper()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &User{
		Email:          email,
		PasswordHash:   hash,
		FirstName:      "Test",
		LastName:       "User",
		TenantID:       "tenant-acme",
		Role:           RoleUser,
		Permissions:    DefaultPermissions(RoleUser),
		AssignedAssets: []string{"rack-101"},
		MFAEnabled:     true,
		IsActive:       true,
	}
}
