package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// demoPassword is the shared password for all demo accounts. The portal
// runs against synthetic data only; these accounts exist so the login
// flow can be exercised end to end.
const demoPassword = "Demo123!"

// demoUsers are the accounts provisioned on first boot.
var demoUsers = []User{
	{
		ID:        "user-1",
		Email:     "john.doe@acme.com",
		FirstName: "John",
		LastName:  "Doe",
		TenantID:  "tenant-acme",
		Role:      RoleAdmin,
		Permissions: []Permission{
			PermAccessLogsRead,
			PermAccessLogsExport,
			PermCamerasView,
			PermCamerasPTZControl,
			PermEnvironmentalRead,
			PermEnvironmentalAlert,
			PermAnnouncementsRead,
			PermAnnouncementsWrite,
			PermUsersManage,
		},
		AssignedAssets: []string{"cage-5a", "rack-101", "rack-102"},
		MFAEnabled:     true,
		IsActive:       true,
	},
	{
		ID:        "user-2",
		Email:     "jane.smith@acme.com",
		FirstName: "Jane",
		LastName:  "Smith",
		TenantID:  "tenant-acme",
		Role:      RoleUser,
		Permissions: []Permission{
			PermAccessLogsRead,
			PermCamerasView,
			PermEnvironmentalRead,
			PermAnnouncementsRead,
		},
		AssignedAssets: []string{"cage-5a"},
		MFAEnabled:     true,
		IsActive:       true,
	},
	{
		ID:        "user-3",
		Email:     "bob.jones@techstart.io",
		FirstName: "Bob",
		LastName:  "Jones",
		TenantID:  "tenant-techstart",
		Role:      RoleViewer,
		Permissions: []Permission{
			PermAccessLogsRead,
			PermCamerasView,
			PermEnvironmentalRead,
			PermAnnouncementsRead,
		},
		AssignedAssets: []string{"rack-201"},
		MFAEnabled:     true,
		IsActive:       true,
	},
}

// SeedUsers provisions the demo accounts if the user table is empty.
// Returns the number of accounts created.
func SeedUsers(ctx context.Context, repo UserRepository, logger *slog.Logger) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking user count: %w", err)
	}
	if count > 0 {
		logger.Info("users exist, skipping seed")
		return 0, nil
	}

	hash, err := HashPassword(demoPassword)
	if err != nil {
		return 0, fmt.Errorf("hashing demo password: %w", err)
	}

	for i := range demoUsers {
		u := demoUsers[i]
		u.PasswordHash = hash
		if err := repo.Create(ctx, &u); err != nil {
			return i, fmt.Errorf("creating demo user %s: %w", u.Email, err)
		}
	}

	logger.Info("demo users seeded", "count", len(demoUsers))
	return len(demoUsers), nil
}
