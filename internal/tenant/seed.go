package tenant

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

func mustParse(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// seedTenantRecords are the demo customer companies.
var seedTenantRecords = []Tenant{
	{
		ID:                "tenant-acme",
		CompanyName:       "Acme Corporation",
		Status:            StatusActive,
		Tier:              TierEnterprise,
		AssignedLocations: []string{"dc-denver-1"},
		ContactEmail:      "operations@acmecorp.com",
		BillingContact:    "billing@acmecorp.com",
		CreatedAt:         mustParse("2025-08-15T10:00:00Z"),
		UpdatedAt:         mustParse("2026-01-10T14:30:00Z"),
	},
	{
		ID:                "tenant-techstart",
		CompanyName:       "TechStart Industries",
		Status:            StatusActive,
		Tier:              TierPremium,
		AssignedLocations: []string{"dc-denver-1"},
		ContactEmail:      "datacenter@techstart.io",
		BillingContact:    "finance@techstart.io",
		CreatedAt:         mustParse("2025-09-20T09:15:00Z"),
		UpdatedAt:         mustParse("2025-12-05T11:20:00Z"),
	},
	{
		ID:                "tenant-globalfin",
		CompanyName:       "Global Financial Services",
		Status:            StatusActive,
		Tier:              TierEnterprise,
		AssignedLocations: []string{"dc-denver-1"},
		ContactEmail:      "itops@globalfinancial.com",
		BillingContact:    "procurement@globalfinancial.com",
		CreatedAt:         mustParse("2025-07-01T08:00:00Z"),
		UpdatedAt:         mustParse("2026-01-12T16:45:00Z"),
	},
}

// seedAssetRecords place each tenant's cages and racks into zones of the
// demo facility. Rack profiles drive the power reading generator.
var seedAssetRecords = []Asset{
	{ID: "cage-5a", Type: AssetCage, LocationID: "dc-denver-1", ZoneID: "zone-south", Name: "Cage 5A", TenantID: "tenant-acme", Size: "private cage", Status: "active"},
	{ID: "rack-101", Type: AssetRack, LocationID: "dc-denver-1", ZoneID: "zone-north", Name: "Rack 101", TenantID: "tenant-acme", Size: "42U", Status: "active", RackProfile: ProfileStandard},
	{ID: "rack-102", Type: AssetRack, LocationID: "dc-denver-1", ZoneID: "zone-north", Name: "Rack 102", TenantID: "tenant-acme", Size: "42U", Status: "active", RackProfile: ProfileHighDensity},
	{ID: "cage-1a", Type: AssetCage, LocationID: "dc-denver-1", ZoneID: "zone-north", Name: "Cage 1A", TenantID: "tenant-techstart", Size: "private cage", Status: "active"},
	{ID: "rack-201", Type: AssetRack, LocationID: "dc-denver-1", ZoneID: "zone-north", Name: "Rack 201", TenantID: "tenant-techstart", Size: "42U", Status: "active", RackProfile: ProfileStandard},
	{ID: "cage-2a", Type: AssetCage, LocationID: "dc-denver-1", ZoneID: "zone-north", Name: "Cage 2A", TenantID: "tenant-globalfin", Size: "private cage", Status: "active"},
	{ID: "cage-3b", Type: AssetCage, LocationID: "dc-denver-1", ZoneID: "zone-south", Name: "Cage 3B", TenantID: "tenant-globalfin", Size: "private cage", Status: "active"},
	{ID: "cage-4b", Type: AssetCage, LocationID: "dc-denver-1", ZoneID: "zone-south", Name: "Cage 4B", TenantID: "tenant-globalfin", Size: "private cage", Status: "active"},
	{ID: "rack-301", Type: AssetRack, LocationID: "dc-denver-1", ZoneID: "zone-south", Name: "Rack 301", TenantID: "tenant-globalfin", Size: "42U", Status: "active", RackProfile: ProfileBlade},
}

// Seed provisions the demo tenants and their assets if no tenants exist.
// Returns the number of tenants created.
func Seed(ctx context.Context, repo Repository, logger *slog.Logger) (int, error) {
	count, err := repo.CountTenants(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking tenant count: %w", err)
	}
	if count > 0 {
		logger.Info("tenants exist, skipping seed")
		return 0, nil
	}

	for i := range seedTenantRecords {
		t := seedTenantRecords[i]
		if err := repo.CreateTenant(ctx, &t); err != nil {
			return i, fmt.Errorf("creating tenant %s: %w", t.ID, err)
		}
	}
	for i := range seedAssetRecords {
		a := seedAssetRecords[i]
		if err := repo.CreateAsset(ctx, &a); err != nil {
			return len(seedTenantRecords), fmt.Errorf("creating asset %s: %w", a.ID, err)
		}
	}

	logger.Info("demo tenants seeded",
		"tenants", len(seedTenantRecords),
		"assets", len(seedAssetRecords),
	)
	return len(seedTenantRecords), nil
}
