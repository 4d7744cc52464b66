package announcement

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

func expiry(value string) *time.Time {
	t := mustParse(value)
	return &t
}

// seedRecords are the demo facility notices.
var seedRecords = []Announcement{
	{
		ID:    "ann-001",
		Title: "Scheduled Maintenance - North Wing UPS Testing",
		Message: "The North Wing will undergo routine UPS testing on January 20th, 2026 " +
			"from 2:00 AM to 4:00 AM MST. All systems will remain operational during this " +
			"time, but redundancy will be temporarily reduced. Critical operations will be prioritized.",
		Severity:      SeverityWarning,
		Visibility:    VisibilityPublic,
		TargetTenants: []string{},
		CreatedBy:     "Operations Team",
		CreatedAt:     mustParse("2026-01-14T10:00:00Z"),
		ExpiresAt:     expiry("2026-01-21T00:00:00Z"),
		Pinned:        true,
	},
	{
		ID:    "ann-002",
		Title: "CRITICAL: Network Upgrade Completion",
		Message: "The core network upgrade has been successfully completed. All tenants " +
			"should now experience improved throughput and reduced latency. Please contact " +
			"support if you experience any connectivity issues.",
		Severity:      SeverityCritical,
		Visibility:    VisibilityPublic,
		TargetTenants: []string{},
		CreatedBy:     "Network Engineering",
		CreatedAt:     mustParse("2026-01-15T08:30:00Z"),
		ExpiresAt:     expiry("2026-01-18T00:00:00Z"),
		Pinned:        true,
	},
	{
		ID:    "ann-003",
		Title: "New Camera System Features Available",
		Message: "We have deployed new camera features including improved night vision, " +
			"motion detection alerts, and 4K streaming for select cameras. Access the " +
			"camera dashboard to explore these enhancements.",
		Severity:      SeverityInfo,
		Visibility:    VisibilityPublic,
		TargetTenants: []string{},
		CreatedBy:     "Facilities Management",
		CreatedAt:     mustParse("2026-01-12T14:00:00Z"),
		ExpiresAt:     expiry("2026-01-26T00:00:00Z"),
	},
	{
		ID:    "ann-004",
		Title: "Holiday Access Hours - MLK Day",
		Message: "On Martin Luther King Jr. Day (January 20th), on-site support will be " +
			"limited to emergency calls only. Remote hands services remain available 24/7. " +
			"Please plan accordingly for any non-urgent physical access needs.",
		Severity:      SeverityInfo,
		Visibility:    VisibilityPublic,
		TargetTenants: []string{},
		CreatedBy:     "Customer Success",
		CreatedAt:     mustParse("2026-01-10T09:00:00Z"),
		ExpiresAt:     expiry("2026-01-21T00:00:00Z"),
	},
	{
		ID:    "ann-005",
		Title: "Power Optimization Advisory - South Wing",
		Message: "Our monitoring systems have detected opportunities for power optimization " +
			"in the South Wing. Tenants with assets in this zone may benefit from our " +
			"complimentary power efficiency audit. Contact your account manager to schedule.",
		Severity:      SeverityInfo,
		Visibility:    VisibilityTenant,
		TargetTenants: []string{"tenant-acme", "tenant-globalfin"},
		CreatedBy:     "Energy Management",
		CreatedAt:     mustParse("2026-01-08T11:00:00Z"),
		ExpiresAt:     expiry("2026-02-01T00:00:00Z"),
	},
}

// Seed provisions the demo announcements if none exist. Returns the
// number created.
func Seed(ctx context.Context, repo Repository, logger *slog.Logger) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking announcement count: %w", err)
	}
	if count > 0 {
		logger.Info("announcements exist, skipping seed")
		return 0, nil
	}

	for i := range seedRecords {
		a := seedRecords[i]
		if err := repo.Create(ctx, &a); err != nil {
			return i, fmt.Errorf("creating announcement %s: %w", a.ID, err)
		}
	}

	logger.Info("demo announcements seeded", "count", len(seedRecords))
	return len(seedRecords), nil
}
