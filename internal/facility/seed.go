package facility

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// seedLocationRecords are the demo data center sites.
var seedLocationRecords = []Location{
	{
		ID:        "dc-denver-1",
		Name:      "Denver DC - Downtown",
		ShortName: "DEN1",
		Status:    "operational",
		City:      "Denver",
		State:     "CO",
		Country:   "USA",
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	},
}

// seedZoneRecords are the wings of the demo facility with their sensor
// inventories.
var seedZoneRecords = []Zone{
	{
		ID:         "zone-north",
		LocationID: "dc-denver-1",
		Name:       "North Wing",
		Cages:      []string{"cage-1a", "cage-2a", "cage-3a"},
		Racks:      []string{"rack-101", "rack-102", "rack-201"},
		EnvironmentalSensors: []string{
			"sensor-north-temp-1",
			"sensor-north-temp-2",
			"sensor-north-humidity-1",
			"sensor-north-power-1",
			"sensor-north-airflow-1",
		},
	},
	{
		ID:         "zone-south",
		LocationID: "dc-denver-1",
		Name:       "South Wing",
		Cages:      []string{"cage-3b", "cage-4b", "cage-5a"},
		Racks:      []string{"rack-301"},
		EnvironmentalSensors: []string{
			"sensor-south-temp-1",
			"sensor-south-temp-2",
			"sensor-south-humidity-1",
			"sensor-south-power-1",
			"sensor-south-airflow-1",
		},
	},
}

// Seed provisions the demo facility if no locations exist. Returns the
// number of locations created.
func Seed(ctx context.Context, repo Repository, logger *slog.Logger) (int, error) {
	count, err := repo.CountLocations(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking location count: %w", err)
	}
	if count > 0 {
		logger.Info("locations exist, skipping seed")
		return 0, nil
	}

	for i := range seedLocationRecords {
		l := seedLocationRecords[i]
		if err := repo.CreateLocation(ctx, &l); err != nil {
			return i, fmt.Errorf("creating location %s: %w", l.ID, err)
		}
	}
	for i := range seedZoneRecords {
		z := seedZoneRecords[i]
		if err := repo.CreateZone(ctx, &z); err != nil {
			return len(seedLocationRecords), fmt.Errorf("creating zone %s: %w", z.ID, err)
		}
	}

	logger.Info("demo facility seeded",
		"locations", len(seedLocationRecords),
		"zones", len(seedZoneRecords),
	)
	return len(seedLocationRecords), nil
}
