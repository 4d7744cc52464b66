package camera

import (
	"context"
	"fmt"
	"log/slog"
)

// seedCameraRecords cover the demo facility: shared zone overviews plus
// asset-specific feeds for each tenant's cages and racks.
var seedCameraRecords = []Camera{
	{
		ID: "cam-north-overview", Name: "North Wing Overview",
		LocationID: "dc-denver-1", ZoneID: "zone-north",
		StreamURL: "rtsp://streams.dc-denver-1.example/cam-north-overview",
		Type:      TypePanoramic, Visibility: VisibilityShared,
		AssignedTenants: []string{"tenant-acme", "tenant-techstart", "tenant-globalfin"},
		AssignedAssets:  []string{},
		Status:          StatusOnline,
	},
	{
		ID: "cam-south-overview", Name: "South Wing Overview",
		LocationID: "dc-denver-1", ZoneID: "zone-south",
		StreamURL: "rtsp://streams.dc-denver-1.example/cam-south-overview",
		Type:      TypePanoramic, Visibility: VisibilityShared,
		AssignedTenants: []string{"tenant-acme", "tenant-globalfin"},
		AssignedAssets:  []string{},
		Status:          StatusOnline,
	},
	{
		ID: "cam-cage-5a", Name: "Cage 5A Entrance",
		LocationID: "dc-denver-1", ZoneID: "zone-south", AssetID: "cage-5a",
		StreamURL: "rtsp://streams.dc-denver-1.example/cam-cage-5a",
		Type:      TypePTZ, Visibility: VisibilityTenant,
		AssignedTenants: []string{"tenant-acme"},
		AssignedAssets:  []string{"cage-5a"},
		Status:          StatusOnline,
	},
	{
		ID: "cam-rack-row-101", Name: "Rack Row 101-102",
		LocationID: "dc-denver-1", ZoneID: "zone-north",
		StreamURL: "rtsp://streams.dc-denver-1.example/cam-rack-row-101",
		Type:      TypeFixed, Visibility: VisibilityTenant,
		AssignedTenants: []string{"tenant-acme"},
		AssignedAssets:  []string{"rack-101", "rack-102"},
		Status:          StatusOnline,
	},
	{
		ID: "cam-cage-1a", Name: "Cage 1A Entrance",
		LocationID: "dc-denver-1", ZoneID: "zone-north", AssetID: "cage-1a",
		StreamURL: "rtsp://streams.dc-denver-1.example/cam-cage-1a",
		Type:      TypeFixed, Visibility: VisibilityTenant,
		AssignedTenants: []string{"tenant-techstart"},
		AssignedAssets:  []string{"cage-1a"},
		Status:          StatusOnline,
	},
	{
		ID: "cam-rack-201", Name: "Rack 201",
		LocationID: "dc-denver-1", ZoneID: "zone-north", AssetID: "rack-201",
		StreamURL: "rtsp://streams.dc-denver-1.example/cam-rack-201",
		Type:      TypeFixed, Visibility: VisibilityTenant,
		AssignedTenants: []string{"tenant-techstart"},
		AssignedAssets:  []string{"rack-201"},
		Status:          StatusMaintenance,
	},
	{
		ID: "cam-cage-2a", Name: "Cage 2A Entrance",
		LocationID: "dc-denver-1", ZoneID: "zone-north", AssetID: "cage-2a",
		StreamURL: "rtsp://streams.dc-denver-1.example/cam-cage-2a",
		Type:      TypePTZ, Visibility: VisibilityTenant,
		AssignedTenants: []string{"tenant-globalfin"},
		AssignedAssets:  []string{"cage-2a"},
		Status:          StatusOnline,
	},
	{
		ID: "cam-south-cages", Name: "South Cages 3B-4B",
		LocationID: "dc-denver-1", ZoneID: "zone-south",
		StreamURL: "rtsp://streams.dc-denver-1.example/cam-south-cages",
		Type:      TypeFixed, Visibility: VisibilityTenant,
		AssignedTenants: []string{"tenant-globalfin"},
		AssignedAssets:  []string{"cage-3b", "cage-4b", "rack-301"},
		Status:          StatusOffline,
	},
}

// Seed provisions the demo cameras if none exist. Returns the number
// created.
func Seed(ctx context.Context, repo Repository, logger *slog.Logger) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking camera count: %w", err)
	}
	if count > 0 {
		logger.Info("cameras exist, skipping seed")
		return 0, nil
	}

	for i := range seedCameraRecords {
		c := seedCameraRecords[i]
		if err := repo.Create(ctx, &c); err != nil {
			return i, fmt.Errorf("creating camera %s: %w", c.ID, err)
		}
	}

	logger.Info("demo cameras seeded", "count", len(seedCameraRecords))
	return len(seedCameraRecords), nil
}
