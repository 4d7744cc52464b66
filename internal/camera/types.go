package camera

import (
	"errors"
	"time"
)

// Type classifies a camera's mounting and capability.
type Type string

const (
	TypeFixed     Type = "fixed"
	TypePTZ       Type = "ptz"
	TypePanoramic Type = "panoramic"
)

// Status is a camera's operational state.
type Status string

const (
	StatusOnline      Status = "online"
	StatusOffline     Status = "offline"
	StatusMaintenance Status = "maintenance"
)

// Visibility controls who may see a camera feed.
type Visibility string

const (
	// VisibilityShared cameras cover common areas and are visible to every
	// tenant assigned to them.
	VisibilityShared Visibility = "shared"

	// VisibilityTenant cameras cover a specific tenant's assets.
	VisibilityTenant Visibility = "tenant-specific"
)

// Camera represents a surveillance camera in a facility.
type Camera struct {
	ID              string     `json:"cameraId"`
	Name            string     `json:"name"`
	LocationID      string     `json:"location"`
	ZoneID          string     `json:"zone"`
	AssetID         string     `json:"assetId,omitempty"`
	StreamURL       string     `json:"streamUrl"`
	Type            Type       `json:"type"`
	Visibility      Visibility `json:"visibility"`
	AssignedTenants []string   `json:"assignedTenants"`
	AssignedAssets  []string   `json:"assignedAssets"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// VisibleTo reports whether the camera may be shown for the given tenant
// and asset scope. Both gates must pass: the tenant must be assigned, and
// an asset-restricted camera must overlap the requested assets. An empty
// restriction list means the camera covers the whole zone.
func (c *Camera) VisibleTo(tenantID string, assetIDs []string) bool {
	assigned := false
	for _, t := range c.AssignedTenants {
		if t == tenantID {
			assigned = true
			break
		}
	}
	if !assigned {
		return false
	}

	if len(c.AssignedAssets) == 0 {
		return true
	}
	for _, a := range c.AssignedAssets {
		for _, want := range assetIDs {
			if a == want {
				return true
			}
		}
	}
	return false
}

// ErrCameraNotFound is returned when a camera lookup misses.
var ErrCameraNotFound = errors.New("camera not found")
