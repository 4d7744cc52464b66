package tenant

import (
	"errors"
	"time"
)

// Status represents a tenant account's lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

// Tier is the tenant's service tier.
type Tier string

const (
	TierStandard   Tier = "standard"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

// Tenant represents a customer company with colocation space.
type Tenant struct {
	ID                string    `json:"tenantId"`
	CompanyName       string    `json:"companyName"`
	Status            Status    `json:"status"`
	Tier              Tier      `json:"tier"`
	AssignedLocations []string  `json:"assignedLocations"`
	ContactEmail      string    `json:"contactEmail,omitempty"`
	BillingContact    string    `json:"billingContact,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// AssetType distinguishes cages from racks.
type AssetType string

const (
	AssetCage AssetType = "cage"
	AssetRack AssetType = "rack"
)

// RackProfile selects the power envelope used when generating readings
// for a rack.
type RackProfile string

const (
	ProfileStandard    RackProfile = "standard"
	ProfileHighDensity RackProfile = "high-density"
	ProfileBlade       RackProfile = "blade"
)

// Asset is a cage or rack assigned to a tenant within a zone.
type Asset struct {
	ID          string      `json:"assetId"`
	Type        AssetType   `json:"type"`
	LocationID  string      `json:"locationId"`
	ZoneID      string      `json:"zoneId"`
	Name        string      `json:"name"`
	TenantID    string      `json:"tenantId"`
	Size        string      `json:"size"`
	Status      string      `json:"status"`
	RackProfile RackProfile `json:"rackProfile,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Sentinel errors.
var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrAssetNotFound  = errors.New("asset not found")
)
