package accesslog

import "time"

// Action is the outcome category of an access event.
type Action string

const (
	ActionEntry  Action = "entry"
	ActionExit   Action = "exit"
	ActionDenied Action = "denied"
)

// IsValidAction reports whether an action value is recognised.
func IsValidAction(a Action) bool {
	return a == ActionEntry || a == ActionExit || a == ActionDenied
}

// Method is the credential type presented at the access point.
type Method string

const (
	MethodBadge     Method = "badge"
	MethodPIN       Method = "pin"
	MethodBiometric Method = "biometric"
	MethodBadgePIN  Method = "badge+pin"
)

// Log is a single physical access event.
type Log struct {
	ID              string    `json:"logId"`
	Timestamp       time.Time `json:"timestamp"`
	TenantID        string    `json:"tenantId"`
	PersonName      string    `json:"userName"`
	BadgeID         string    `json:"badgeId"`
	AccessPoint     string    `json:"accessPoint"`
	LocationID      string    `json:"location"`
	ZoneID          string    `json:"zone"`
	AssetID         string    `json:"asset"`
	Action          Action    `json:"action"`
	Method          Method    `json:"method"`
	Success         bool      `json:"success"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	DenialReason    string    `json:"denialReason,omitempty"`
	EscortName      string    `json:"escortName,omitempty"`
}
