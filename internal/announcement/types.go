package announcement

import (
	"errors"
	"time"
)

// Severity orders announcements in listings; critical sorts first.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// severityRank maps severities to their sort position.
var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

// IsValidSeverity reports whether a severity value is recognised.
func IsValidSeverity(s Severity) bool {
	_, ok := severityRank[s]
	return ok
}

// Visibility controls which tenants see an announcement.
type Visibility string

const (
	VisibilityPublic Visibility = "public"
	VisibilityTenant Visibility = "tenant-specific"
)

// IsValidVisibility reports whether a visibility value is recognised.
func IsValidVisibility(v Visibility) bool {
	return v == VisibilityPublic || v == VisibilityTenant
}

// Announcement is a facility notice.
type Announcement struct {
	ID            string     `json:"announcementId"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Severity      Severity   `json:"severity"`
	Visibility    Visibility `json:"visibility"`
	TargetTenants []string   `json:"targetTenants"`
	CreatedBy     string     `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	Pinned        bool       `json:"pinned"`
}

// VisibleTo reports whether a tenant may see the announcement.
func (a *Announcement) VisibleTo(tenantID string) bool {
	if a.Visibility == VisibilityPublic {
		return true
	}
	for _, t := range a.TargetTenants {
		if t == tenantID {
			return true
		}
	}
	return false
}

// Expired reports whether the announcement has passed its expiry.
// Announcements without an expiry never expire.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}

// ErrAnnouncementNotFound is returned when a lookup misses.
var ErrAnnouncementNotFound = errors.New("announcement not found")
