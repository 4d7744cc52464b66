package auth

import (
	"errors"
	"regexp"
	"time"
)

// emailPattern is a pragmatic format check, not full RFC 5322 validation.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// maxEmailLength is the maximum allowed email address length.
const maxEmailLength = 254

// IsValidEmail checks if an email address meets format requirements.
func IsValidEmail(email string) bool {
	return len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// Role represents an authorisation tier within a tenant.
type Role string

const (
	// RoleAdmin manages the tenant's portal presence: full data access,
	// announcement authoring, user management.
	RoleAdmin Role = "admin"

	// RoleUser is a standard tenant operator with read access to the
	// tenant's data.
	RoleUser Role = "user"

	// RoleViewer has read-only access, typically for auditors or
	// contractors.
	RoleViewer Role = "viewer"
)

// ValidRoles is the set of roles a user account may hold.
var ValidRoles = []Role{RoleAdmin, RoleUser, RoleViewer}

// IsValidRole returns true if the role is a recognised user role.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents a tenant user account.
type User struct {
	ID             string       `json:"userId"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"` // never serialised
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	TenantID       string       `json:"tenantId"`
	Role           Role         `json:"role"`
	Permissions    []Permission `json:"permissions"`
	AssignedAssets []string     `json:"assignedAssets"`
	MFAEnabled     bool         `json:"mfaEnabled"`
	IsActive       bool         `json:"-"`
	CreatedAt      time.Time    `json:"-"`
	UpdatedAt      time.Time    `json:"-"`
}

// HasPermission reports whether the user holds the given permission.
// Permissions are explicit per-user grants, not derived from the role
// at check time.
func (u *User) HasPermission(perm Permission) bool {
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// HasAssignedAsset reports whether the asset is in the user's assignment
// list.
func (u *User) HasAssignedAsset(assetID string) bool {
	for _, a := range u.AssignedAssets {
		if a == assetID {
			return true
		}
	}
	return false
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidSession     = errors.New("invalid or unknown mfa session")
	ErrSessionExpired     = errors.New("mfa session has expired")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient permissions")
)
