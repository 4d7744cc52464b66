package auth

// Permission represents a named capability in the portal.
type Permission string

// Permission constants.
const (
	PermAccessLogsRead     Permission = "access_logs:read"
	PermAccessLogsExport   Permission = "access_logs:export"
	PermCamerasView        Permission = "cameras:view"
	PermCamerasPTZControl  Permission = "cameras:ptz_control"
	PermEnvironmentalRead  Permission = "environmental:read"
	PermEnvironmentalAlert Permission = "environmental:alerts"
	PermAnnouncementsRead  Permission = "announcements:read"
	PermAnnouncementsWrite Permission = "announcements:create"
	PermUsersManage        Permission = "users:manage"
)

// rolePermissions maps each role to its default permission grant. Used
// when provisioning accounts; the effective permission set lives on the
// user record so individual grants can diverge from the role default.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
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
	RoleUser: {
		PermAccessLogsRead,
		PermCamerasView,
		PermEnvironmentalRead,
		PermAnnouncementsRead,
	},
	RoleViewer: {
		PermAccessLogsRead,
		PermCamerasView,
		PermEnvironmentalRead,
		PermAnnouncementsRead,
	},
}

// DefaultPermissions returns the default permission set granted to a role.
// Returns nil for unknown roles.
func DefaultPermissions(role Role) []Permission {
	perms := rolePermissions[role]
	if perms == nil {
		return nil
	}
	result := make([]Permission, len(perms))
	copy(result, perms)
	return result
}
