// Package permission holds the role-capability matrix. It is the single
// source of truth for authorization: the route middleware and the capability
// map served to the frontend both read from it, so enforced and displayed
// permissions cannot drift apart.
package permission

import "dealerdesk/internal/entity"

type Capability string

const (
	CanManageUsers Capability = "canManageUsers"
	CanViewUsers   Capability = "canViewUsers"

	CanCreateVehicles Capability = "canCreateVehicles"
	CanEditVehicles   Capability = "canEditVehicles"
	CanDeleteVehicles Capability = "canDeleteVehicles"
	CanViewVehicles   Capability = "canViewVehicles"

	CanCreateSales Capability = "canCreateSales"
	CanViewSales   Capability = "canViewSales"
	CanEditSales   Capability = "canEditSales"

	CanViewDashboard Capability = "canViewDashboard"
	CanViewReports   Capability = "canViewReports"
	CanViewAnalytics Capability = "canViewAnalytics"

	CanManageSettings Capability = "canManageSettings"
)

// Capabilities lists every defined capability in a stable order.
var Capabilities = []Capability{
	CanManageUsers,
	CanViewUsers,
	CanCreateVehicles,
	CanEditVehicles,
	CanDeleteVehicles,
	CanViewVehicles,
	CanCreateSales,
	CanViewSales,
	CanEditSales,
	CanViewDashboard,
	CanViewReports,
	CanViewAnalytics,
	CanManageSettings,
}

var matrix = map[entity.UserRole]map[Capability]bool{
	entity.UserRoleAdmin: {
		CanManageUsers:    true,
		CanViewUsers:      true,
		CanCreateVehicles: true,
		CanEditVehicles:   true,
		CanDeleteVehicles: true,
		CanViewVehicles:   true,
		CanCreateSales:    true,
		CanViewSales:      true,
		CanEditSales:      true,
		CanViewDashboard:  true,
		CanViewReports:    true,
		CanViewAnalytics:  true,
		CanManageSettings: true,
	},
	entity.UserRoleEmployee: {
		CanManageUsers:    false,
		CanViewUsers:      false,
		CanCreateVehicles: true,
		CanEditVehicles:   true,
		CanDeleteVehicles: false,
		CanViewVehicles:   true,
		CanCreateSales:    true,
		CanViewSales:      true,
		CanEditSales:      false,
		CanViewDashboard:  true,
		CanViewReports:    true,
		CanViewAnalytics:  false,
		CanManageSettings: false,
	},
	entity.UserRoleViewer: {
		CanManageUsers:    false,
		CanViewUsers:      false,
		CanCreateVehicles: false,
		CanEditVehicles:   false,
		CanDeleteVehicles: false,
		CanViewVehicles:   true,
		CanCreateSales:    false,
		CanViewSales:      true,
		CanEditSales:      false,
		CanViewDashboard:  true,
		CanViewReports:    false,
		CanViewAnalytics:  false,
		CanManageSettings: false,
	},
}

// HasPermission reports whether the given role holds the capability.
// Unknown roles and unknown capabilities are always denied.
func HasPermission(role entity.UserRole, capability Capability) bool {
	caps, ok := matrix[role]
	if !ok {
		return false
	}
	return caps[capability]
}

// ForRole returns the full capability map for a role, keyed by capability
// name. Unknown roles get an all-false map. The result is a copy; callers
// may not mutate the matrix.
func ForRole(role entity.UserRole) map[Capability]bool {
	result := make(map[Capability]bool, len(Capabilities))
	for _, capability := range Capabilities {
		result[capability] = HasPermission(role, capability)
	}
	return result
}

// RoleLabel returns a human-readable name for a role, for display only.
func RoleLabel(role entity.UserRole) string {
	switch role {
	case entity.UserRoleAdmin:
		return "Administrator"
	case entity.UserRoleEmployee:
		return "Employee"
	case entity.UserRoleViewer:
		return "Viewer"
	}
	return string(role)
}
