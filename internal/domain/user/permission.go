package user

type Permission string

const (
	// List views
	PermissionSelectionUse Permission = "selection.use"

	// Bulk actions
	PermissionBulkManage  Permission = "bulk.manage"  // delete, archive, unarchive
	PermissionBulkApprove Permission = "bulk.approve" // approve, reject
	PermissionBulkExport  Permission = "bulk.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionSelectionUse,
		PermissionBulkManage,
		PermissionBulkApprove,
		PermissionBulkExport,
	},
	RoleManager: {
		PermissionSelectionUse,
		PermissionBulkApprove,
		PermissionBulkExport,
	},
	RoleEmployee: {
		PermissionSelectionUse,
		PermissionBulkExport,
	},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// Can reports whether the principal's role grants permission.
func (p Principal) Can(permission Permission) bool {
	return HasPermission(p.Role, permission)
}
