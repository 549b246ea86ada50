package users_enums

type WorkspaceRole string

const (
	WorkspaceRoleOwner   WorkspaceRole = "owner"
	WorkspaceRoleAdmin   WorkspaceRole = "admin"
	WorkspaceRoleManager WorkspaceRole = "manager"
	WorkspaceRoleMember  WorkspaceRole = "member"
	WorkspaceRoleViewer  WorkspaceRole = "viewer"
)

// roleRanks is the total order used for all authorization comparisons
var roleRanks = map[WorkspaceRole]int{
	WorkspaceRoleOwner:   5,
	WorkspaceRoleAdmin:   4,
	WorkspaceRoleManager: 3,
	WorkspaceRoleMember:  2,
	WorkspaceRoleViewer:  1,
}

// IsValid validates the WorkspaceRole
func (r WorkspaceRole) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the role's position in the hierarchy; unknown roles rank 0
func (r WorkspaceRole) Rank() int {
	return roleRanks[r]
}

// HasPermission reports whether a possibly absent role meets the required
// role. A nil role (non-member or unauthenticated) never has permission.
func HasPermission(role *WorkspaceRole, required WorkspaceRole) bool {
	if role == nil {
		return false
	}

	return role.Rank() >= required.Rank()
}

func (r WorkspaceRole) DisplayName() string {
	switch r {
	case WorkspaceRoleOwner:
		return "Owner"
	case WorkspaceRoleAdmin:
		return "Admin"
	case WorkspaceRoleManager:
		return "Manager"
	case WorkspaceRoleMember:
		return "Member"
	case WorkspaceRoleViewer:
		return "Viewer"
	default:
		return string(r)
	}
}
