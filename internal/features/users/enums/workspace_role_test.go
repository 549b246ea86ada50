package users_enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_WorkspaceRole_RankOrder(t *testing.T) {
	assert.Greater(t, WorkspaceRoleOwner.Rank(), WorkspaceRoleAdmin.Rank())
	assert.Greater(t, WorkspaceRoleAdmin.Rank(), WorkspaceRoleManager.Rank())
	assert.Greater(t, WorkspaceRoleManager.Rank(), WorkspaceRoleMember.Rank())
	assert.Greater(t, WorkspaceRoleMember.Rank(), WorkspaceRoleViewer.Rank())
	assert.Greater(t, WorkspaceRoleViewer.Rank(), 0)
}

func Test_WorkspaceRole_IsValid(t *testing.T) {
	for _, role := range []WorkspaceRole{
		WorkspaceRoleOwner,
		WorkspaceRoleAdmin,
		WorkspaceRoleManager,
		WorkspaceRoleMember,
		WorkspaceRoleViewer,
	} {
		assert.True(t, role.IsValid(), "expected %s to be valid", role)
	}

	assert.False(t, WorkspaceRole("superadmin").IsValid())
	assert.False(t, WorkspaceRole("").IsValid())
	assert.False(t, WorkspaceRole("Owner").IsValid(), "role tags are lowercase")
}

func Test_HasPermission(t *testing.T) {
	owner := WorkspaceRoleOwner
	admin := WorkspaceRoleAdmin
	member := WorkspaceRoleMember
	viewer := WorkspaceRoleViewer

	tests := []struct {
		name     string
		role     *WorkspaceRole
		required WorkspaceRole
		expected bool
	}{
		{"nil role never has permission", nil, WorkspaceRoleViewer, false},
		{"owner meets every requirement", &owner, WorkspaceRoleOwner, true},
		{"admin meets admin requirement", &admin, WorkspaceRoleAdmin, true},
		{"admin does not meet owner requirement", &admin, WorkspaceRoleOwner, false},
		{"member meets viewer requirement", &member, WorkspaceRoleViewer, true},
		{"viewer does not meet member requirement", &viewer, WorkspaceRoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasPermission(tt.role, tt.required))
		})
	}
}
