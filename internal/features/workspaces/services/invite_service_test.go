package workspaces_services

import (
	"testing"
	"time"

	users_enums "flowboard-backend/internal/features/users/enums"
	users_testing "flowboard-backend/internal/features/users/testing"
	workspaces_dto "flowboard-backend/internal/features/workspaces/dto"
	workspaces_models "flowboard-backend/internal/features/workspaces/models"
	workspaces_repositories "flowboard-backend/internal/features/workspaces/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GenerateInviteCode_LengthAndAlphabet(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := generateInviteCode()
		require.NoError(t, err)

		assert.Len(t, code, inviteCodeLength)
		assert.Regexp(t, "^[A-Za-z0-9]+$", code)

		seen[code] = true
	}

	// 100 draws from a 62^8 space must not collide
	assert.Len(t, seen, 100)
}

func Test_InviteCleanup_PurgesOnlyLongExpiredInvites(t *testing.T) {
	owner := users_testing.CreateTestUser()
	workspaceService := GetWorkspaceService()
	inviteRepository := workspaces_repositories.GetInviteRepository()

	workspace, err := workspaceService.CreateWorkspace(
		owner.User,
		&workspaces_dto.CreateWorkspaceRequestDTO{
			Name: "Cleanup",
			Slug: "cleanup-" + owner.User.ID.String()[:8],
		},
	)
	require.NoError(t, err)

	longExpired := &workspaces_models.WorkspaceInvite{
		WorkspaceID: workspace.ID,
		Code:        "OLDOLD" + owner.User.ID.String()[:2],
		Role:        users_enums.WorkspaceRoleMember,
		CreatedBy:   owner.User.ID,
		ExpiresAt:   time.Now().UTC().Add(-31 * 24 * time.Hour),
	}
	require.NoError(t, inviteRepository.CreateInvite(longExpired))

	recentlyExpired := &workspaces_models.WorkspaceInvite{
		WorkspaceID: workspace.ID,
		Code:        "NEWNEW" + owner.User.ID.String()[:2],
		Role:        users_enums.WorkspaceRoleMember,
		CreatedBy:   owner.User.ID,
		ExpiresAt:   time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, inviteRepository.CreateInvite(recentlyExpired))

	GetInviteCleanupService().RunCleanup()

	gone, err := inviteRepository.GetInviteByID(longExpired.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "invites expired for over a month must be purged")

	kept, err := inviteRepository.GetInviteByID(recentlyExpired.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept, "recently expired invites stay for the landing page")
}
