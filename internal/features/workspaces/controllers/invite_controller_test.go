package workspaces_controllers_test

import (
	"net/http"
	"testing"
	"time"

	users_dto "flowboard-backend/internal/features/users/dto"
	users_enums "flowboard-backend/internal/features/users/enums"
	users_testing "flowboard-backend/internal/features/users/testing"
	workspaces_dto "flowboard-backend/internal/features/workspaces/dto"
	workspaces_models "flowboard-backend/internal/features/workspaces/models"
	workspaces_repositories "flowboard-backend/internal/features/workspaces/repositories"
	workspaces_testing "flowboard-backend/internal/features/workspaces/testing"
	test_utils "flowboard-backend/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InviteLifecycle_CreateResolveAccept(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Rocket", uniqueSlug("rocket"),
	)
	invite := workspaces_testing.CreateTestInviteViaAPI(
		router, owner, workspace.ID, users_enums.WorkspaceRoleManager,
	)

	// the landing page view shows the workspace before joining
	var info workspaces_dto.InviteInfoResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		"/api/v1/invites/"+invite.Code,
		"Bearer "+invitee.Token,
		http.StatusOK, &info,
	)
	assert.Equal(t, "Rocket", info.WorkspaceName)
	assert.Equal(t, workspace.Slug, info.WorkspaceSlug)
	assert.Equal(t, users_enums.WorkspaceRoleManager, info.Role)

	// resolving works before signing in
	test_utils.MakeGetRequest(
		t, router, "/api/v1/invites/"+invite.Code, "", http.StatusOK,
	)

	var accepted workspaces_dto.AcceptInviteResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t, router,
		"/api/v1/invites/"+invite.Code+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusOK, &accepted,
	)
	assert.Equal(t, workspace.ID, accepted.WorkspaceID)
	assert.Equal(t, workspace.Slug, accepted.WorkspaceSlug)
	assert.Equal(t, users_enums.WorkspaceRoleManager, accepted.Role)
	assert.False(t, accepted.AlreadyMember)

	// joining completes the invitee's onboarding
	var currentUser users_dto.CurrentUserResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/users/me", "Bearer "+invitee.Token, http.StatusOK, &currentUser,
	)
	assert.True(t, currentUser.OnboardingComplete)

	// the workspace now lists the invitee with the invite's role
	var workspaces []workspaces_dto.WorkspaceResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces", "Bearer "+invitee.Token, http.StatusOK, &workspaces,
	)
	require.Len(t, workspaces, 1)
	assert.Equal(t, users_enums.WorkspaceRoleManager, workspaces[0].Role)
}

func Test_AcceptInvite_UsedInviteIsTerminal(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	first := users_testing.CreateTestUser()
	second := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Single Use", uniqueSlug("single-use"),
	)
	invite := workspaces_testing.CreateTestInviteViaAPI(
		router, owner, workspace.ID, users_enums.WorkspaceRoleMember,
	)

	test_utils.MakePostRequest(
		t, router,
		"/api/v1/invites/"+invite.Code+"/accept",
		"Bearer "+first.Token,
		nil,
		http.StatusOK,
	)

	// a consumed invite never grants membership again
	resp := test_utils.MakePostRequest(
		t, router,
		"/api/v1/invites/"+invite.Code+"/accept",
		"Bearer "+second.Token,
		nil,
		http.StatusGone,
	)
	assert.Contains(t, string(resp.Body), "this invite has already been used")

	test_utils.MakeGetRequest(
		t, router,
		"/api/v1/invites/"+invite.Code,
		"Bearer "+second.Token,
		http.StatusGone,
	)
}

func Test_AcceptInvite_Twice_BySameUser_IsIdempotent(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Repeat", uniqueSlug("repeat"),
	)
	invite := workspaces_testing.CreateTestInviteViaAPI(
		router, owner, workspace.ID, users_enums.WorkspaceRoleMember,
	)

	test_utils.MakePostRequest(
		t, router,
		"/api/v1/invites/"+invite.Code+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusOK,
	)

	// re-sending the same accept (a double click, a retried request) must
	// not fail and must not create a second membership row
	var accepted workspaces_dto.AcceptInviteResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t, router,
		"/api/v1/invites/"+invite.Code+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusOK, &accepted,
	)
	assert.True(t, accepted.AlreadyMember)
	assert.Equal(t, workspace.ID, accepted.WorkspaceID)
	assert.Equal(t, users_enums.WorkspaceRoleMember, accepted.Role)

	var members []workspaces_dto.MemberResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/members",
		"Bearer "+owner.Token,
		http.StatusOK, &members,
	)
	assert.Len(t, members, 2)
}

func Test_AcceptInvite_WhileAlreadyMember_ReportsAlreadyMember(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Rejoin", uniqueSlug("rejoin"),
	)
	workspaces_testing.AddMemberViaAPI(
		router, owner, workspace.ID, member.User.Email, users_enums.WorkspaceRoleAdmin,
	)

	invite := workspaces_testing.CreateTestInviteViaAPI(
		router, owner, workspace.ID, users_enums.WorkspaceRoleMember,
	)

	var accepted workspaces_dto.AcceptInviteResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t, router,
		"/api/v1/invites/"+invite.Code+"/accept",
		"Bearer "+member.Token,
		nil,
		http.StatusOK, &accepted,
	)

	assert.True(t, accepted.AlreadyMember)
	assert.Equal(t, workspace.ID, accepted.WorkspaceID)
	// the existing role wins; the invite's role is not applied
	assert.Equal(t, users_enums.WorkspaceRoleAdmin, accepted.Role)

	// the invite was not consumed and still works for its intended recipient
	test_utils.MakeGetRequest(
		t, router,
		"/api/v1/invites/"+invite.Code,
		"Bearer "+member.Token,
		http.StatusOK,
	)
}

func Test_ExpiredInvite_IsGone(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Stale", uniqueSlug("stale"),
	)

	expired := &workspaces_models.WorkspaceInvite{
		WorkspaceID: workspace.ID,
		Code:        uniqueSlug("exp")[:8],
		Role:        users_enums.WorkspaceRoleMember,
		CreatedBy:   owner.User.ID,
		ExpiresAt:   time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(
		t, workspaces_repositories.GetInviteRepository().CreateInvite(expired),
	)

	resp := test_utils.MakeGetRequest(
		t, router,
		"/api/v1/invites/"+expired.Code,
		"Bearer "+invitee.Token,
		http.StatusGone,
	)
	assert.Contains(t, string(resp.Body), "this invite has expired")

	test_utils.MakePostRequest(
		t, router,
		"/api/v1/invites/"+expired.Code+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusGone,
	)
}

func Test_UnknownInviteCode_NotFound(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	user := users_testing.CreateTestUser()

	test_utils.MakeGetRequest(
		t, router, "/api/v1/invites/XXXXXXXX", "Bearer "+user.Token, http.StatusNotFound,
	)
}

func Test_CreateInvite_DefaultsToMemberRole(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Defaults", uniqueSlug("defaults"),
	)

	var invite workspaces_dto.InviteResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/invites",
		"Bearer "+owner.Token,
		workspaces_dto.CreateInviteRequestDTO{},
		http.StatusCreated, &invite,
	)

	assert.Equal(t, users_enums.WorkspaceRoleMember, invite.Role)
}

func Test_CreateInvite_OwnerRoleRejected(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "No Owners", uniqueSlug("no-owners"),
	)

	test_utils.MakePostRequest(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/invites",
		"Bearer "+owner.Token,
		workspaces_dto.CreateInviteRequestDTO{Role: users_enums.WorkspaceRoleOwner},
		http.StatusBadRequest,
	)
}

func Test_CreateInvite_RequiresAdminRank(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	manager := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Locked", uniqueSlug("locked"),
	)
	workspaces_testing.AddMemberViaAPI(
		router, owner, workspace.ID, manager.User.Email, users_enums.WorkspaceRoleManager,
	)

	test_utils.MakePostRequest(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/invites",
		"Bearer "+manager.Token,
		workspaces_dto.CreateInviteRequestDTO{Role: users_enums.WorkspaceRoleMember},
		http.StatusForbidden,
	)
}

func Test_ListActiveInvites_NewestFirstAndExcludesUsed(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Queue", uniqueSlug("queue"),
	)

	first := workspaces_testing.CreateTestInviteViaAPI(
		router, owner, workspace.ID, users_enums.WorkspaceRoleMember,
	)
	time.Sleep(10 * time.Millisecond)
	second := workspaces_testing.CreateTestInviteViaAPI(
		router, owner, workspace.ID, users_enums.WorkspaceRoleViewer,
	)

	var invites []workspaces_dto.InviteResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/invites",
		"Bearer "+owner.Token,
		http.StatusOK, &invites,
	)
	require.Len(t, invites, 2)
	assert.Equal(t, second.ID, invites[0].ID)
	assert.Equal(t, first.ID, invites[1].ID)

	// accepting removes the invite from the active list
	test_utils.MakePostRequest(
		t, router,
		"/api/v1/invites/"+first.Code+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusOK,
	)

	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/invites",
		"Bearer "+owner.Token,
		http.StatusOK, &invites,
	)
	require.Len(t, invites, 1)
	assert.Equal(t, second.ID, invites[0].ID)
}

func Test_DeleteInvite_RevokesIt(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Revoked", uniqueSlug("revoked"),
	)
	invite := workspaces_testing.CreateTestInviteViaAPI(
		router, owner, workspace.ID, users_enums.WorkspaceRoleMember,
	)

	test_utils.MakeDeleteRequest(
		t, router,
		"/api/v1/invites/"+invite.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t, router,
		"/api/v1/invites/"+invite.Code,
		"Bearer "+invitee.Token,
		http.StatusNotFound,
	)
}
