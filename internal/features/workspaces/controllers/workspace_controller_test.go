package workspaces_controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	users_dto "flowboard-backend/internal/features/users/dto"
	users_enums "flowboard-backend/internal/features/users/enums"
	users_testing "flowboard-backend/internal/features/users/testing"
	workspaces_dto "flowboard-backend/internal/features/workspaces/dto"
	workspaces_testing "flowboard-backend/internal/features/workspaces/testing"
	test_utils "flowboard-backend/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueSlug(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

func Test_CreateWorkspace_OwnerMembershipAndOnboarding(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	slug := uniqueSlug("acme")

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(router, owner, "Acme", slug)

	assert.Equal(t, "Acme", workspace.Name)
	assert.Equal(t, slug, workspace.Slug)
	assert.Equal(t, owner.User.ID, workspace.OwnerID)
	assert.Equal(t, users_enums.WorkspaceRoleOwner, workspace.Role)

	// creating the first workspace completes onboarding
	var currentUser users_dto.CurrentUserResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/users/me", "Bearer "+owner.Token, http.StatusOK, &currentUser,
	)
	assert.True(t, currentUser.OnboardingComplete)
}

func Test_CreateWorkspace_SlugIsNormalized(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	suffix := uuid.NewString()[:8]

	var workspace workspaces_dto.WorkspaceResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t, router, "/api/v1/workspaces", "Bearer "+owner.Token,
		workspaces_dto.CreateWorkspaceRequestDTO{
			Name: "Acme Team",
			Slug: "Acme Team " + suffix,
		},
		http.StatusCreated, &workspace,
	)

	assert.Equal(t, "acme-team-"+suffix, workspace.Slug)
}

func Test_CreateWorkspace_SlugConflict_LeavesNoOrphans(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	first := users_testing.CreateTestUser()
	second := users_testing.CreateTestUser()
	slug := uniqueSlug("taken")

	workspaces_testing.CreateTestWorkspaceViaAPI(router, first, "First", slug)

	resp := test_utils.MakePostRequest(
		t, router, "/api/v1/workspaces", "Bearer "+second.Token,
		workspaces_dto.CreateWorkspaceRequestDTO{Name: "Second", Slug: slug},
		http.StatusConflict,
	)
	assert.Contains(t, string(resp.Body), "a workspace with this slug already exists")

	// the failed creation must not leave the second user with any membership
	var workspaces []workspaces_dto.WorkspaceResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/workspaces", "Bearer "+second.Token, http.StatusOK, &workspaces,
	)
	assert.Empty(t, workspaces)
}

func Test_GetWorkspace_NonMember_Forbidden(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Private", uniqueSlug("private"),
	)

	test_utils.MakeGetRequest(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String(),
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
}

func Test_ListMembers_IncludesProfiles(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUserWithName("Grace Hopper")

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Crew", uniqueSlug("crew"),
	)
	workspaces_testing.AddMemberViaAPI(
		router, owner, workspace.ID, member.User.Email, users_enums.WorkspaceRoleMember,
	)

	var members []workspaces_dto.MemberResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/members",
		"Bearer "+owner.Token,
		http.StatusOK, &members,
	)

	require.Len(t, members, 2)

	byUser := make(map[uuid.UUID]workspaces_dto.MemberResponseDTO, len(members))
	for _, m := range members {
		byUser[m.UserID] = m
	}

	assert.Equal(t, users_enums.WorkspaceRoleOwner, byUser[owner.User.ID].Role)
	assert.Equal(t, users_enums.WorkspaceRoleMember, byUser[member.User.ID].Role)
	require.NotNil(t, byUser[member.User.ID].FullName)
	assert.Equal(t, "Grace Hopper", *byUser[member.User.ID].FullName)
	assert.Equal(t, member.User.Email, byUser[member.User.ID].Email)
}

func Test_AddMember_UnknownEmail_Fails(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Lonely", uniqueSlug("lonely"),
	)

	resp := test_utils.MakePostRequest(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/members",
		"Bearer "+owner.Token,
		workspaces_dto.AddMemberRequestDTO{
			Email: "nobody@test.local",
			Role:  users_enums.WorkspaceRoleMember,
		},
		http.StatusNotFound,
	)
	assert.Contains(t, string(resp.Body), "no account exists for this email")
}

func Test_AddMember_Twice_Conflicts(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Dup", uniqueSlug("dup"),
	)
	workspaces_testing.AddMemberViaAPI(
		router, owner, workspace.ID, member.User.Email, users_enums.WorkspaceRoleMember,
	)

	test_utils.MakePostRequest(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/members",
		"Bearer "+owner.Token,
		workspaces_dto.AddMemberRequestDTO{
			Email: member.User.Email,
			Role:  users_enums.WorkspaceRoleViewer,
		},
		http.StatusConflict,
	)
}

func Test_UpdateMemberRole_OwnerIsImmutable(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Ranks", uniqueSlug("ranks"),
	)
	workspaces_testing.AddMemberViaAPI(
		router, owner, workspace.ID, member.User.Email, users_enums.WorkspaceRoleMember,
	)

	// promoting a regular member works
	test_utils.MakePutRequest(
		t, router,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s/role", workspace.ID, member.User.ID),
		"Bearer "+owner.Token,
		workspaces_dto.UpdateMemberRoleRequestDTO{Role: users_enums.WorkspaceRoleAdmin},
		http.StatusOK,
	)

	// the owner's role can never be changed, not even by the owner
	resp := test_utils.MakePutRequest(
		t, router,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s/role", workspace.ID, owner.User.ID),
		"Bearer "+owner.Token,
		workspaces_dto.UpdateMemberRoleRequestDTO{Role: users_enums.WorkspaceRoleAdmin},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "owner's role cannot be changed")

	// nobody can be promoted to owner
	test_utils.MakePutRequest(
		t, router,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s/role", workspace.ID, member.User.ID),
		"Bearer "+owner.Token,
		workspaces_dto.UpdateMemberRoleRequestDTO{Role: users_enums.WorkspaceRoleOwner},
		http.StatusBadRequest,
	)
}

func Test_UpdateMemberRole_RequiresAdminRank(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	manager := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Strict", uniqueSlug("strict"),
	)
	workspaces_testing.AddMemberViaAPI(
		router, owner, workspace.ID, manager.User.Email, users_enums.WorkspaceRoleManager,
	)
	workspaces_testing.AddMemberViaAPI(
		router, owner, workspace.ID, member.User.Email, users_enums.WorkspaceRoleMember,
	)

	test_utils.MakePutRequest(
		t, router,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s/role", workspace.ID, member.User.ID),
		"Bearer "+manager.Token,
		workspaces_dto.UpdateMemberRoleRequestDTO{Role: users_enums.WorkspaceRoleViewer},
		http.StatusForbidden,
	)
}

func Test_RemoveMember_OwnerCannotBeRemoved(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Stable", uniqueSlug("stable"),
	)
	workspaces_testing.AddMemberViaAPI(
		router, owner, workspace.ID, member.User.Email, users_enums.WorkspaceRoleMember,
	)

	test_utils.MakeDeleteRequest(
		t, router,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s", workspace.ID, owner.User.ID),
		"Bearer "+owner.Token,
		http.StatusBadRequest,
	)

	test_utils.MakeDeleteRequest(
		t, router,
		fmt.Sprintf("/api/v1/workspaces/%s/members/%s", workspace.ID, member.User.ID),
		"Bearer "+owner.Token,
		http.StatusOK,
	)

	var members []workspaces_dto.MemberResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/members",
		"Bearer "+owner.Token,
		http.StatusOK, &members,
	)
	require.Len(t, members, 1)
	assert.Equal(t, owner.User.ID, members[0].UserID)
}

func Test_UpdateWorkspace_SettingsPersist(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Tunable", uniqueSlug("tunable"),
	)

	newName := "Tunable Renamed"
	test_utils.MakePutRequest(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String(),
		"Bearer "+owner.Token,
		workspaces_dto.UpdateWorkspaceRequestDTO{
			Name:     &newName,
			Settings: map[string]any{"theme": "dark", "sprintLengthDays": float64(14)},
		},
		http.StatusOK,
	)

	var updated workspaces_dto.WorkspaceResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		"/api/v1/workspaces/"+workspace.ID.String(),
		"Bearer "+owner.Token,
		http.StatusOK, &updated,
	)

	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "dark", updated.Settings["theme"])
	assert.Equal(t, float64(14), updated.Settings["sprintLengthDays"])
}

func Test_InviteExpiry_MatchesConfiguredWindow(t *testing.T) {
	router := workspaces_testing.CreateTestRouter()
	owner := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI(
		router, owner, "Inviting", uniqueSlug("inviting"),
	)
	invite := workspaces_testing.CreateTestInviteViaAPI(
		router, owner, workspace.ID, users_enums.WorkspaceRoleMember,
	)

	assert.Len(t, invite.Code, 8)
	assert.Regexp(t, "^[A-Za-z0-9]{8}$", invite.Code)
	assert.WithinDuration(
		t,
		time.Now().UTC().Add(7*24*time.Hour),
		invite.ExpiresAt,
		time.Minute,
	)
}
