package workspaces_services

import (
	"fmt"
	"regexp"
	"strings"

	users_enums "flowboard-backend/internal/features/users/enums"
	users_interfaces "flowboard-backend/internal/features/users/interfaces"
	users_models "flowboard-backend/internal/features/users/models"
	users_repositories "flowboard-backend/internal/features/users/repositories"
	workspaces_dto "flowboard-backend/internal/features/workspaces/dto"
	workspaces_models "flowboard-backend/internal/features/workspaces/models"
	workspaces_repositories "flowboard-backend/internal/features/workspaces/repositories"
	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{2,}$`)

type WorkspaceService struct {
	workspaceRepository  *workspaces_repositories.WorkspaceRepository
	membershipRepository *workspaces_repositories.MembershipRepository
	userRepository       *users_repositories.UserRepository
	profileRepository    *users_repositories.ProfileRepository
	auditLogWriter       users_interfaces.AuditLogWriter
}

func (s *WorkspaceService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

// CreateWorkspace creates the workspace and its owner membership. There is
// no cross-table transaction here: if the membership insert fails the
// workspace row is deleted again so no workspace is left without an owner.
func (s *WorkspaceService) CreateWorkspace(
	user *users_models.User,
	request *workspaces_dto.CreateWorkspaceRequestDTO,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if len(name) < 2 {
		return nil, fmt.Errorf("workspace name must be at least 2 characters")
	}

	normalizedSlug := slug.Make(request.Slug)
	if !slugPattern.MatchString(normalizedSlug) {
		return nil, ErrSlugInvalid
	}

	workspace := &workspaces_models.Workspace{
		ID:       uuid.New(),
		Name:     name,
		Slug:     normalizedSlug,
		OwnerID:  user.ID,
		Settings: map[string]any{},
	}

	if err := s.workspaceRepository.CreateWorkspace(workspace); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}

		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	member := &workspaces_models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      user.ID,
		Role:        users_enums.WorkspaceRoleOwner,
		JobTitle:    request.JobTitle,
	}

	if err := s.membershipRepository.CreateMembership(member); err != nil {
		if deleteErr := s.workspaceRepository.DeleteWorkspace(workspace.ID); deleteErr != nil {
			log.Error("Failed to roll back workspace after membership failure",
				"error", deleteErr, "workspaceId", workspace.ID)
		}

		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	if err := s.profileRepository.SetOnboardingComplete(user.ID); err != nil {
		log.Error("Failed to complete onboarding after workspace creation",
			"error", err, "userId", user.ID)
	}

	s.writeAuditLog(
		fmt.Sprintf("Workspace %q created", workspace.Name),
		&user.ID, &workspace.ID,
	)

	return toWorkspaceResponse(workspace, users_enums.WorkspaceRoleOwner), nil
}

func (s *WorkspaceService) ListWorkspaces(
	user *users_models.User,
) ([]workspaces_dto.WorkspaceResponseDTO, error) {
	memberships, err := s.membershipRepository.GetMembershipsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(memberships))
	roles := make(map[uuid.UUID]users_enums.WorkspaceRole, len(memberships))
	for _, membership := range memberships {
		ids = append(ids, membership.WorkspaceID)
		roles[membership.WorkspaceID] = membership.Role
	}

	workspaces, err := s.workspaceRepository.GetWorkspacesByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspaces: %w", err)
	}

	responses := make([]workspaces_dto.WorkspaceResponseDTO, 0, len(workspaces))
	for i := range workspaces {
		responses = append(responses, *toWorkspaceResponse(&workspaces[i], roles[workspaces[i].ID]))
	}

	return responses, nil
}

func (s *WorkspaceService) GetWorkspace(
	user *users_models.User,
	workspaceID uuid.UUID,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	workspace, role, err := s.requireMembership(user, workspaceID)
	if err != nil {
		return nil, err
	}

	return toWorkspaceResponse(workspace, *role), nil
}

func (s *WorkspaceService) UpdateWorkspace(
	user *users_models.User,
	workspaceID uuid.UUID,
	request *workspaces_dto.UpdateWorkspaceRequestDTO,
) error {
	_, role, err := s.requireMembership(user, workspaceID)
	if err != nil {
		return err
	}

	if !users_enums.HasPermission(role, users_enums.WorkspaceRoleAdmin) {
		return ErrNotAuthorized
	}

	if err := s.workspaceRepository.UpdateWorkspace(
		workspaceID, request.Name, request.Settings,
	); err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}

	s.writeAuditLog("Workspace settings updated", &user.ID, &workspaceID)

	return nil
}

func (s *WorkspaceService) ListMembers(
	user *users_models.User,
	workspaceID uuid.UUID,
) ([]workspaces_dto.MemberResponseDTO, error) {
	if _, _, err := s.requireMembership(user, workspaceID); err != nil {
		return nil, err
	}

	members, err := s.membershipRepository.GetMembershipsByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	responses := make([]workspaces_dto.MemberResponseDTO, 0, len(members))
	for _, member := range members {
		response := workspaces_dto.MemberResponseDTO{
			UserID:   member.UserID,
			Role:     member.Role,
			JobTitle: member.JobTitle,
			JoinedAt: member.JoinedAt,
		}

		profile, err := s.profileRepository.GetProfileByID(member.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load member profile: %w", err)
		}
		if profile != nil {
			response.Email = profile.Email
			response.FullName = profile.FullName
		}

		responses = append(responses, response)
	}

	return responses, nil
}

// AddMemberByEmail adds a user with an existing account directly, without
// an invite. The actor needs admin rank.
func (s *WorkspaceService) AddMemberByEmail(
	actor *users_models.User,
	workspaceID uuid.UUID,
	request *workspaces_dto.AddMemberRequestDTO,
) error {
	_, actorRole, err := s.requireMembership(actor, workspaceID)
	if err != nil {
		return err
	}

	if !users_enums.HasPermission(actorRole, users_enums.WorkspaceRoleAdmin) {
		return ErrNotAuthorized
	}

	if !request.Role.IsValid() {
		return ErrInvalidRole
	}
	if request.Role == users_enums.WorkspaceRoleOwner {
		return ErrCannotGrantOwner
	}

	target, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	member := &workspaces_models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      target.ID,
		Role:        request.Role,
	}

	if err := s.membershipRepository.CreateMembership(member); err != nil {
		if storage.IsUniqueViolation(err) {
			return ErrAlreadyMember
		}

		return fmt.Errorf("failed to add member: %w", err)
	}

	s.writeAuditLog(
		fmt.Sprintf("Member %s added with role %s", request.Email, request.Role),
		&actor.ID, &workspaceID,
	)

	return nil
}

func (s *WorkspaceService) UpdateMemberRole(
	actor *users_models.User,
	workspaceID, targetUserID uuid.UUID,
	role users_enums.WorkspaceRole,
) error {
	_, actorRole, err := s.requireMembership(actor, workspaceID)
	if err != nil {
		return err
	}

	if !users_enums.HasPermission(actorRole, users_enums.WorkspaceRoleAdmin) {
		return ErrNotAuthorized
	}

	if !role.IsValid() {
		return ErrInvalidRole
	}
	if role == users_enums.WorkspaceRoleOwner {
		return ErrCannotGrantOwner
	}

	target, err := s.membershipRepository.GetMembership(workspaceID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to load member: %w", err)
	}
	if target == nil {
		return ErrNotMember
	}

	// the owner keeps the owner role for the lifetime of the workspace
	if target.Role == users_enums.WorkspaceRoleOwner {
		return ErrOwnerRoleImmutable
	}

	if err := s.membershipRepository.UpdateMemberRole(workspaceID, targetUserID, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	s.writeAuditLog(
		fmt.Sprintf("Member %s role changed to %s", targetUserID, role),
		&actor.ID, &workspaceID,
	)

	return nil
}

func (s *WorkspaceService) RemoveMember(
	actor *users_models.User,
	workspaceID, targetUserID uuid.UUID,
) error {
	_, actorRole, err := s.requireMembership(actor, workspaceID)
	if err != nil {
		return err
	}

	if !users_enums.HasPermission(actorRole, users_enums.WorkspaceRoleAdmin) {
		return ErrNotAuthorized
	}

	target, err := s.membershipRepository.GetMembership(workspaceID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to load member: %w", err)
	}
	if target == nil {
		return ErrNotMember
	}

	if target.Role == users_enums.WorkspaceRoleOwner {
		return ErrCannotRemoveOwner
	}

	if err := s.membershipRepository.DeleteMembership(workspaceID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.writeAuditLog(
		fmt.Sprintf("Member %s removed", targetUserID),
		&actor.ID, &workspaceID,
	)

	return nil
}

// requireMembership loads the workspace and the caller's role in it,
// failing with the appropriate sentinel when either is missing.
func (s *WorkspaceService) requireMembership(
	user *users_models.User,
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, *users_enums.WorkspaceRole, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	if workspace == nil {
		return nil, nil, ErrWorkspaceNotFound
	}

	role, err := s.membershipRepository.GetMemberRole(workspaceID, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load membership: %w", err)
	}
	if role == nil {
		return nil, nil, ErrNotMember
	}

	return workspace, role, nil
}

func (s *WorkspaceService) writeAuditLog(message string, userID, workspaceID *uuid.UUID) {
	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(message, userID, workspaceID)
	}
}

func toWorkspaceResponse(
	workspace *workspaces_models.Workspace,
	role users_enums.WorkspaceRole,
) *workspaces_dto.WorkspaceResponseDTO {
	return &workspaces_dto.WorkspaceResponseDTO{
		ID:        workspace.ID,
		Name:      workspace.Name,
		Slug:      workspace.Slug,
		OwnerID:   workspace.OwnerID,
		Settings:  workspace.Settings,
		Role:      role,
		CreatedAt: workspace.CreatedAt,
	}
}
