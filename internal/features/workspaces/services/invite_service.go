package workspaces_services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"flowboard-backend/internal/config"
	users_enums "flowboard-backend/internal/features/users/enums"
	users_interfaces "flowboard-backend/internal/features/users/interfaces"
	users_models "flowboard-backend/internal/features/users/models"
	users_repositories "flowboard-backend/internal/features/users/repositories"
	workspaces_dto "flowboard-backend/internal/features/workspaces/dto"
	workspaces_models "flowboard-backend/internal/features/workspaces/models"
	workspaces_repositories "flowboard-backend/internal/features/workspaces/repositories"
	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
)

const inviteCodeLength = 8
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// bounded retry for the unlikely case of a code collision
const inviteCodeAttempts = 3

type InviteService struct {
	inviteRepository     *workspaces_repositories.InviteRepository
	workspaceRepository  *workspaces_repositories.WorkspaceRepository
	membershipRepository *workspaces_repositories.MembershipRepository
	profileRepository    *users_repositories.ProfileRepository
	auditLogWriter       users_interfaces.AuditLogWriter
}

func (s *InviteService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *InviteService) CreateInvite(
	actor *users_models.User,
	workspaceID uuid.UUID,
	request *workspaces_dto.CreateInviteRequestDTO,
) (*workspaces_dto.InviteResponseDTO, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	actorRole, err := s.membershipRepository.GetMemberRole(workspaceID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	if actorRole == nil {
		return nil, ErrNotMember
	}
	if !users_enums.HasPermission(actorRole, users_enums.WorkspaceRoleAdmin) {
		return nil, ErrNotAuthorized
	}

	role := request.Role
	if role == "" {
		role = users_enums.WorkspaceRoleMember
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if role == users_enums.WorkspaceRoleOwner {
		return nil, ErrCannotGrantOwner
	}

	expiresAt := time.Now().UTC().
		Add(time.Duration(config.GetEnv().InviteExpiresDays) * 24 * time.Hour)

	var invite *workspaces_models.WorkspaceInvite
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := generateInviteCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}

		candidate := &workspaces_models.WorkspaceInvite{
			WorkspaceID: workspaceID,
			Email:       request.Email,
			Code:        code,
			Role:        role,
			CreatedBy:   actor.ID,
			ExpiresAt:   expiresAt,
		}

		err = s.inviteRepository.CreateInvite(candidate)
		if err == nil {
			invite = candidate
			break
		}
		if !storage.IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create invite: %w", err)
		}
	}

	if invite == nil {
		return nil, ErrInviteCodeClash
	}

	s.writeAuditLog(
		fmt.Sprintf("Invite created with role %s", role),
		&actor.ID, &workspaceID,
	)

	return toInviteResponse(invite), nil
}

// GetInviteInfo resolves an invite code into the public landing-page view.
// Used invites stay terminal even after their expiry passes, so the
// accepted check comes first.
func (s *InviteService) GetInviteInfo(
	code string,
) (*workspaces_dto.InviteInfoResponseDTO, error) {
	invite, workspace, err := s.resolveInvite(code)
	if err != nil {
		return nil, err
	}

	return &workspaces_dto.InviteInfoResponseDTO{
		Code:          invite.Code,
		Role:          invite.Role,
		WorkspaceName: workspace.Name,
		WorkspaceSlug: workspace.Slug,
		ExpiresAt:     invite.ExpiresAt,
	}, nil
}

// AcceptInvite joins the caller to the invite's workspace. Joining a
// workspace the caller already belongs to is not an error: both the
// up-front membership read and a unique violation on the membership
// insert (a concurrent accept winning the race) report alreadyMember
// instead of failing, and the invite is left untouched for its intended
// recipient.
func (s *InviteService) AcceptInvite(
	user *users_models.User,
	code string,
) (*workspaces_dto.AcceptInviteResponseDTO, error) {
	invite, err := s.inviteRepository.GetInviteByCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite: %w", err)
	}
	if invite == nil {
		return nil, ErrInviteNotFound
	}

	existing, err := s.membershipRepository.GetMembership(invite.WorkspaceID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if invite.IsAccepted() {
		// re-accepting a code the caller already consumed is idempotent,
		// not an error; for anyone else the invite is terminal
		if existing != nil && invite.AcceptedBy != nil && *invite.AcceptedBy == user.ID {
			workspace, err := s.workspaceForInvite(invite)
			if err != nil {
				return nil, err
			}
			return s.alreadyMemberResult(user, workspace, existing.Role)
		}

		return nil, ErrInviteAlreadyUsed
	}
	if invite.IsExpired() {
		return nil, ErrInviteExpired
	}

	workspace, err := s.workspaceForInvite(invite)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return s.alreadyMemberResult(user, workspace, existing.Role)
	}

	member := &workspaces_models.WorkspaceMember{
		WorkspaceID: invite.WorkspaceID,
		UserID:      user.ID,
		Role:        invite.Role,
	}

	if err := s.membershipRepository.CreateMembership(member); err != nil {
		if storage.IsUniqueViolation(err) {
			return s.alreadyMemberResult(user, workspace, invite.Role)
		}

		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	if err := s.inviteRepository.MarkInviteAccepted(invite.ID, user.ID); err != nil {
		return nil, fmt.Errorf("failed to consume invite: %w", err)
	}

	s.completeOnboarding(user.ID)

	s.writeAuditLog(
		fmt.Sprintf("User joined workspace via invite with role %s", invite.Role),
		&user.ID, &invite.WorkspaceID,
	)

	return &workspaces_dto.AcceptInviteResponseDTO{
		WorkspaceID:   workspace.ID,
		WorkspaceSlug: workspace.Slug,
		Role:          invite.Role,
	}, nil
}

func (s *InviteService) ListActiveInvites(
	actor *users_models.User,
	workspaceID uuid.UUID,
) ([]workspaces_dto.InviteResponseDTO, error) {
	actorRole, err := s.membershipRepository.GetMemberRole(workspaceID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	if actorRole == nil {
		return nil, ErrNotMember
	}
	if !users_enums.HasPermission(actorRole, users_enums.WorkspaceRoleAdmin) {
		return nil, ErrNotAuthorized
	}

	invites, err := s.inviteRepository.GetActiveInvites(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invites: %w", err)
	}

	responses := make([]workspaces_dto.InviteResponseDTO, 0, len(invites))
	for i := range invites {
		responses = append(responses, *toInviteResponse(&invites[i]))
	}

	return responses, nil
}

// DeleteInvite revokes an invite regardless of its state.
func (s *InviteService) DeleteInvite(
	actor *users_models.User,
	inviteID uuid.UUID,
) error {
	invite, err := s.inviteRepository.GetInviteByID(inviteID)
	if err != nil {
		return fmt.Errorf("failed to load invite: %w", err)
	}
	if invite == nil {
		return ErrInviteNotFound
	}

	actorRole, err := s.membershipRepository.GetMemberRole(invite.WorkspaceID, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to load membership: %w", err)
	}
	if actorRole == nil {
		return ErrNotMember
	}
	if !users_enums.HasPermission(actorRole, users_enums.WorkspaceRoleAdmin) {
		return ErrNotAuthorized
	}

	if err := s.inviteRepository.DeleteInvite(inviteID); err != nil {
		return fmt.Errorf("failed to delete invite: %w", err)
	}

	s.writeAuditLog("Invite revoked", &actor.ID, &invite.WorkspaceID)

	return nil
}

func (s *InviteService) resolveInvite(
	code string,
) (*workspaces_models.WorkspaceInvite, *workspaces_models.Workspace, error) {
	invite, err := s.inviteRepository.GetInviteByCode(code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up invite: %w", err)
	}
	if invite == nil {
		return nil, nil, ErrInviteNotFound
	}

	if invite.IsAccepted() {
		return nil, nil, ErrInviteAlreadyUsed
	}
	if invite.IsExpired() {
		return nil, nil, ErrInviteExpired
	}

	workspace, err := s.workspaceForInvite(invite)
	if err != nil {
		return nil, nil, err
	}

	return invite, workspace, nil
}

func (s *InviteService) workspaceForInvite(
	invite *workspaces_models.WorkspaceInvite,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(invite.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	return workspace, nil
}

func (s *InviteService) alreadyMemberResult(
	user *users_models.User,
	workspace *workspaces_models.Workspace,
	role users_enums.WorkspaceRole,
) (*workspaces_dto.AcceptInviteResponseDTO, error) {
	s.completeOnboarding(user.ID)

	return &workspaces_dto.AcceptInviteResponseDTO{
		WorkspaceID:   workspace.ID,
		WorkspaceSlug: workspace.Slug,
		Role:          role,
		AlreadyMember: true,
	}, nil
}

func (s *InviteService) completeOnboarding(userID uuid.UUID) {
	if err := s.profileRepository.SetOnboardingComplete(userID); err != nil {
		log.Error("Failed to complete onboarding after invite accept",
			"error", err, "userId", userID)
	}
}

func (s *InviteService) writeAuditLog(message string, userID, workspaceID *uuid.UUID) {
	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(message, userID, workspaceID)
	}
}

func generateInviteCode() (string, error) {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = inviteCodeAlphabet[idx.Int64()]
	}

	return string(code), nil
}

func toInviteResponse(
	invite *workspaces_models.WorkspaceInvite,
) *workspaces_dto.InviteResponseDTO {
	return &workspaces_dto.InviteResponseDTO{
		ID:          invite.ID,
		WorkspaceID: invite.WorkspaceID,
		Code:        invite.Code,
		Role:        invite.Role,
		Email:       invite.Email,
		ExpiresAt:   invite.ExpiresAt,
		CreatedAt:   invite.CreatedAt,
	}
}
