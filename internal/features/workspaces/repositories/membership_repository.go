package workspaces_repositories

import (
	"time"

	users_enums "flowboard-backend/internal/features/users/enums"
	workspaces_models "flowboard-backend/internal/features/workspaces/models"
	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(member *workspaces_models.WorkspaceMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(member).Error
}

func (r *MembershipRepository) GetMembership(
	workspaceID, userID uuid.UUID,
) (*workspaces_models.WorkspaceMember, error) {
	var member workspaces_models.WorkspaceMember

	err := storage.GetDb().
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &member, nil
}

// GetMemberRole returns the caller's role in a workspace, or nil when the
// caller is not a member.
func (r *MembershipRepository) GetMemberRole(
	workspaceID, userID uuid.UUID,
) (*users_enums.WorkspaceRole, error) {
	member, err := r.GetMembership(workspaceID, userID)
	if err != nil {
		return nil, err
	}

	if member == nil {
		return nil, nil
	}

	return &member.Role, nil
}

func (r *MembershipRepository) GetMembershipsByUser(
	userID uuid.UUID,
) ([]workspaces_models.WorkspaceMember, error) {
	var members []workspaces_models.WorkspaceMember

	if err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

func (r *MembershipRepository) GetMembershipsByWorkspace(
	workspaceID uuid.UUID,
) ([]workspaces_models.WorkspaceMember, error) {
	var members []workspaces_models.WorkspaceMember

	if err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

func (r *MembershipRepository) UpdateMemberRole(
	workspaceID, userID uuid.UUID,
	role users_enums.WorkspaceRole,
) error {
	return storage.GetDb().Model(&workspaces_models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Update("role", role).Error
}

func (r *MembershipRepository) DeleteMembership(workspaceID, userID uuid.UUID) error {
	return storage.GetDb().
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&workspaces_models.WorkspaceMember{}).Error
}
