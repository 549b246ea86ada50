package workspaces_repositories

import (
	"time"

	workspaces_models "flowboard-backend/internal/features/workspaces/models"
	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InviteRepository struct{}

func (r *InviteRepository) CreateInvite(invite *workspaces_models.WorkspaceInvite) error {
	if invite.ID == uuid.Nil {
		invite.ID = uuid.New()
	}
	if invite.CreatedAt.IsZero() {
		invite.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(invite).Error
}

func (r *InviteRepository) GetInviteByID(id uuid.UUID) (*workspaces_models.WorkspaceInvite, error) {
	var invite workspaces_models.WorkspaceInvite

	if err := storage.GetDb().Where("id = ?", id).First(&invite).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &invite, nil
}

func (r *InviteRepository) GetInviteByCode(
	code string,
) (*workspaces_models.WorkspaceInvite, error) {
	var invite workspaces_models.WorkspaceInvite

	if err := storage.GetDb().Where("code = ?", code).First(&invite).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &invite, nil
}

// GetActiveInvites returns unaccepted, unexpired invites, newest first.
func (r *InviteRepository) GetActiveInvites(
	workspaceID uuid.UUID,
) ([]workspaces_models.WorkspaceInvite, error) {
	var invites []workspaces_models.WorkspaceInvite

	if err := storage.GetDb().
		Where("workspace_id = ? AND accepted_at IS NULL AND expires_at > ?",
			workspaceID, time.Now().UTC()).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}

	return invites, nil
}

func (r *InviteRepository) MarkInviteAccepted(inviteID, userID uuid.UUID) error {
	return storage.GetDb().Model(&workspaces_models.WorkspaceInvite{}).
		Where("id = ?", inviteID).
		Updates(map[string]any{
			"accepted_at": time.Now().UTC(),
			"accepted_by": userID,
		}).Error
}

func (r *InviteRepository) DeleteInvite(id uuid.UUID) error {
	return storage.GetDb().
		Where("id = ?", id).
		Delete(&workspaces_models.WorkspaceInvite{}).Error
}

// DeleteInvitesExpiredBefore purges invites whose expiry passed before the
// given cutoff. Returns the number of rows removed.
func (r *InviteRepository) DeleteInvitesExpiredBefore(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("expires_at < ?", cutoff).
		Delete(&workspaces_models.WorkspaceInvite{})

	return result.RowsAffected, result.Error
}
