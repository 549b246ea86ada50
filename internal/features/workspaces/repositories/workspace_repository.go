package workspaces_repositories

import (
	"time"

	workspaces_models "flowboard-backend/internal/features/workspaces/models"
	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct{}

func (r *WorkspaceRepository) CreateWorkspace(workspace *workspaces_models.Workspace) error {
	if workspace.ID == uuid.Nil {
		workspace.ID = uuid.New()
	}
	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = time.Now().UTC()
	}
	workspace.UpdatedAt = workspace.CreatedAt

	return storage.GetDb().Create(workspace).Error
}

func (r *WorkspaceRepository) GetWorkspaceByID(id uuid.UUID) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := storage.GetDb().Where("id = ?", id).First(&workspace).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) GetWorkspaceBySlug(slug string) (*workspaces_models.Workspace, error) {
	var workspace workspaces_models.Workspace

	if err := storage.GetDb().Where("slug = ?", slug).First(&workspace).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &workspace, nil
}

func (r *WorkspaceRepository) GetWorkspacesByIDs(
	ids []uuid.UUID,
) ([]workspaces_models.Workspace, error) {
	var workspaces []workspaces_models.Workspace

	if len(ids) == 0 {
		return workspaces, nil
	}

	if err := storage.GetDb().
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&workspaces).Error; err != nil {
		return nil, err
	}

	return workspaces, nil
}

func (r *WorkspaceRepository) UpdateWorkspace(
	id uuid.UUID,
	name *string,
	settings map[string]any,
) error {
	updates := map[string]any{
		"updated_at": time.Now().UTC(),
	}

	if name != nil {
		updates["name"] = *name
	}
	if settings != nil {
		updates["settings"] = settings
	}

	return storage.GetDb().Model(&workspaces_models.Workspace{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *WorkspaceRepository) DeleteWorkspace(id uuid.UUID) error {
	return storage.GetDb().Where("id = ?", id).Delete(&workspaces_models.Workspace{}).Error
}
