package users_repositories

import (
	"time"

	users_models "flowboard-backend/internal/features/users/models"
	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConfirmationRepository struct{}

func (r *ConfirmationRepository) CreateConfirmation(
	confirmation *users_models.EmailConfirmation,
) error {
	if confirmation.ID == uuid.Nil {
		confirmation.ID = uuid.New()
	}

	if confirmation.CreatedAt.IsZero() {
		confirmation.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(confirmation).Error
}

func (r *ConfirmationRepository) GetConfirmationByCode(
	code string,
) (*users_models.EmailConfirmation, error) {
	var confirmation users_models.EmailConfirmation

	if err := storage.GetDb().
		Where("code = ?", code).
		First(&confirmation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &confirmation, nil
}

func (r *ConfirmationRepository) MarkConfirmationUsed(confirmationID uuid.UUID) error {
	return storage.GetDb().Model(&users_models.EmailConfirmation{}).
		Where("id = ?", confirmationID).
		Update("used_at", time.Now().UTC()).Error
}
