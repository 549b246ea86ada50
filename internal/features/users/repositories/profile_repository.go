package users_repositories

import (
	"time"

	users_models "flowboard-backend/internal/features/users/models"
	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository struct{}

func (r *ProfileRepository) CreateProfile(profile *users_models.Profile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	profile.UpdatedAt = profile.CreatedAt

	return storage.GetDb().Create(profile).Error
}

func (r *ProfileRepository) GetProfileByID(userID uuid.UUID) (*users_models.Profile, error) {
	var profile users_models.Profile

	if err := storage.GetDb().Where("id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &profile, nil
}

func (r *ProfileRepository) GetProfileByEmail(email string) (*users_models.Profile, error) {
	var profile users_models.Profile

	if err := storage.GetDb().Where("email = ?", email).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &profile, nil
}

func (r *ProfileRepository) UpdateProfileInfo(
	userID uuid.UUID,
	fullName *string,
	avatarURL *string,
) error {
	updates := map[string]any{
		"updated_at": time.Now().UTC(),
	}

	if fullName != nil {
		updates["full_name"] = *fullName
	}
	if avatarURL != nil {
		updates["avatar_url"] = *avatarURL
	}

	return storage.GetDb().Model(&users_models.Profile{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (r *ProfileRepository) SetOnboardingComplete(userID uuid.UUID) error {
	return storage.GetDb().Model(&users_models.Profile{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"onboarding_complete": true,
			"updated_at":          time.Now().UTC(),
		}).Error
}
