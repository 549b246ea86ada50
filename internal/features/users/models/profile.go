package users_models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the one-to-one companion row of a User. It is normally created
// together with the account at signup; the bootstrap flow re-creates it when
// that automatic path did not run.
type Profile struct {
	ID                 uuid.UUID `json:"id"                 gorm:"column:id;primaryKey"`
	Email              string    `json:"email"              gorm:"column:email"`
	FullName           *string   `json:"fullName"           gorm:"column:full_name"`
	AvatarURL          *string   `json:"avatarUrl"          gorm:"column:avatar_url"`
	OnboardingComplete bool      `json:"onboardingComplete" gorm:"column:onboarding_complete"`
	CreatedAt          time.Time `json:"createdAt"          gorm:"column:created_at"`
	UpdatedAt          time.Time `json:"updatedAt"          gorm:"column:updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
