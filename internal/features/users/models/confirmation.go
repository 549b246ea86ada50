package users_models

import (
	"time"

	"github.com/google/uuid"
)

// EmailConfirmation is a one-time code issued at signup when email
// confirmation is required; exchanged for a session via the auth callback.
type EmailConfirmation struct {
	ID        uuid.UUID  `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID  `json:"userId"    gorm:"column:user_id"`
	Code      string     `json:"-"         gorm:"column:code;uniqueIndex"`
	ExpiresAt time.Time  `json:"expiresAt" gorm:"column:expires_at"`
	UsedAt    *time.Time `json:"usedAt"    gorm:"column:used_at"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (EmailConfirmation) TableName() string {
	return "email_confirmations"
}
