package users_models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID `json:"id"        gorm:"column:id"`
	Email                string    `json:"email"     gorm:"column:email;uniqueIndex"`
	HashedPassword       *string   `json:"-"         gorm:"column:hashed_password"`
	GoogleOAuthID        *string   `json:"-"         gorm:"column:google_oauth_id"`
	PasswordCreationTime time.Time `json:"-"         gorm:"column:password_creation_time"`
	EmailConfirmed       bool      `json:"-"         gorm:"column:email_confirmed"`
	CreatedAt            time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
