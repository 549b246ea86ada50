package users_dto

import (
	"time"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required,min=2"`
}

type SignUpResponseDTO struct {
	// set when signup issued a confirmation code instead of a session
	EmailConfirmation bool `json:"emailConfirmation"`

	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token,omitempty"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type OAuthCallbackRequestDTO struct {
	Code        string `json:"code"        binding:"required"`
	RedirectURI string `json:"redirectUri" binding:"required"`
}

type OAuthCallbackResponseDTO struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	IsNewUser bool      `json:"isNewUser"`
}

type UpdateProfileRequestDTO struct {
	FullName  *string `json:"fullName"  binding:"omitempty,min=2"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

type BootstrapProfileRequestDTO struct {
	FullName string `json:"fullName" binding:"required,min=2"`
}

type CurrentUserResponseDTO struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           *string   `json:"fullName"`
	AvatarURL          *string   `json:"avatarUrl"`
	OnboardingComplete bool      `json:"onboardingComplete"`
	CreatedAt          time.Time `json:"createdAt"`
}
