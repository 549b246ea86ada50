package workspaces_dto

import (
	"time"

	users_enums "flowboard-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateWorkspaceRequestDTO struct {
	Name     string  `json:"name"     binding:"required,min=2"`
	Slug     string  `json:"slug"     binding:"required"`
	JobTitle *string `json:"jobTitle"`
}

type WorkspaceResponseDTO struct {
	ID        uuid.UUID                 `json:"id"`
	Name      string                    `json:"name"`
	Slug      string                    `json:"slug"`
	OwnerID   uuid.UUID                 `json:"ownerId"`
	Settings  map[string]any            `json:"settings"`
	Role      users_enums.WorkspaceRole `json:"role"`
	CreatedAt time.Time                 `json:"createdAt"`
}

type UpdateWorkspaceRequestDTO struct {
	Name     *string        `json:"name"     binding:"omitempty,min=2"`
	Settings map[string]any `json:"settings"`
}

type MemberResponseDTO struct {
	UserID   uuid.UUID                 `json:"userId"`
	Email    string                    `json:"email"`
	FullName *string                   `json:"fullName"`
	Role     users_enums.WorkspaceRole `json:"role"`
	JobTitle *string                   `json:"jobTitle"`
	JoinedAt time.Time                 `json:"joinedAt"`
}

type AddMemberRequestDTO struct {
	Email string                    `json:"email" binding:"required,email"`
	Role  users_enums.WorkspaceRole `json:"role"  binding:"required"`
}

type UpdateMemberRoleRequestDTO struct {
	Role users_enums.WorkspaceRole `json:"role" binding:"required"`
}

type CreateInviteRequestDTO struct {
	Role  users_enums.WorkspaceRole `json:"role"`
	Email *string                   `json:"email" binding:"omitempty,email"`
}

type InviteResponseDTO struct {
	ID          uuid.UUID                 `json:"id"`
	WorkspaceID uuid.UUID                 `json:"workspaceId"`
	Code        string                    `json:"code"`
	Role        users_enums.WorkspaceRole `json:"role"`
	Email       *string                   `json:"email"`
	ExpiresAt   time.Time                 `json:"expiresAt"`
	CreatedAt   time.Time                 `json:"createdAt"`
}

// InviteInfoResponseDTO is the public view shown on the invite landing
// page before the caller decides to accept.
type InviteInfoResponseDTO struct {
	Code          string                    `json:"code"`
	Role          users_enums.WorkspaceRole `json:"role"`
	WorkspaceName string                    `json:"workspaceName"`
	WorkspaceSlug string                    `json:"workspaceSlug"`
	ExpiresAt     time.Time                 `json:"expiresAt"`
}

type AcceptInviteResponseDTO struct {
	WorkspaceID   uuid.UUID                 `json:"workspaceId"`
	WorkspaceSlug string                    `json:"workspaceSlug"`
	Role          users_enums.WorkspaceRole `json:"role"`
	AlreadyMember bool                      `json:"alreadyMember"`
}
