package workspaces_models

import (
	"time"

	users_enums "flowboard-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// WorkspaceInvite is a single-use invite link. Once accepted or expired
// it is terminal and can never grant membership again.
type WorkspaceInvite struct {
	ID          uuid.UUID                 `json:"id"          gorm:"type:uuid;primaryKey"`
	WorkspaceID uuid.UUID                 `json:"workspaceId" gorm:"type:uuid;not null;index"`
	Email       *string                   `json:"email"`
	Code        string                    `json:"code"        gorm:"uniqueIndex;not null"`
	Role        users_enums.WorkspaceRole `json:"role"        gorm:"not null"`
	CreatedBy   uuid.UUID                 `json:"createdBy"   gorm:"type:uuid;not null"`
	ExpiresAt   time.Time                 `json:"expiresAt"   gorm:"not null"`
	AcceptedAt  *time.Time                `json:"acceptedAt"`
	AcceptedBy  *uuid.UUID                `json:"acceptedBy"  gorm:"type:uuid"`
	CreatedAt   time.Time                 `json:"createdAt"   gorm:"not null"`
}

func (WorkspaceInvite) TableName() string {
	return "workspace_invites"
}

func (i *WorkspaceInvite) IsExpired() bool {
	return time.Now().UTC().After(i.ExpiresAt)
}

func (i *WorkspaceInvite) IsAccepted() bool {
	return i.AcceptedAt != nil
}
