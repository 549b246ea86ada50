package workspaces_models

import (
	"time"

	users_enums "flowboard-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

// WorkspaceMember links a user to a workspace with a role. The composite
// unique index is the source of truth for "already a member": concurrent
// joins race to the insert and the loser reads the winner's row.
type WorkspaceMember struct {
	ID          uuid.UUID                 `json:"id"          gorm:"type:uuid;primaryKey"`
	WorkspaceID uuid.UUID                 `json:"workspaceId" gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user"`
	UserID      uuid.UUID                 `json:"userId"      gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user"`
	Role        users_enums.WorkspaceRole `json:"role"        gorm:"not null"`
	JobTitle    *string                   `json:"jobTitle"`
	JoinedAt    time.Time                 `json:"joinedAt"    gorm:"not null"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_members"
}
