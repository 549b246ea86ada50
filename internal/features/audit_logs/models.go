package audit_logs

import (
	"time"

	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	UserID      *uuid.UUID `json:"userId"      gorm:"column:user_id;type:uuid;index"`
	WorkspaceID *uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;type:uuid;index"`
	Message     string     `json:"message"     gorm:"column:message;not null"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at;not null"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func init() {
	storage.RegisterModels(&AuditLog{})
}
