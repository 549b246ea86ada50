package audit_logs

import (
	"time"

	"flowboard-backend/internal/storage"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

func (r *AuditLogRepository) Save(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}
	if auditLog.CreatedAt.IsZero() {
		auditLog.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(auditLog).Error
}

func (r *AuditLogRepository) FindByWorkspace(
	workspaceID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, int64, error) {
	countQuery := storage.GetDb().Model(&AuditLog{}).
		Where("audit_logs.workspace_id = ?", workspaceID)
	if beforeDate != nil {
		countQuery = countQuery.Where("audit_logs.created_at < ?", *beforeDate)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	selectQuery := storage.GetDb().Model(&AuditLog{}).
		Where("audit_logs.workspace_id = ?", workspaceID)
	if beforeDate != nil {
		selectQuery = selectQuery.Where("audit_logs.created_at < ?", *beforeDate)
	}

	var logs []*AuditLogDTO
	err := selectQuery.
		Select(`audit_logs.id, audit_logs.user_id, audit_logs.workspace_id,
			audit_logs.message, audit_logs.created_at,
			profiles.email AS user_email, profiles.full_name AS user_name,
			workspaces.name AS workspace_name`).
		Joins("LEFT JOIN profiles ON profiles.id = audit_logs.user_id").
		Joins("LEFT JOIN workspaces ON workspaces.id = audit_logs.workspace_id").
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
