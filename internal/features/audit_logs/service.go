package audit_logs

import (
	"github.com/google/uuid"
)

const defaultLimit = 50
const maxLimit = 200

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
}

// WriteAuditLog records a log line. Failures are logged and swallowed so
// audit logging never breaks the operation being recorded.
func (s *AuditLogService) WriteAuditLog(message string, userID, workspaceID *uuid.UUID) {
	auditLog := &AuditLog{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
	}

	if err := s.auditLogRepository.Save(auditLog); err != nil {
		log.Error("Failed to write audit log", "error", err, "message", message)
	}
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	logs, total, err := s.auditLogRepository.FindByWorkspace(
		workspaceID, limit, offset, request.BeforeDate,
	)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: logs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}
