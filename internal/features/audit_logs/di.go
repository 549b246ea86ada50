package audit_logs

import (
	workspaces_repositories "flowboard-backend/internal/features/workspaces/repositories"
	"flowboard-backend/internal/util/logger"
)

var log = logger.GetLogger()

var auditLogRepository = &AuditLogRepository{}
var auditLogService = &AuditLogService{auditLogRepository}
var auditLogController = &AuditLogController{
	auditLogService,
	workspaces_repositories.GetMembershipRepository(),
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}
