package audit_logs

import (
	users_services "flowboard-backend/internal/features/users/services"
	workspaces_services "flowboard-backend/internal/features/workspaces/services"
)

// SetupDependencies connects the audit log writer to the services that
// emit audit events. Called from main and from test routers.
func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
	workspaces_services.GetWorkspaceService().SetAuditLogWriter(auditLogService)
	workspaces_services.GetInviteService().SetAuditLogWriter(auditLogService)
}
