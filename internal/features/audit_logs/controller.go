package audit_logs

import (
	"net/http"

	users_enums "flowboard-backend/internal/features/users/enums"
	users_middleware "flowboard-backend/internal/features/users/middleware"
	workspaces_repositories "flowboard-backend/internal/features/workspaces/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditLogController struct {
	auditLogService      *AuditLogService
	membershipRepository *workspaces_repositories.MembershipRepository
}

func (c *AuditLogController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/workspaces/:id/audit-logs", c.GetWorkspaceAuditLogs)
}

// GetWorkspaceAuditLogs
// @Summary Get audit logs for a workspace
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param beforeDate query string false "Only logs created before this time"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/audit-logs [get]
func (c *AuditLogController) GetWorkspaceAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	role, err := c.membershipRepository.GetMemberRole(workspaceID, user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}
	if !users_enums.HasPermission(role, users_enums.WorkspaceRoleAdmin) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error": "you do not have permission to perform this action",
		})
		return
	}

	var request GetAuditLogsRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.auditLogService.GetWorkspaceAuditLogs(workspaceID, &request)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit logs"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
