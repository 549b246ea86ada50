package workspaces_controllers

import (
	"net/http"

	users_middleware "flowboard-backend/internal/features/users/middleware"
	workspaces_dto "flowboard-backend/internal/features/workspaces/dto"
	workspaces_services "flowboard-backend/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InviteController struct {
	inviteService *workspaces_services.InviteService
}

func (c *InviteController) RegisterRoutes(router gin.IRoutes) {
	router.POST("/workspaces/:id/invites", c.CreateInvite)
	router.GET("/workspaces/:id/invites", c.ListActiveInvites)
	router.POST("/invites/:code/accept", c.AcceptInvite)
	router.DELETE("/invites/:inviteId", c.DeleteInvite)
}

// RegisterPublicRoutes mounts the invite landing-page lookup, which is
// shown to invitees before they sign in.
func (c *InviteController) RegisterPublicRoutes(router gin.IRoutes) {
	router.GET("/invites/:code", c.GetInviteInfo)
}

// CreateInvite
// @Summary Create an invite link for a workspace
// @Description Requires admin rank; the owner role cannot be granted by invite
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body workspaces_dto.CreateInviteRequestDTO true "Invite options"
// @Success 201 {object} workspaces_dto.InviteResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/invites [post]
func (c *InviteController) CreateInvite(ctx *gin.Context) {
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

	var request workspaces_dto.CreateInviteRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.inviteService.CreateInvite(user, workspaceID, &request)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListActiveInvites
// @Summary List unaccepted, unexpired invites for a workspace
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {array} workspaces_dto.InviteResponseDTO
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/invites [get]
func (c *InviteController) ListActiveInvites(ctx *gin.Context) {
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

	response, err := c.inviteService.ListActiveInvites(user, workspaceID)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetInviteInfo
// @Summary Resolve an invite code into its landing-page view
// @Tags invites
// @Produce json
// @Param code path string true "Invite code"
// @Success 200 {object} workspaces_dto.InviteInfoResponseDTO
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /invites/{code} [get]
func (c *InviteController) GetInviteInfo(ctx *gin.Context) {
	response, err := c.inviteService.GetInviteInfo(ctx.Param("code"))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AcceptInvite
// @Summary Join the invite's workspace
// @Description Accepting while already a member reports alreadyMember instead of failing
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param code path string true "Invite code"
// @Success 200 {object} workspaces_dto.AcceptInviteResponseDTO
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /invites/{code}/accept [post]
func (c *InviteController) AcceptInvite(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.inviteService.AcceptInvite(user, ctx.Param("code"))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteInvite
// @Summary Revoke an invite
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param inviteId path string true "Invite ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /invites/{inviteId} [delete]
func (c *InviteController) DeleteInvite(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	inviteID, err := uuid.Parse(ctx.Param("inviteId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invite ID"})
		return
	}

	if err := c.inviteService.DeleteInvite(user, inviteID); err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invite revoked"})
}
