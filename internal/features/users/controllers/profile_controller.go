package users_controllers

import (
	"net/http"

	users_dto "flowboard-backend/internal/features/users/dto"
	users_middleware "flowboard-backend/internal/features/users/middleware"
	users_services "flowboard-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profileService *users_services.ProfileService
}

func (c *ProfileController) RegisterRoutes(router gin.IRoutes) {
	router.PUT("/users/profile", c.UpdateProfile)
	router.POST("/users/profile/bootstrap", c.BootstrapProfile)
	router.POST("/users/onboarding/complete", c.CompleteOnboarding)
}

// UpdateProfile
// @Summary Update the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdateProfileRequestDTO true "Profile fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.UpdateProfileRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.profileService.UpdateProfile(user, &request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// BootstrapProfile
// @Summary Create the profile row manually when automatic creation failed
// @Description Idempotent: a profile that already exists is reported as success
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.BootstrapProfileRequestDTO true "Profile bootstrap data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/profile/bootstrap [post]
func (c *ProfileController) BootstrapProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.BootstrapProfileRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.profileService.BootstrapProfile(user, request.FullName); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile is ready"})
}

// CompleteOnboarding
// @Summary Mark the current user's onboarding as complete
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/onboarding/complete [post]
func (c *ProfileController) CompleteOnboarding(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := c.profileService.CompleteOnboarding(user); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Onboarding completed"})
}
