package users_controllers

import (
	"net/http"

	users_dto "flowboard-backend/internal/features/users/dto"
	users_middleware "flowboard-backend/internal/features/users/middleware"
	users_services "flowboard-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type UserController struct {
	userService    *users_services.UserService
	profileService *users_services.ProfileService
	authLimiter    *rate.Limiter
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	authRoutes := router.Group("/auth")

	authRoutes.POST("/signup", c.SignUp)
	authRoutes.POST("/signin", c.SignIn)
	authRoutes.POST("/signout", c.SignOut)
	authRoutes.GET("/callback", c.ConfirmationCallback)
	authRoutes.POST("/oauth/google", c.GoogleOAuthCallback)
}

func (c *UserController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.GET("/users/me", c.GetCurrentUser)
}

// SignUp
// @Summary Register a new account
// @Description Create an account and its profile; returns a session token or a pending email-confirmation flag
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.SignUpRequestDTO true "Signup data"
// @Success 200 {object} users_dto.SignUpResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /auth/signup [post]
func (c *UserController) SignUp(ctx *gin.Context) {
	if !c.authLimiter.Allow() {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	var request users_dto.SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.userService.SignUp(&request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if response.Token != "" {
		users_middleware.SetSessionCookie(ctx, response.Token, c.userService.SessionTTL())
	}

	ctx.JSON(http.StatusOK, response)
}

// SignIn
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.SignInRequestDTO true "Credentials"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /auth/signin [post]
func (c *UserController) SignIn(ctx *gin.Context) {
	if !c.authLimiter.Allow() {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}

	var request users_dto.SignInRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.userService.SignIn(&request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users_middleware.SetSessionCookie(ctx, response.Token, c.userService.SessionTTL())
	ctx.JSON(http.StatusOK, response)
}

// SignOut
// @Summary Sign out and clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/signout [post]
func (c *UserController) SignOut(ctx *gin.Context) {
	users_middleware.ClearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// ConfirmationCallback
// @Summary Exchange a one-time confirmation code for a session
// @Description Used by the email-confirmation link after signup
// @Tags auth
// @Produce json
// @Param code query string true "One-time confirmation code"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/callback [get]
func (c *UserController) ConfirmationCallback(ctx *gin.Context) {
	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing confirmation code"})
		return
	}

	response, err := c.userService.ExchangeConfirmationCode(code)
	if err != nil {
		if err.Error() == "confirmation code not found" {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users_middleware.SetSessionCookie(ctx, response.Token, c.userService.SessionTTL())
	ctx.JSON(http.StatusOK, response)
}

// GoogleOAuthCallback
// @Summary Exchange a Google OAuth code for a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.OAuthCallbackRequestDTO true "OAuth code and redirect URI"
// @Success 200 {object} users_dto.OAuthCallbackResponseDTO
// @Failure 400 {object} map[string]string
// @Router /auth/oauth/google [post]
func (c *UserController) GoogleOAuthCallback(ctx *gin.Context) {
	var request users_dto.OAuthCallbackRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.userService.HandleGoogleOAuth(request.Code, request.RedirectURI)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users_middleware.SetSessionCookie(ctx, response.Token, c.userService.SessionTTL())
	ctx.JSON(http.StatusOK, response)
}

// GetCurrentUser
// @Summary Get the current account with its profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.CurrentUserResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.profileService.GetCurrentUser(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
