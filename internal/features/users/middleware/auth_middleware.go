package users_middleware

import (
	"net/http"
	"strings"

	users_models "flowboard-backend/internal/features/users/models"
	users_services "flowboard-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

// SessionCookieName carries the session token for page requests; API
// clients send the same token as a bearer header.
const SessionCookieName = "fb_session"

const userContextKey = "currentUser"

func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "User not authenticated"},
			)
			return
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "Invalid or expired session"},
			)
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)
	return user, ok
}

func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := ctx.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}

	return cookie
}
