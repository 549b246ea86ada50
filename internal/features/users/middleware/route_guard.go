package users_middleware

import (
	"net/http"
	"strings"
	"time"

	users_services "flowboard-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

// Page routes that require an authenticated session. The root path is
// matched exactly; the rest match by prefix.
var protectedRoutes = []string{
	"/", "/board", "/settings", "/projects", "/analytics", "/sprints", "/agents", "/chat",
}

// Routes only for unauthenticated users.
var authRoutes = []string{"/login", "/signup"}

// Routes belonging to the onboarding flow.
var onboardingRoutes = []string{"/onboarding"}

type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteProtected
	RouteAuthOnly
	RouteOnboarding
)

func ClassifyRoute(path string) RouteClass {
	for _, route := range authRoutes {
		if strings.HasPrefix(path, route) {
			return RouteAuthOnly
		}
	}

	for _, route := range onboardingRoutes {
		if strings.HasPrefix(path, route) {
			return RouteOnboarding
		}
	}

	if path == "/" {
		return RouteProtected
	}
	for _, route := range protectedRoutes {
		if route != "/" && strings.HasPrefix(path, route) {
			return RouteProtected
		}
	}

	return RoutePublic
}

// RouteGuard protects the page-serving surface: it resolves the session
// cookie (rotating it when it nears expiry) and applies the redirect rules
// for protected, auth-only and onboarding routes.
func RouteGuard(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		authenticated := resolveSession(ctx, userService)

		switch ClassifyRoute(path) {
		case RouteProtected:
			if !authenticated {
				ctx.Redirect(http.StatusTemporaryRedirect, "/login?redirectTo="+path)
				ctx.Abort()
				return
			}
		case RouteAuthOnly:
			if authenticated {
				ctx.Redirect(http.StatusTemporaryRedirect, "/board")
				ctx.Abort()
				return
			}
		case RouteOnboarding:
			if !authenticated {
				ctx.Redirect(http.StatusTemporaryRedirect, "/login")
				ctx.Abort()
				return
			}
		}

		ctx.Next()
	}
}

// resolveSession validates the session cookie and reports whether the
// caller is authenticated. When the token has less than half of its
// lifetime remaining it is rotated; the fresh cookie must land on BOTH the
// outgoing response and the incoming request, otherwise downstream
// handlers keep reading the stale token and the rotation is lost on the
// next request.
func resolveSession(ctx *gin.Context, userService *users_services.UserService) bool {
	token, err := ctx.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return false
	}

	user, err := userService.GetUserFromToken(token)
	if err != nil {
		return false
	}

	expiry, err := userService.TokenExpiry(token)
	if err != nil {
		return false
	}

	if time.Until(expiry) < userService.SessionTTL()/2 {
		refreshed, err := userService.GenerateAccessToken(user)
		if err == nil {
			SetSessionCookie(ctx, refreshed.Token, userService.SessionTTL())
			replaceRequestCookie(ctx.Request, SessionCookieName, refreshed.Token)
		}
	}

	return true
}

func SetSessionCookie(ctx *gin.Context, token string, ttl time.Duration) {
	ctx.SetCookie(
		SessionCookieName,
		token,
		int(ttl.Seconds()),
		"/",
		"",
		false,
		true,
	)
}

func ClearSessionCookie(ctx *gin.Context) {
	ctx.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

func replaceRequestCookie(req *http.Request, name, value string) {
	cookies := req.Cookies()
	req.Header.Del("Cookie")

	replaced := false
	for _, cookie := range cookies {
		if cookie.Name == name {
			req.AddCookie(&http.Cookie{Name: name, Value: value})
			replaced = true
			continue
		}

		req.AddCookie(cookie)
	}

	if !replaced {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}
