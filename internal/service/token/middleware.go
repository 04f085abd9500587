package token

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// RoleOf is the single capability-resolution point: every gated route
// consults it instead of repeating membership checks.
func RoleOf(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok && role != "" {
		return role
	}
	return models.RoleNone
}

func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("userID").(uint)
	return id, ok
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(float64); ok {
		c.Set("userID", uint(sub))
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}

// AutoRefresh authenticates the request from its cookies, renewing the
// pair when the access token expired. Unauthenticated requests are
// redirected rather than erred.
func (t *TokenService) AutoRefresh(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, claims, err := t.CheckCookie(c)
		if err != nil {
			return c.Redirect(http.StatusFound, "/")
		}
		if newRefresh != "" {
			c.SetCookie(CreateCookie("accessToken", newAccess, "/", time.Now().Add(AccessTTL)))
			c.SetCookie(CreateCookie("refreshToken", newRefresh, "/", time.Now().Add(RefreshTTL)))
		}
		setUserContext(c, claims)
		return next(c)
	}
}

// RequireRole gates a route group to the given roles. Principals that
// resolve to any other role are sent back to the home page with no
// detail about what was attempted.
func (t *TokenService) RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[RoleOf(c)] {
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}
