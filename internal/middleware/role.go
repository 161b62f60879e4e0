package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route group to the given roles. It must run
// after JWTAuth, which stores the authenticated role in the context.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}
