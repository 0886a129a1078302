package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// RBAC admits requests whose role, set by Auth, is one of roles. A request
// that reaches it without a role was never authenticated and gets a 401.
func RBAC(roles ...string) echo.MiddlewareFunc {
	roles = slices.Clone(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}
			if !slices.Contains(roles, role) {
				return domain.AccessDenied(role, roles)
			}
			return next(c)
		}
	}
}
