package middleware

import (
	"net/http"

	"dealerdesk/internal/permission"

	"github.com/labstack/echo/v4"
)

// RequirePermission gates a route on a capability from the shared
// role-permission matrix. The same matrix backs the capability map served to
// the frontend, so what is enforced is exactly what is displayed.
func RequirePermission(capability permission.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := RoleFromContext(c)
			if !ok || !permission.HasPermission(role, capability) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
