package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/core/ports"
)

// RequireRole enforces role-based access control. The role is read from the
// credential store on every request, so a demotion takes effect before the
// caller's token expires. Must run after Auth.
func RequireRole(authz ports.Authorizer, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(ContextUserID).(uint)
			if !ok || userID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if err := authz.RequireRole(c.Request().Context(), userID, role); err != nil {
				return err
			}
			return next(c)
		}
	}
}
