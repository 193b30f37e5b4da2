package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/account-service/internal/core/ports"
)

// SuperAdmin admits requests whose Authorization header carries the
// super-admin secret verbatim. It is independent of bearer tokens.
func SuperAdmin(verifier ports.SecretVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := verifier.Verify(c.Request().Header.Get("Authorization")); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "unauthorized access")
			}
			return next(c)
		}
	}
}
