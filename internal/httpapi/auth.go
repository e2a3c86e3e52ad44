package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"horse.fit/lucid/internal/auth"
)

const bearerPrefix = "Bearer "

// requireToken checks the Authorization header against the configured
// bcrypt token hash.
func (s *Server) requireToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			if !strings.HasPrefix(header, bearerPrefix) {
				return unauthorizedResponse(c)
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if !auth.VerifyToken(token, s.opts.TokenHash) {
				return unauthorizedResponse(c)
			}
			return next(c)
		}
	}
}

func unauthorizedResponse(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "Authentication required", nil)
}
