package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/auth"
)

// JWTMiddleware authenticates the bearer token and exposes the actor
// identity to handlers as "user_id" (int64) and "role" (string).
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing Authorization header"})
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid Authorization format"})
		}

		userID, role, err := auth.ParseToken(header[len(prefix):])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set("user_id", userID)
		c.Set("role", string(role))
		return next(c)
	}
}
