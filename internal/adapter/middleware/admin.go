package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const adminTokenHeader = "X-Admin-Token"

// RequireAdmin guards moderation endpoints with a static API token,
// compared in constant time. This credential is distinct from user auth.
func RequireAdmin(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(adminTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"status":  "error",
					"message": "Admin authentication required",
					"data":    nil,
				})
			}
			return next(c)
		}
	}
}
