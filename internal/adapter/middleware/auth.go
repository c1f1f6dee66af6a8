package middleware

import (
	"net/http"
	"strings"

	httpadp "roadwatch/internal/adapter/http"
	useruc "roadwatch/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

// RequireUser rejects requests without a valid bearer token and stores the
// resolved username on the context.
func RequireUser(auth *useruc.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return errUnauthorized(c)
			}
			usr, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return errUnauthorized(c)
			}
			c.Set(httpadp.UsernameContextKey, usr.Username)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func errUnauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]any{
		"status":  "error",
		"message": "Authentication required",
		"data":    nil,
	})
}
