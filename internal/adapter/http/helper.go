package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Context key set by the auth middleware.
const UsernameContextKey = "username"

var errInvalidBBox = errors.New("bounding box requires all of min_lat, max_lat, min_lng, max_lng")

func currentUsername(c echo.Context) string {
	if v, ok := c.Get(UsernameContextKey).(string); ok {
		return v
	}
	return ""
}

func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
