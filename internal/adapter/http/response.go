package http

import (
	"errors"
	"log"
	"net/http"

	roadDomain "roadwatch/internal/domain/road"
	userDomain "roadwatch/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{Status: "success", Message: message, Data: data})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Status: "error", Message: message, Data: nil})
}

// failFromError maps domain sentinels onto HTTP classes. Anything
// unrecognized becomes a sanitized 500.
func failFromError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, roadDomain.ErrValidation), errors.Is(err, roadDomain.ErrNothingToUpdate):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, roadDomain.ErrNotFound):
		return fail(c, http.StatusNotFound, "Road not found")
	case errors.Is(err, roadDomain.ErrWayNotFound):
		return fail(c, http.StatusNotFound, "OpenStreetMap way not found")
	case errors.Is(err, roadDomain.ErrAlreadyApproved):
		return fail(c, http.StatusConflict, "Road is already approved")
	case errors.Is(err, userDomain.ErrUsernameTaken):
		return fail(c, http.StatusConflict, "Username already taken")
	case errors.Is(err, userDomain.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, roadDomain.ErrUpstream):
		return fail(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return fail(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
