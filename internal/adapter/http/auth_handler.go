package http

import (
	"net/http"

	useruc "roadwatch/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *useruc.Usecase }

func NewAuthHandler(uc *useruc.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type credentialsReq struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}
	dto, err := h.uc.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusCreated, "User registered successfully", map[string]any{"user": dto})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}
	token, dto, err := h.uc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Login successful", map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         dto,
	})
}
