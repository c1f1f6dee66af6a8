package http

import (
	"net/http"

	roaduc "roadwatch/internal/usecase/road"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{ uc *roaduc.Usecase }

func NewAdminHandler(uc *roaduc.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

func (h *AdminHandler) ListPending(c echo.Context) error {
	skip, limit := pageParams(c)
	roads, total, err := h.uc.ListPending(c.Request().Context(), skip, limit)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Pending roads retrieved successfully", map[string]any{
		"roads": roads,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *AdminHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("road_id"))
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Road approved successfully", map[string]any{"road": dto})
}

func (h *AdminHandler) Reject(c echo.Context) error {
	roadID := c.Param("road_id")
	if err := h.uc.Reject(c.Request().Context(), roadID); err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Road rejected and deleted successfully", map[string]any{"road_id": roadID})
}
