package http

import (
	"fmt"
	"net/http"
	"strconv"

	"roadwatch/internal/infrastructure/osm"
	roaduc "roadwatch/internal/usecase/road"

	"github.com/labstack/echo/v4"
)

type OSMHandler struct {
	uc        *roaduc.Usecase
	nominatim *osm.Nominatim
}

func NewOSMHandler(uc *roaduc.Usecase, nominatim *osm.Nominatim) *OSMHandler {
	return &OSMHandler{uc: uc, nominatim: nominatim}
}

// Search proxies an Overpass road-name search, annotating each hit with
// whether approved local data already exists.
func (h *OSMHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if errLat != nil || errLng != nil {
		return fail(c, http.StatusBadRequest, "lat and lng are required")
	}
	radius, _ := strconv.Atoi(c.QueryParam("radius"))

	results, err := h.uc.SearchOSM(c.Request().Context(), query, lat, lng, radius)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK,
		fmt.Sprintf("Found %d roads in OpenStreetMap", len(results)),
		map[string]any{"results": results})
}

func (h *OSMHandler) GetWay(c echo.Context) error {
	way, err := h.uc.GetOSMWay(c.Request().Context(), c.Param("osm_way_id"))
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "OSM way retrieved successfully", map[string]any{
		"way": map[string]any{
			"osm_way_id": way.WayID,
			"name":       way.Name,
			"geometry":   way.Geometry,
			"tags":       way.Tags,
		},
	})
}

// SearchPlaces is the Nominatim place-search proxy.
func (h *OSMHandler) SearchPlaces(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	places, err := h.nominatim.SearchPlaces(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Search completed successfully", map[string]any{"results": places})
}
