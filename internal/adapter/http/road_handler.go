package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	roadDomain "roadwatch/internal/domain/road"
	roaduc "roadwatch/internal/usecase/road"

	"github.com/labstack/echo/v4"
)

type RoadHandler struct {
	uc            *roaduc.Usecase
	maxImageBytes int64
	allowedTypes  map[string]bool
}

func NewRoadHandler(uc *roaduc.Usecase, maxImageBytes int64, allowedTypes []string) *RoadHandler {
	allow := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allow[t] = true
	}
	return &RoadHandler{uc: uc, maxImageBytes: maxImageBytes, allowedTypes: allow}
}

type locationReq struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type createRoadReq struct {
	RoadName               string                 `json:"road_name" validate:"required,max=200"`
	Location               *locationReq           `json:"location" validate:"required"`
	Contractor             string                 `json:"contractor" validate:"required,max=200"`
	ApprovedBy             string                 `json:"approved_by" validate:"required,max=200"`
	TotalCost              string                 `json:"total_cost" validate:"required,max=100"`
	PromisedCompletionDate string                 `json:"promised_completion_date" validate:"required,max=100"`
	ActualCompletionDate   string                 `json:"actual_completion_date" validate:"required,max=100"`
	MaintenanceFirm        string                 `json:"maintenance_firm" validate:"required,max=200"`
	Status                 string                 `json:"status" validate:"required,max=100"`
	OSMWayID               string                 `json:"osm_way_id"`
	Geometry               roadDomain.LineString  `json:"geometry"`
	ExtraFields            roadDomain.ExtraFields `json:"extra_fields"`
}

func (h *RoadHandler) Create(c echo.Context) error {
	var req createRoadReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	dto, err := h.uc.Create(c.Request().Context(), roaduc.CreateRoadInput{
		RoadName:               req.RoadName,
		Location:               roaduc.LocationInput{Lat: req.Location.Lat, Lng: req.Location.Lng},
		Contractor:             req.Contractor,
		ApprovedBy:             req.ApprovedBy,
		TotalCost:              req.TotalCost,
		PromisedCompletionDate: req.PromisedCompletionDate,
		ActualCompletionDate:   req.ActualCompletionDate,
		MaintenanceFirm:        req.MaintenanceFirm,
		Status:                 req.Status,
		OSMWayID:               req.OSMWayID,
		Geometry:               req.Geometry,
		ExtraFields:            req.ExtraFields,
		AddedBy:                currentUsername(c),
	})
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusCreated, "Road submitted for approval", map[string]any{
		"road_id":  dto.ID,
		"approved": dto.Approved,
	})
}

type updateRoadReq struct {
	RoadName               *string                 `json:"road_name" validate:"omitempty,min=1,max=200"`
	Location               *locationReq            `json:"location"`
	Contractor             *string                 `json:"contractor" validate:"omitempty,min=1,max=200"`
	ApprovedBy             *string                 `json:"approved_by" validate:"omitempty,min=1,max=200"`
	TotalCost              *string                 `json:"total_cost" validate:"omitempty,min=1,max=100"`
	PromisedCompletionDate *string                 `json:"promised_completion_date" validate:"omitempty,min=1,max=100"`
	ActualCompletionDate   *string                 `json:"actual_completion_date" validate:"omitempty,min=1,max=100"`
	MaintenanceFirm        *string                 `json:"maintenance_firm" validate:"omitempty,min=1,max=200"`
	Status                 *string                 `json:"status" validate:"omitempty,min=1,max=100"`
	OSMWayID               *string                 `json:"osm_way_id"`
	Geometry               *roadDomain.LineString  `json:"geometry"`
	ExtraFields            *roadDomain.ExtraFields `json:"extra_fields"`
}

func (h *RoadHandler) Update(c echo.Context) error {
	var req updateRoadReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	var loc *roaduc.LocationInput
	if req.Location != nil {
		loc = &roaduc.LocationInput{Lat: req.Location.Lat, Lng: req.Location.Lng}
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("road_id"), roaduc.UpdateRoadInput{
		RoadName:               req.RoadName,
		Location:               loc,
		Contractor:             req.Contractor,
		ApprovedBy:             req.ApprovedBy,
		TotalCost:              req.TotalCost,
		PromisedCompletionDate: req.PromisedCompletionDate,
		ActualCompletionDate:   req.ActualCompletionDate,
		MaintenanceFirm:        req.MaintenanceFirm,
		Status:                 req.Status,
		OSMWayID:               req.OSMWayID,
		Geometry:               req.Geometry,
		ExtraFields:            req.ExtraFields,
	})
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Road update submitted for approval", map[string]any{
		"road_id":  dto.ID,
		"approved": dto.Approved,
	})
}

func (h *RoadHandler) List(c echo.Context) error {
	skip, limit := pageParams(c)
	roads, total, err := h.uc.List(c.Request().Context(), skip, limit)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Roads retrieved successfully", map[string]any{
		"roads": roads,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *RoadHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("road_id"))
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Road retrieved successfully", map[string]any{"road": dto})
}

func (h *RoadHandler) GetByOSMWayID(c echo.Context) error {
	dto, err := h.uc.GetByOSMWayID(c.Request().Context(), c.Param("osm_way_id"))
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Road retrieved successfully", map[string]any{"road": dto})
}

// MapView serves the GeoJSON feature collection, optionally filtered to a
// bounding box. All four bounds must be supplied together.
func (h *RoadHandler) MapView(c echo.Context) error {
	bbox, ok, err := bboxParams(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	var filter *roadDomain.BBox
	if ok {
		filter = &bbox
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	fc, err := h.uc.MapFeatures(c.Request().Context(), filter, limit)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "GeoJSON retrieved successfully", map[string]any{"geojson": fc})
}

type createFeedbackReq struct {
	Comment string `json:"comment" validate:"required,max=1000"`
}

func (h *RoadHandler) CreateFeedback(c echo.Context) error {
	var req createFeedbackReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}
	dto, err := h.uc.AddFeedback(c.Request().Context(), c.Param("road_id"), currentUsername(c), req.Comment)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusCreated, "Feedback added successfully", map[string]any{"feedback": dto})
}

func (h *RoadHandler) ListFeedback(c echo.Context) error {
	skip, limit := pageParams(c)
	items, total, err := h.uc.ListFeedback(c.Request().Context(), c.Param("road_id"), skip, limit)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusOK, "Feedback retrieved successfully", map[string]any{
		"feedback": items,
		"total":    total,
		"skip":     skip,
		"limit":    limit,
	})
}

func (h *RoadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Missing file upload")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !h.allowedTypes[contentType] {
		return fail(c, http.StatusBadRequest, "Invalid file type")
	}
	if fileHeader.Size > h.maxImageBytes {
		return fail(c, http.StatusBadRequest, "File size too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return failFromError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxImageBytes+1))
	if err != nil {
		return failFromError(c, err)
	}
	if int64(len(data)) > h.maxImageBytes {
		return fail(c, http.StatusBadRequest, "File size too large")
	}

	url, err := h.uc.AttachImage(c.Request().Context(), c.Param("road_id"), data, fileHeader.Filename, contentType)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, http.StatusCreated, "Image uploaded successfully", map[string]any{"image_url": url})
}

func pageParams(c echo.Context) (int, int) {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}

// bboxParams parses min_lat/max_lat/min_lng/max_lng. Returns ok=false when
// none are present; partial bounds are a validation error.
func bboxParams(c echo.Context) (roadDomain.BBox, bool, error) {
	names := []string{"min_lat", "max_lat", "min_lng", "max_lng"}
	vals := make([]float64, 4)
	present := 0
	for i, name := range names {
		raw := strings.TrimSpace(c.QueryParam(name))
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return roadDomain.BBox{}, false, errInvalidBBox
		}
		vals[i] = f
		present++
	}
	switch present {
	case 0:
		return roadDomain.BBox{}, false, nil
	case 4:
		b := roadDomain.BBox{MinLat: vals[0], MaxLat: vals[1], MinLng: vals[2], MaxLng: vals[3]}
		if b.MinLat > b.MaxLat || b.MinLng > b.MaxLng {
			return roadDomain.BBox{}, false, errInvalidBBox
		}
		return b, true, nil
	default:
		return roadDomain.BBox{}, false, errInvalidBBox
	}
}
