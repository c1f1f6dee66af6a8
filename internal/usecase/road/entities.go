package road

import (
	domain "roadwatch/internal/domain/road"
	"roadwatch/pkg/datetime"
)

type LocationInput struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CreateRoadInput struct {
	RoadName               string
	Location               LocationInput
	Contractor             string
	ApprovedBy             string
	TotalCost              string
	PromisedCompletionDate string
	ActualCompletionDate   string
	MaintenanceFirm        string
	Status                 string
	OSMWayID               string
	Geometry               domain.LineString
	ExtraFields            domain.ExtraFields
	AddedBy                string
}

// UpdateRoadInput carries only the fields present in the request; nil means
// "leave unchanged".
type UpdateRoadInput struct {
	RoadName               *string
	Location               *LocationInput
	Contractor             *string
	ApprovedBy             *string
	TotalCost              *string
	PromisedCompletionDate *string
	ActualCompletionDate   *string
	MaintenanceFirm        *string
	Status                 *string
	OSMWayID               *string
	Geometry               *domain.LineString
	ExtraFields            *domain.ExtraFields
}

type LocationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RoadDTO struct {
	ID                     string             `json:"id"`
	RoadName               string             `json:"road_name"`
	Location               LocationDTO        `json:"location"`
	Contractor             string             `json:"contractor"`
	ApprovedBy             string             `json:"approved_by"`
	TotalCost              string             `json:"total_cost"`
	PromisedCompletionDate string             `json:"promised_completion_date"`
	ActualCompletionDate   string             `json:"actual_completion_date"`
	MaintenanceFirm        string             `json:"maintenance_firm"`
	Status                 string             `json:"status"`
	Images                 []string           `json:"images"`
	AddedByUser            string             `json:"added_by_user"`
	Approved               bool               `json:"approved"`
	OSMWayID               string             `json:"osm_way_id,omitempty"`
	Geometry               domain.LineString  `json:"geometry,omitempty"`
	HasOSMData             bool               `json:"has_osm_data"`
	ExtraFields            domain.ExtraFields `json:"extra_fields"`
	CreatedAt              datetime.Stamp     `json:"created_at"`
	UpdatedAt              datetime.Stamp     `json:"updated_at"`
}

type FeedbackDTO struct {
	ID        string         `json:"id"`
	RoadID    string         `json:"road_id"`
	User      string         `json:"user"`
	Comment   string         `json:"comment"`
	CreatedAt datetime.Stamp `json:"date"`
}

// WaySearchResult is an OSM search hit annotated with whether an approved
// local record already exists for that way.
type WaySearchResult struct {
	OSMWayID   string            `json:"osm_way_id"`
	Name       string            `json:"name"`
	Geometry   domain.LineString `json:"geometry"`
	Tags       map[string]string `json:"tags"`
	HasOurData bool              `json:"has_our_data"`
}

func toRoadDTO(r *domain.Road) *RoadDTO {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	extra := r.ExtraFields
	if extra == nil {
		extra = domain.ExtraFields{}
	}
	return &RoadDTO{
		ID:                     r.RoadID,
		RoadName:               r.RoadName,
		Location:               LocationDTO{Lat: r.Lat, Lng: r.Lng},
		Contractor:             r.Contractor,
		ApprovedBy:             r.ApprovedBy,
		TotalCost:              r.TotalCost,
		PromisedCompletionDate: r.PromisedCompletionDate,
		ActualCompletionDate:   r.ActualCompletionDate,
		MaintenanceFirm:        r.MaintenanceFirm,
		Status:                 r.Status,
		Images:                 images,
		AddedByUser:            r.AddedByUser,
		Approved:               r.Approved,
		OSMWayID:               r.OSMWayID,
		Geometry:               r.Geometry,
		HasOSMData:             r.HasOSMData,
		ExtraFields:            extra,
		CreatedAt:              datetime.Format(r.CreatedAt),
		UpdatedAt:              datetime.Format(r.UpdatedAt),
	}
}

func toFeedbackDTO(f *domain.Feedback) *FeedbackDTO {
	return &FeedbackDTO{
		ID:        f.FeedbackID,
		RoadID:    f.RoadID,
		User:      f.Username,
		Comment:   f.Comment,
		CreatedAt: datetime.Format(f.CreatedAt),
	}
}
