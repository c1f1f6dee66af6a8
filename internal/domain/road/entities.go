package road

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("road not found")
	ErrAlreadyApproved = errors.New("road is already approved")
	ErrNothingToUpdate = errors.New("no fields to update")
	ErrValidation      = errors.New("invalid input")

	// OSM collaborator sentinels, shared by the Overpass client and the
	// usecases that consume it.
	ErrWayNotFound = errors.New("osm way not found")
	ErrUpstream    = errors.New("upstream service unavailable")
)

// Road is a single road-infrastructure record. All construction fields are
// free text supplied by citizens; lat/lng is the canonical point anchor and
// is required even when OSM way geometry is attached.
type Road struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	RoadID string `gorm:"column:road_id;type:char(32);not null;uniqueIndex:ux_roads_road_id"`

	RoadName               string `gorm:"column:road_name;size:200;not null"`
	Contractor             string `gorm:"column:contractor;size:200;not null"`
	ApprovedBy             string `gorm:"column:approved_by;size:200;not null"`
	TotalCost              string `gorm:"column:total_cost;size:100;not null"`
	PromisedCompletionDate string `gorm:"column:promised_completion_date;size:100;not null"`
	ActualCompletionDate   string `gorm:"column:actual_completion_date;size:100;not null"`
	MaintenanceFirm        string `gorm:"column:maintenance_firm;size:200;not null"`
	Status                 string `gorm:"column:status;size:100;not null"`

	Lat float64 `gorm:"column:lat;not null;index:idx_roads_lat_lng"`
	Lng float64 `gorm:"column:lng;not null;index:idx_roads_lat_lng"`

	OSMWayID   string     `gorm:"column:osm_way_id;size:32;index:idx_roads_osm_way_id"`
	Geometry   LineString `gorm:"column:geometry;type:json"`
	HasOSMData bool       `gorm:"column:has_osm_data;not null;default:false"`

	Images      StringList  `gorm:"column:images;type:json"`
	ExtraFields ExtraFields `gorm:"column:extra_fields;type:json"`

	AddedByUser string `gorm:"column:added_by_user;size:50;not null"`
	Approved    bool   `gorm:"column:approved;not null;default:false;index:idx_roads_approved"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Road) TableName() string { return "roads" }

// Feedback is a citizen comment on an approved road. road_id is the road's
// public id; the reference is weak, cleanup happens on rejection.
type Feedback struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	FeedbackID string    `gorm:"column:feedback_id;type:char(32);not null;uniqueIndex:ux_feedback_feedback_id"`
	RoadID     string    `gorm:"column:road_id;type:char(32);not null;index:idx_feedback_road_id"`
	Username   string    `gorm:"column:username;size:50;not null"`
	Comment    string    `gorm:"column:comment;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Feedback) TableName() string { return "feedback" }

// Way is an OpenStreetMap line feature as returned by the OSM collaborator.
type Way struct {
	WayID    string
	Name     string
	Geometry LineString
	Tags     map[string]string
}

// BBox is a lat/lng rectangle used to filter map results.
type BBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}
