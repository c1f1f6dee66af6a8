package road

import (
	"context"

	domain "roadwatch/internal/domain/road"
)

const (
	DefaultMapLimit = 1000
	MaxMapLimit     = 5000
)

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type FeatureProperties struct {
	ID         string      `json:"id"`
	RoadName   string      `json:"road_name"`
	Contractor string      `json:"contractor"`
	Status     string      `json:"status"`
	TotalCost  string      `json:"total_cost"`
	HasOSMData bool        `json:"has_osm_data"`
	OSMWayID   string      `json:"osm_way_id,omitempty"`
	Location   LocationDTO `json:"location"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// MapFeatures renders approved roads inside bbox (nil bbox = unfiltered) as
// a GeoJSON FeatureCollection. limit is clamped to [1, MaxMapLimit] with
// DefaultMapLimit when unset.
func (u *Usecase) MapFeatures(ctx context.Context, bbox *domain.BBox, limit int) (*FeatureCollection, error) {
	limit = clampMapLimit(limit)
	roads, err := u.roads.ListApprovedInBBox(ctx, bbox, limit)
	if err != nil {
		return nil, err
	}
	features := make([]Feature, 0, len(roads))
	for i := range roads {
		features = append(features, featureFromRoad(&roads[i]))
	}
	return &FeatureCollection{Type: "FeatureCollection", Features: features}, nil
}

// featureFromRoad emits the stored line-string when trustworthy OSM geometry
// exists, a point otherwise. The point anchor always rides along in
// properties either way.
func featureFromRoad(r *domain.Road) Feature {
	geom := Geometry{Type: "Point", Coordinates: [2]float64{r.Lng, r.Lat}}
	if r.HasOSMData && len(r.Geometry) > 0 {
		geom = Geometry{Type: "LineString", Coordinates: r.Geometry}
	}
	return Feature{
		Type:     "Feature",
		Geometry: geom,
		Properties: FeatureProperties{
			ID:         r.RoadID,
			RoadName:   r.RoadName,
			Contractor: r.Contractor,
			Status:     r.Status,
			TotalCost:  r.TotalCost,
			HasOSMData: r.HasOSMData,
			OSMWayID:   r.OSMWayID,
			Location:   LocationDTO{Lat: r.Lat, Lng: r.Lng},
		},
	}
}

func clampMapLimit(limit int) int {
	if limit <= 0 {
		return DefaultMapLimit
	}
	if limit > MaxMapLimit {
		return MaxMapLimit
	}
	return limit
}
