package road

import (
	"context"
	"fmt"
	"time"

	domain "roadwatch/internal/domain/road"
	"roadwatch/pkg/id"
)

// ImportWay writes a pre-approved road record for an OSM way. This is the
// trusted bulk-import path: it bypasses the moderation gate and dedupes on
// way id instead. Returns false when the way was already present.
func (u *Usecase) ImportWay(ctx context.Context, w domain.Way) (bool, error) {
	if w.WayID == "" || len(w.Geometry) == 0 {
		return false, fmt.Errorf("%w: way id and geometry are required for import", domain.ErrValidation)
	}
	if _, err := u.roads.GetByOSMWayID(ctx, w.WayID); err == nil {
		return false, nil
	}

	name := w.Name
	if name == "" {
		name = fmt.Sprintf("Unnamed Road (OSM %s)", w.WayID)
	}
	anchor := w.Geometry[0]

	highway := w.Tags["highway"]
	if highway == "" {
		highway = "unknown"
	}
	extra := domain.ExtraFields{
		"highway_type":  highway,
		"imported_from": "OpenStreetMap",
		"import_date":   time.Now().UTC().Format(time.RFC3339),
	}
	if surface, ok := w.Tags["surface"]; ok {
		extra["surface"] = surface
	}
	if lanes, ok := w.Tags["lanes"]; ok {
		extra["lanes"] = lanes
	}

	r := &domain.Road{
		RoadID:                 id.NewID32(),
		RoadName:               domain.SanitizeText(name),
		Contractor:             "To be updated",
		ApprovedBy:             "To be updated",
		TotalCost:              "To be updated",
		PromisedCompletionDate: "To be updated",
		ActualCompletionDate:   "To be updated",
		MaintenanceFirm:        "To be updated",
		Status:                 "Type: " + highway,
		Lat:                    anchor[1],
		Lng:                    anchor[0],
		OSMWayID:               w.WayID,
		Geometry:               w.Geometry,
		HasOSMData:             true,
		Images:                 domain.StringList{},
		ExtraFields:            extra,
		AddedByUser:            "roadwatch-importer",
		Approved:               true,
	}
	if err := u.roads.Create(ctx, r); err != nil {
		return false, err
	}
	return true, nil
}
