package road

import (
	"context"
	"errors"
	"log"

	domain "roadwatch/internal/domain/road"
)

// reconcileCreate decides geometry/has_osm_data for a new submission.
//
//	way id only        → fetch by way id; miss or provider failure degrades
//	                     to point-only data without failing the create
//	way id + geometry  → trust the caller, no fetch
//	geometry only      → trust the caller
//	neither            → point-only
func (u *Usecase) reconcileCreate(ctx context.Context, wayID string, geom domain.LineString) (domain.LineString, bool) {
	if len(geom) > 0 {
		return geom, true
	}
	if wayID == "" {
		return nil, false
	}
	return u.fetchGeometry(ctx, wayID)
}

// reconcileUpdate re-runs linkage only over the fields present in the
// payload. A payload geometry wins outright; a payload way id without
// geometry triggers a fresh fetch for that way.
func (u *Usecase) reconcileUpdate(ctx context.Context, r *domain.Road, wayID *string, geom *domain.LineString) {
	if wayID != nil {
		r.OSMWayID = *wayID
	}
	if geom != nil {
		r.Geometry = *geom
		r.HasOSMData = len(*geom) > 0
		return
	}
	if wayID == nil {
		return
	}
	if r.OSMWayID == "" {
		r.Geometry = nil
		r.HasOSMData = false
		return
	}
	r.Geometry, r.HasOSMData = u.fetchGeometry(ctx, r.OSMWayID)
}

func (u *Usecase) fetchGeometry(ctx context.Context, wayID string) (domain.LineString, bool) {
	if u.osm == nil {
		return nil, false
	}
	way, err := u.osm.GetWayByID(ctx, wayID)
	if err != nil {
		if !errors.Is(err, domain.ErrWayNotFound) {
			log.Printf("osm lookup for way %s failed: %v", wayID, err)
		}
		return nil, false
	}
	if len(way.Geometry) == 0 {
		return nil, false
	}
	return way.Geometry, true
}
