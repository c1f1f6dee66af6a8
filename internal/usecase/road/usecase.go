package road

import (
	"context"
	"errors"
	"fmt"
	"log"

	domain "roadwatch/internal/domain/road"
	"roadwatch/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	roads    domain.Repository
	feedback domain.FeedbackRepository
	osm      OSMGateway
	blobs    BlobStore
}

func NewUsecase(roads domain.Repository, feedback domain.FeedbackRepository, osm OSMGateway, blobs BlobStore) *Usecase {
	return &Usecase{roads: roads, feedback: feedback, osm: osm, blobs: blobs}
}

const (
	maxCommentLen = 1000

	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Create inserts a new road in the pending state. OSM linkage is reconciled
// before the insert; a failed OSM lookup degrades to point-only data and
// never fails the create.
func (u *Usecase) Create(ctx context.Context, in CreateRoadInput) (*RoadDTO, error) {
	r := &domain.Road{
		RoadID:                 id.NewID32(),
		RoadName:               domain.SanitizeText(in.RoadName),
		Contractor:             domain.SanitizeText(in.Contractor),
		ApprovedBy:             domain.SanitizeText(in.ApprovedBy),
		TotalCost:              domain.SanitizeText(in.TotalCost),
		PromisedCompletionDate: domain.SanitizeText(in.PromisedCompletionDate),
		ActualCompletionDate:   domain.SanitizeText(in.ActualCompletionDate),
		MaintenanceFirm:        domain.SanitizeText(in.MaintenanceFirm),
		Status:                 domain.SanitizeText(in.Status),
		Lat:                    in.Location.Lat,
		Lng:                    in.Location.Lng,
		Images:                 domain.StringList{},
		ExtraFields:            in.ExtraFields,
		AddedByUser:            in.AddedBy,
		Approved:               false,
	}
	if r.RoadName == "" {
		return nil, fmt.Errorf("%w: road_name is required", domain.ErrValidation)
	}
	if err := domain.ValidateLocation(r.Lat, r.Lng); err != nil {
		return nil, err
	}
	if r.ExtraFields == nil {
		r.ExtraFields = domain.ExtraFields{}
	}
	if err := r.ExtraFields.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateGeometry(in.Geometry); err != nil {
		return nil, err
	}

	geom, hasOSM := u.reconcileCreate(ctx, in.OSMWayID, in.Geometry)
	r.OSMWayID = in.OSMWayID
	r.Geometry = geom
	r.HasOSMData = hasOSM

	if err := u.roads.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRoadDTO(r), nil
}

// Update applies the supplied fields and returns the road to the pending
// state. An update that touches nothing is rejected.
func (u *Usecase) Update(ctx context.Context, roadID string, in UpdateRoadInput) (*RoadDTO, error) {
	r, err := u.roads.GetByRoadID(ctx, roadID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	touched := 0
	setText := func(dst *string, src *string) {
		if src != nil {
			*dst = domain.SanitizeText(*src)
			touched++
		}
	}
	setText(&r.RoadName, in.RoadName)
	setText(&r.Contractor, in.Contractor)
	setText(&r.ApprovedBy, in.ApprovedBy)
	setText(&r.TotalCost, in.TotalCost)
	setText(&r.PromisedCompletionDate, in.PromisedCompletionDate)
	setText(&r.ActualCompletionDate, in.ActualCompletionDate)
	setText(&r.MaintenanceFirm, in.MaintenanceFirm)
	setText(&r.Status, in.Status)

	if in.Location != nil {
		if err := domain.ValidateLocation(in.Location.Lat, in.Location.Lng); err != nil {
			return nil, err
		}
		r.Lat, r.Lng = in.Location.Lat, in.Location.Lng
		touched++
	}
	if in.ExtraFields != nil {
		if err := in.ExtraFields.Validate(); err != nil {
			return nil, err
		}
		r.ExtraFields = *in.ExtraFields
		touched++
	}
	if in.OSMWayID != nil || in.Geometry != nil {
		if in.Geometry != nil {
			if err := domain.ValidateGeometry(*in.Geometry); err != nil {
				return nil, err
			}
		}
		u.reconcileUpdate(ctx, r, in.OSMWayID, in.Geometry)
		touched++
	}

	if touched == 0 {
		return nil, domain.ErrNothingToUpdate
	}
	if r.RoadName == "" {
		return nil, fmt.Errorf("%w: road_name cannot be empty", domain.ErrValidation)
	}

	// Any accepted edit requires re-review.
	r.Approved = false
	if err := u.roads.Save(ctx, r); err != nil {
		return nil, err
	}
	return toRoadDTO(r), nil
}

// Get returns an approved road by its public id.
func (u *Usecase) Get(ctx context.Context, roadID string) (*RoadDTO, error) {
	r, err := u.roads.GetApprovedByRoadID(ctx, roadID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toRoadDTO(r), nil
}

// GetByOSMWayID returns the approved road linked to an OSM way.
func (u *Usecase) GetByOSMWayID(ctx context.Context, osmWayID string) (*RoadDTO, error) {
	r, err := u.roads.GetApprovedByOSMWayID(ctx, osmWayID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toRoadDTO(r), nil
}

// List returns a page of approved roads (created_at descending) plus the
// total count over the same filter.
func (u *Usecase) List(ctx context.Context, skip, limit int) ([]RoadDTO, int64, error) {
	skip, limit = clampPage(skip, limit)
	items, err := u.roads.ListApproved(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.roads.CountApproved(ctx)
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(items), total, nil
}

// ListPending is the admin moderation queue.
func (u *Usecase) ListPending(ctx context.Context, skip, limit int) ([]RoadDTO, int64, error) {
	skip, limit = clampPage(skip, limit)
	items, err := u.roads.ListPending(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.roads.CountPending(ctx)
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(items), total, nil
}

// Approve moves a pending road to the approved state. Approving an already
// approved road is a conflict, not a no-op.
func (u *Usecase) Approve(ctx context.Context, roadID string) (*RoadDTO, error) {
	r, err := u.roads.GetByRoadID(ctx, roadID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if r.Approved {
		return nil, domain.ErrAlreadyApproved
	}
	r.Approved = true
	if err := u.roads.Save(ctx, r); err != nil {
		return nil, err
	}
	return toRoadDTO(r), nil
}

// Reject deletes the road and its feedback, then cleans up images from the
// blob store. Image deletion is best-effort per image; failures are logged
// and never escalate.
func (u *Usecase) Reject(ctx context.Context, roadID string) error {
	r, err := u.roads.GetByRoadID(ctx, roadID)
	if err != nil {
		return mapNotFound(err)
	}
	if err := u.roads.DeleteWithFeedback(ctx, r); err != nil {
		return err
	}
	for _, url := range r.Images {
		if u.blobs == nil {
			break
		}
		if ok := u.blobs.Delete(ctx, url); !ok {
			log.Printf("road %s: failed to delete image %s", roadID, url)
		}
	}
	return nil
}

// AddFeedback records a comment against an approved road. A pending or
// missing road is reported as not found either way.
func (u *Usecase) AddFeedback(ctx context.Context, roadID, username, comment string) (*FeedbackDTO, error) {
	if _, err := u.roads.GetApprovedByRoadID(ctx, roadID); err != nil {
		return nil, mapNotFound(err)
	}
	comment = domain.SanitizeText(comment)
	if comment == "" || len(comment) > maxCommentLen {
		return nil, fmt.Errorf("%w: comment must be 1..%d characters", domain.ErrValidation, maxCommentLen)
	}
	f := &domain.Feedback{
		FeedbackID: id.NewID32(),
		RoadID:     roadID,
		Username:   username,
		Comment:    comment,
	}
	if err := u.feedback.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFeedbackDTO(f), nil
}

// ListFeedback returns a page of comments for an approved road.
func (u *Usecase) ListFeedback(ctx context.Context, roadID string, skip, limit int) ([]FeedbackDTO, int64, error) {
	if _, err := u.roads.GetApprovedByRoadID(ctx, roadID); err != nil {
		return nil, 0, mapNotFound(err)
	}
	skip, limit = clampPage(skip, limit)
	items, err := u.feedback.ListByRoadID(ctx, roadID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.feedback.CountByRoadID(ctx, roadID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]FeedbackDTO, 0, len(items))
	for i := range items {
		out = append(out, *toFeedbackDTO(&items[i]))
	}
	return out, total, nil
}

// AttachImage stores the image and appends its public URL to the road.
func (u *Usecase) AttachImage(ctx context.Context, roadID string, data []byte, filename, contentType string) (string, error) {
	r, err := u.roads.GetByRoadID(ctx, roadID)
	if err != nil {
		return "", mapNotFound(err)
	}
	if u.blobs == nil {
		return "", errors.New("blob store not configured")
	}
	url, err := u.blobs.Put(ctx, data, fmt.Sprintf("road_%s_%s", roadID, filename), contentType)
	if err != nil {
		return "", err
	}
	r.Images = append(r.Images, url)
	if err := u.roads.Save(ctx, r); err != nil {
		return "", err
	}
	return url, nil
}

// SearchOSM proxies an Overpass name search and annotates each hit with
// whether an approved local record exists for that way.
func (u *Usecase) SearchOSM(ctx context.Context, query string, lat, lng float64, radiusMeters int) ([]WaySearchResult, error) {
	ways, err := u.osm.SearchRoadsByName(ctx, query, lat, lng, radiusMeters)
	if err != nil {
		return nil, err
	}
	out := make([]WaySearchResult, 0, len(ways))
	for _, w := range ways {
		res := WaySearchResult{
			OSMWayID: w.WayID,
			Name:     w.Name,
			Geometry: w.Geometry,
			Tags:     w.Tags,
		}
		if _, err := u.roads.GetApprovedByOSMWayID(ctx, w.WayID); err == nil {
			res.HasOurData = true
		}
		out = append(out, res)
	}
	return out, nil
}

// GetOSMWay fetches a single way from the collaborator.
func (u *Usecase) GetOSMWay(ctx context.Context, wayID string) (*domain.Way, error) {
	return u.osm.GetWayByID(ctx, wayID)
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return skip, limit
}

func toDTOs(items []domain.Road) []RoadDTO {
	out := make([]RoadDTO, 0, len(items))
	for i := range items {
		out = append(out, *toRoadDTO(&items[i]))
	}
	return out
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
