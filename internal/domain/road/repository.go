package road

import "context"

type Repository interface {
	Create(ctx context.Context, r *Road) error
	Save(ctx context.Context, r *Road) error

	// GetByRoadID returns the road regardless of moderation state.
	GetByRoadID(ctx context.Context, roadID string) (*Road, error)
	// Approved-only lookups back the public read paths.
	GetApprovedByRoadID(ctx context.Context, roadID string) (*Road, error)
	GetApprovedByOSMWayID(ctx context.Context, osmWayID string) (*Road, error)
	// GetByOSMWayID ignores moderation state; used by the bulk importer to
	// dedupe on way id.
	GetByOSMWayID(ctx context.Context, osmWayID string) (*Road, error)

	ListApproved(ctx context.Context, skip, limit int) ([]Road, error)
	CountApproved(ctx context.Context) (int64, error)
	ListPending(ctx context.Context, skip, limit int) ([]Road, error)
	CountPending(ctx context.Context) (int64, error)

	// ListApprovedInBBox returns approved roads whose point anchor falls
	// inside bbox. A nil bbox means no spatial filter.
	ListApprovedInBBox(ctx context.Context, bbox *BBox, limit int) ([]Road, error)

	// DeleteWithFeedback removes the road and every feedback row referencing
	// its public id in a single transaction.
	DeleteWithFeedback(ctx context.Context, r *Road) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *Feedback) error
	ListByRoadID(ctx context.Context, roadID string, skip, limit int) ([]Feedback, error)
	CountByRoadID(ctx context.Context, roadID string) (int64, error)
}
