package roadmock

import (
	"context"

	domain "roadwatch/internal/domain/road"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                func(ctx context.Context, r *domain.Road) error
	SaveFn                  func(ctx context.Context, r *domain.Road) error
	GetByRoadIDFn           func(ctx context.Context, roadID string) (*domain.Road, error)
	GetApprovedByRoadIDFn   func(ctx context.Context, roadID string) (*domain.Road, error)
	GetApprovedByOSMWayIDFn func(ctx context.Context, osmWayID string) (*domain.Road, error)
	GetByOSMWayIDFn         func(ctx context.Context, osmWayID string) (*domain.Road, error)
	ListApprovedFn          func(ctx context.Context, skip, limit int) ([]domain.Road, error)
	CountApprovedFn         func(ctx context.Context) (int64, error)
	ListPendingFn           func(ctx context.Context, skip, limit int) ([]domain.Road, error)
	CountPendingFn          func(ctx context.Context) (int64, error)
	ListApprovedInBBoxFn    func(ctx context.Context, bbox *domain.BBox, limit int) ([]domain.Road, error)
	DeleteWithFeedbackFn    func(ctx context.Context, r *domain.Road) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Road) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Road) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRoadID(ctx context.Context, roadID string) (*domain.Road, error) {
	if m.GetByRoadIDFn != nil {
		return m.GetByRoadIDFn(ctx, roadID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetApprovedByRoadID(ctx context.Context, roadID string) (*domain.Road, error) {
	if m.GetApprovedByRoadIDFn != nil {
		return m.GetApprovedByRoadIDFn(ctx, roadID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetApprovedByOSMWayID(ctx context.Context, osmWayID string) (*domain.Road, error) {
	if m.GetApprovedByOSMWayIDFn != nil {
		return m.GetApprovedByOSMWayIDFn(ctx, osmWayID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByOSMWayID(ctx context.Context, osmWayID string) (*domain.Road, error) {
	if m.GetByOSMWayIDFn != nil {
		return m.GetByOSMWayIDFn(ctx, osmWayID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListApproved(ctx context.Context, skip, limit int) ([]domain.Road, error) {
	if m.ListApprovedFn != nil {
		return m.ListApprovedFn(ctx, skip, limit)
	}
	return nil, nil
}

func (m *Repo) CountApproved(ctx context.Context) (int64, error) {
	if m.CountApprovedFn != nil {
		return m.CountApprovedFn(ctx)
	}
	return 0, nil
}

func (m *Repo) ListPending(ctx context.Context, skip, limit int) ([]domain.Road, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx, skip, limit)
	}
	return nil, nil
}

func (m *Repo) CountPending(ctx context.Context) (int64, error) {
	if m.CountPendingFn != nil {
		return m.CountPendingFn(ctx)
	}
	return 0, nil
}

func (m *Repo) ListApprovedInBBox(ctx context.Context, bbox *domain.BBox, limit int) ([]domain.Road, error) {
	if m.ListApprovedInBBoxFn != nil {
		return m.ListApprovedInBBoxFn(ctx, bbox, limit)
	}
	return nil, nil
}

func (m *Repo) DeleteWithFeedback(ctx context.Context, r *domain.Road) error {
	if m.DeleteWithFeedbackFn != nil {
		return m.DeleteWithFeedbackFn(ctx, r)
	}
	return nil
}

// FeedbackRepo is a function-backed mock for domain.FeedbackRepository.
type FeedbackRepo struct {
	CreateFn        func(ctx context.Context, f *domain.Feedback) error
	ListByRoadIDFn  func(ctx context.Context, roadID string, skip, limit int) ([]domain.Feedback, error)
	CountByRoadIDFn func(ctx context.Context, roadID string) (int64, error)
}

func (m *FeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *FeedbackRepo) ListByRoadID(ctx context.Context, roadID string, skip, limit int) ([]domain.Feedback, error) {
	if m.ListByRoadIDFn != nil {
		return m.ListByRoadIDFn(ctx, roadID, skip, limit)
	}
	return nil, nil
}

func (m *FeedbackRepo) CountByRoadID(ctx context.Context, roadID string) (int64, error) {
	if m.CountByRoadIDFn != nil {
		return m.CountByRoadIDFn(ctx, roadID)
	}
	return 0, nil
}
