package mysql

import (
	"context"

	roadDomain "roadwatch/internal/domain/road"

	"gorm.io/gorm"
)

type FeedbackRepository struct{ db *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository { return &FeedbackRepository{db: db} }

func (r *FeedbackRepository) Create(ctx context.Context, f *roadDomain.Feedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FeedbackRepository) ListByRoadID(ctx context.Context, roadID string, skip, limit int) ([]roadDomain.Feedback, error) {
	var out []roadDomain.Feedback
	res := r.db.WithContext(ctx).
		Where("road_id = ?", roadID).
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *FeedbackRepository) CountByRoadID(ctx context.Context, roadID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&roadDomain.Feedback{}).Where("road_id = ?", roadID).Count(&n)
	return n, res.Error
}
