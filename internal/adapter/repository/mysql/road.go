package mysql

import (
	"context"

	roadDomain "roadwatch/internal/domain/road"

	"gorm.io/gorm"
)

type RoadRepository struct{ db *gorm.DB }

func NewRoadRepository(db *gorm.DB) *RoadRepository { return &RoadRepository{db: db} }

func (r *RoadRepository) Create(ctx context.Context, road *roadDomain.Road) error {
	return r.db.WithContext(ctx).Create(road).Error
}

func (r *RoadRepository) Save(ctx context.Context, road *roadDomain.Road) error {
	return r.db.WithContext(ctx).Save(road).Error
}

func (r *RoadRepository) GetByRoadID(ctx context.Context, roadID string) (*roadDomain.Road, error) {
	var out roadDomain.Road
	res := r.db.WithContext(ctx).Where("road_id = ?", roadID).First(&out)
	return &out, res.Error
}

func (r *RoadRepository) GetApprovedByRoadID(ctx context.Context, roadID string) (*roadDomain.Road, error) {
	var out roadDomain.Road
	res := r.db.WithContext(ctx).Where("road_id = ? AND approved = ?", roadID, true).First(&out)
	return &out, res.Error
}

func (r *RoadRepository) GetApprovedByOSMWayID(ctx context.Context, osmWayID string) (*roadDomain.Road, error) {
	var out roadDomain.Road
	res := r.db.WithContext(ctx).Where("osm_way_id = ? AND approved = ?", osmWayID, true).First(&out)
	return &out, res.Error
}

func (r *RoadRepository) GetByOSMWayID(ctx context.Context, osmWayID string) (*roadDomain.Road, error) {
	var out roadDomain.Road
	res := r.db.WithContext(ctx).Where("osm_way_id = ?", osmWayID).First(&out)
	return &out, res.Error
}

func (r *RoadRepository) ListApproved(ctx context.Context, skip, limit int) ([]roadDomain.Road, error) {
	var out []roadDomain.Road
	res := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *RoadRepository) CountApproved(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&roadDomain.Road{}).Where("approved = ?", true).Count(&n)
	return n, res.Error
}

func (r *RoadRepository) ListPending(ctx context.Context, skip, limit int) ([]roadDomain.Road, error) {
	var out []roadDomain.Road
	res := r.db.WithContext(ctx).
		Where("approved = ?", false).
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *RoadRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&roadDomain.Road{}).Where("approved = ?", false).Count(&n)
	return n, res.Error
}

func (r *RoadRepository) ListApprovedInBBox(ctx context.Context, bbox *roadDomain.BBox, limit int) ([]roadDomain.Road, error) {
	q := r.db.WithContext(ctx).Where("approved = ?", true)
	if bbox != nil {
		q = q.Where("lat >= ? AND lat <= ? AND lng >= ? AND lng <= ?",
			bbox.MinLat, bbox.MaxLat, bbox.MinLng, bbox.MaxLng)
	}
	var out []roadDomain.Road
	res := q.Order("created_at DESC, id DESC").Limit(limit).Find(&out)
	return out, res.Error
}

// DeleteWithFeedback removes the road row and all feedback rows carrying its
// public id in one transaction.
func (r *RoadRepository) DeleteWithFeedback(ctx context.Context, road *roadDomain.Road) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("road_id = ?", road.RoadID).Delete(&roadDomain.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", road.ID).Delete(&roadDomain.Road{}).Error
	})
}
