package osmmock

import (
	"context"

	domain "roadwatch/internal/domain/road"
)

// Gateway is a function-backed mock for the OSM collaborator port.
type Gateway struct {
	SearchRoadsByNameFn func(ctx context.Context, name string, lat, lng float64, radiusMeters int) ([]domain.Way, error)
	GetWayByIDFn        func(ctx context.Context, wayID string) (*domain.Way, error)
}

func (m *Gateway) SearchRoadsByName(ctx context.Context, name string, lat, lng float64, radiusMeters int) ([]domain.Way, error) {
	if m.SearchRoadsByNameFn != nil {
		return m.SearchRoadsByNameFn(ctx, name, lat, lng, radiusMeters)
	}
	return nil, nil
}

func (m *Gateway) GetWayByID(ctx context.Context, wayID string) (*domain.Way, error) {
	if m.GetWayByIDFn != nil {
		return m.GetWayByIDFn(ctx, wayID)
	}
	return nil, domain.ErrWayNotFound
}

// BlobStore is a function-backed mock for the image store port.
type BlobStore struct {
	PutFn    func(ctx context.Context, data []byte, name, contentType string) (string, error)
	DeleteFn func(ctx context.Context, publicURL string) bool
}

func (m *BlobStore) Put(ctx context.Context, data []byte, name, contentType string) (string, error) {
	if m.PutFn != nil {
		return m.PutFn(ctx, data, name, contentType)
	}
	return "https://cdn.example.test/" + name, nil
}

func (m *BlobStore) Delete(ctx context.Context, publicURL string) bool {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, publicURL)
	}
	return true
}
