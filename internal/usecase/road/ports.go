package road

import (
	"context"

	domain "roadwatch/internal/domain/road"
)

// OSMGateway is the OpenStreetMap query collaborator. Implementations map
// provider failures to domain.ErrUpstream and a missing way to
// domain.ErrWayNotFound.
type OSMGateway interface {
	SearchRoadsByName(ctx context.Context, name string, lat, lng float64, radiusMeters int) ([]domain.Way, error)
	GetWayByID(ctx context.Context, wayID string) (*domain.Way, error)
}

// BlobStore stores image bytes and returns a public URL. Delete never
// propagates an error; it reports success so callers can log and move on.
type BlobStore interface {
	Put(ctx context.Context, data []byte, name, contentType string) (string, error)
	Delete(ctx context.Context, publicURL string) bool
}
