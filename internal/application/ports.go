package application

import (
	"context"

	"github.com/yourplaces/backend/internal/domain/entity"
)

// Geocoder resolves a postal address to coordinates. Resolution happens
// before any transaction is opened so geocoder latency never holds locks.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (entity.Location, error)
}

// MediaCleaner removes a stored media object. Invoked only after a delete
// transaction has committed; failures are logged, never propagated.
type MediaCleaner interface {
	Remove(ctx context.Context, ref string) error
}

// PlaceIndexer mirrors places into the search index. Best-effort.
type PlaceIndexer interface {
	IndexPlace(ctx context.Context, p *entity.Place) error
	DeletePlace(ctx context.Context, id string) error
	SearchPlaces(ctx context.Context, q string, size int) ([]map[string]any, error)
}
