package repository

import (
	"context"

	"github.com/yourplaces/backend/internal/domain/entity"
)

// PlaceRepository defines the interface for place-related database operations.
type PlaceRepository interface {
	Create(ctx context.Context, p *entity.Place) error
	GetByID(ctx context.Context, id string) (*entity.Place, error)
	GetAll(ctx context.Context) ([]entity.Place, error)
	// GetByCreator returns the creator's places in back-reference order.
	GetByCreator(ctx context.Context, userID string) ([]entity.Place, error)
	Update(ctx context.Context, p *entity.Place) error
	Delete(ctx context.Context, id string) error
}
