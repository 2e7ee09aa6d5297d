package repository

import (
	"context"

	"github.com/yourplaces/backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// AppendPlace and RemovePlace maintain the owner's back-reference list and
// are only called inside a transaction started by TxManager.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	AppendPlace(ctx context.Context, userID, placeID string) error
	RemovePlace(ctx context.Context, userID, placeID string) error
}
