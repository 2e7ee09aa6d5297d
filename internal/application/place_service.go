package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yourplaces/backend/internal/domain/entity"
	repo "github.com/yourplaces/backend/internal/domain/repository"
	"github.com/yourplaces/backend/pkg/apperr"
)

// PlaceService orchestrates the place lifecycle. Create and Delete touch
// two records (the place and its owner's back-reference list) and do so
// inside one transaction: both writes commit or neither does.
type PlaceService struct {
	Places repo.PlaceRepository
	Users  repo.UserRepository
	Tx     repo.TxManager
	Geo    Geocoder
	Media  MediaCleaner
	Index  PlaceIndexer
	Logger *logrus.Logger
}

func NewPlaceService(places repo.PlaceRepository, users repo.UserRepository, tx repo.TxManager, geo Geocoder, media MediaCleaner, index PlaceIndexer, logger *logrus.Logger) *PlaceService {
	return &PlaceService{Places: places, Users: users, Tx: tx, Geo: geo, Media: media, Index: index, Logger: logger}
}

func (s *PlaceService) ListAll(ctx context.Context) ([]entity.Place, error) {
	places, err := s.Places.GetAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Fetching places failed, please try again later.", err)
	}
	return places, nil
}

func (s *PlaceService) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	p, err := s.Places.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "Could not find a place for the provided id.")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "Something went wrong, could not find a place.", err)
	}
	return p, nil
}

// GetByUser returns the user's places in back-reference order. A user that
// does not exist is NotFound; a user with zero places gets an empty list,
// so the two cases stay distinguishable to callers.
func (s *PlaceService) GetByUser(ctx context.Context, userID string) ([]entity.Place, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Could not find places for the provided user id.")
		}
		return nil, apperr.Wrap(apperr.Store, "Fetching places failed, please try again later.", err)
	}
	places, err := s.Places.GetByCreator(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "Fetching places failed, please try again later.", err)
	}
	return places, nil
}

type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	CreatorID   string
	ImageURL    string
}

// Create geocodes the address, verifies the creator exists, then persists
// the place and the owner's back-reference in one transaction. The caller
// does not have to match CreatorID; only update and delete check ownership.
func (s *PlaceService) Create(ctx context.Context, in CreatePlaceInput) (*entity.Place, error) {
	// Resolve coordinates before the transaction so no lock spans the
	// network call.
	loc, err := s.Geo.Resolve(ctx, in.Address)
	if err != nil {
		return nil, apperr.Wrap(apperr.Geocode, "Failed to fetch coordinates for the address.", err)
	}

	if _, err := s.Users.GetByID(ctx, in.CreatorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Could not find user for provided id.")
		}
		return nil, apperr.Wrap(apperr.Store, "Creating place failed, please try again.", err)
	}

	place := &entity.Place{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Location:    loc,
		ImageURL:    in.ImageURL,
		CreatorID:   in.CreatorID,
	}

	err = s.Tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.Places.Create(txCtx, place); err != nil {
			return err
		}
		return s.Users.AppendPlace(txCtx, in.CreatorID, place.ID)
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Transaction, "Creating place failed, please try again.", err)
	}

	if s.Index != nil {
		_ = s.Index.IndexPlace(ctx, place)
	}
	return place, nil
}

// Update mutates title and description only. The target is loaded first:
// a missing place is NotFound before ownership is ever evaluated.
func (s *PlaceService) Update(ctx context.Context, placeID, title, description, callerID string) (*entity.Place, error) {
	place, err := s.Places.GetByID(ctx, placeID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "Could not find a place for the provided id.")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "Something went wrong, could not update place.", err)
	}

	if place.CreatorID != callerID {
		return nil, apperr.New(apperr.Forbidden, "You are not allowed to edit this place.")
	}

	place.Title = title
	place.Description = description

	if err := s.Places.Update(ctx, place); err != nil {
		return nil, apperr.Wrap(apperr.Store, "Something went wrong, could not update place.", err)
	}

	if s.Index != nil {
		_ = s.Index.IndexPlace(ctx, place)
	}
	return place, nil
}

// Delete removes the place and its id from the owner's list in one
// transaction, then best-effort removes the stored image. Image cleanup
// failures are logged and never fail the operation.
func (s *PlaceService) Delete(ctx context.Context, placeID, callerID string) error {
	place, err := s.Places.GetByID(ctx, placeID)
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.New(apperr.NotFound, "Could not find place for this id.")
	}
	if err != nil {
		return apperr.Wrap(apperr.Store, "Something went wrong, could not find place.", err)
	}

	if place.CreatorID != callerID {
		return apperr.New(apperr.Forbidden, "You are not allowed to delete this place.")
	}

	err = s.Tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.Places.Delete(txCtx, place.ID); err != nil {
			return err
		}
		return s.Users.RemovePlace(txCtx, place.CreatorID, place.ID)
	})
	if err != nil {
		return apperr.Wrap(apperr.Transaction, "Something went wrong, could not delete place.", err)
	}

	if s.Media != nil && place.ImageURL != "" {
		if err := s.Media.Remove(ctx, place.ImageURL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("place_id", place.ID).Warn("image cleanup failed")
		}
	}
	if s.Index != nil {
		_ = s.Index.DeletePlace(ctx, place.ID)
	}
	return nil
}

// Search queries the place index.
func (s *PlaceService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Index == nil {
		return []map[string]any{}, nil
	}
	hits, err := s.Index.SearchPlaces(ctx, q, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Searching places failed, please try again later.", err)
	}
	return hits, nil
}
