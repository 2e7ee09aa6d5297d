package application

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourplaces/backend/internal/domain/entity"
	"github.com/yourplaces/backend/pkg/apperr"
)

type placeFixture struct {
	store   *memStore
	geo     *stubGeocoder
	cleaner *stubCleaner
	indexer *stubIndexer
	svc     *PlaceService
}

func newPlaceFixture() *placeFixture {
	store := newMemStore()
	geo := &stubGeocoder{loc: entity.Location{Lat: 40.7484, Lng: -73.9878}}
	cleaner := &stubCleaner{}
	indexer := &stubIndexer{}
	logger := logrus.New()

	svc := NewPlaceService(
		&fakePlaceRepo{s: store},
		&fakeUserRepo{s: store},
		&fakeTxManager{s: store},
		geo, cleaner, indexer, logger,
	)
	return &placeFixture{store: store, geo: geo, cleaner: cleaner, indexer: indexer, svc: svc}
}

func TestCreatePlace(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{
		Title:       "Empire State Building",
		Description: "One of the most famous sky scrapers in the world!",
		Address:     "20 W 34th St, New York, NY",
		CreatorID:   "u1",
		ImageURL:    "https://storage.googleapis.com/b/places/esb.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", place.CreatorID)
	assert.Equal(t, entity.Location{Lat: 40.7484, Lng: -73.9878}, place.Location)

	// Owner's back-reference list grows from 0 to 1 and contains the new
	// id exactly once.
	owner := fx.store.users["u1"]
	require.Len(t, owner.Places, 1)
	assert.Equal(t, place.ID, owner.Places[0])

	assert.Contains(t, fx.indexer.indexed, place.ID)
}

func TestCreatePlaceGeocodeFailureWritesNothing(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	fx.geo.fail = true

	_, err := fx.svc.Create(context.Background(), CreatePlaceInput{
		Title: "X", Description: "Y", Address: "unresolvable", CreatorID: "u1",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Geocode, apperr.KindOf(err))

	assert.Empty(t, fx.store.places)
	assert.Empty(t, fx.store.users["u1"].Places)
}

func TestCreatePlaceUnknownCreator(t *testing.T) {
	fx := newPlaceFixture()

	_, err := fx.svc.Create(context.Background(), CreatePlaceInput{
		Title: "X", Description: "Y", Address: "somewhere", CreatorID: "ghost",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Empty(t, fx.store.places)
}

func TestCreatePlaceRollbackOnAppendFailure(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	fx.store.failAppendPlace = true

	_, err := fx.svc.Create(context.Background(), CreatePlaceInput{
		Title: "X", Description: "Y", Address: "somewhere", CreatorID: "u1",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Transaction, apperr.KindOf(err))

	// Rolled back as a unit: no place persisted, owner list untouched.
	assert.Empty(t, fx.store.places)
	assert.Empty(t, fx.store.users["u1"].Places)
}

func TestDeletePlace(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{
		Title: "ESB", Description: "tall", Address: "NYC", CreatorID: "u1",
		ImageURL: "https://storage.googleapis.com/b/places/esb.jpg",
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete(ctx, place.ID, "u1"))

	_, ok := fx.store.places[place.ID]
	assert.False(t, ok)
	assert.Empty(t, fx.store.users["u1"].Places)
	assert.Equal(t, []string{place.ImageURL}, fx.cleaner.removed)
	assert.Contains(t, fx.indexer.deleted, place.ID)
}

func TestDeletePlaceTwice(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{
		Title: "ESB", Description: "tall", Address: "NYC", CreatorID: "u1",
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete(ctx, place.ID, "u1"))

	err = fx.svc.Delete(ctx, place.ID, "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeletePlaceByNonOwner(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	fx.store.addUser("u2", "Julie Jones", "julie@test.com")
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{
		Title: "ESB", Description: "tall", Address: "NYC", CreatorID: "u1",
	})
	require.NoError(t, err)

	err = fx.svc.Delete(ctx, place.ID, "u2")
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Store unchanged.
	_, ok := fx.store.places[place.ID]
	assert.True(t, ok)
	assert.Equal(t, []string{place.ID}, fx.store.users["u1"].Places)
}

func TestDeletePlaceRollbackOnRemoveFailure(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{
		Title: "ESB", Description: "tall", Address: "NYC", CreatorID: "u1",
	})
	require.NoError(t, err)

	fx.store.failRemovePlace = true
	err = fx.svc.Delete(ctx, place.ID, "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.Transaction, apperr.KindOf(err))

	// Both or neither: the place is still there and so is the reference.
	_, ok := fx.store.places[place.ID]
	assert.True(t, ok)
	assert.Equal(t, []string{place.ID}, fx.store.users["u1"].Places)
	assert.Empty(t, fx.cleaner.removed)
}

func TestDeletePlaceCleanupFailureDoesNotFail(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	fx.cleaner.fail = true
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{
		Title: "ESB", Description: "tall", Address: "NYC", CreatorID: "u1",
		ImageURL: "https://storage.googleapis.com/b/places/esb.jpg",
	})
	require.NoError(t, err)

	// Cleanup is best-effort: the delete still succeeds.
	require.NoError(t, fx.svc.Delete(ctx, place.ID, "u1"))
	_, ok := fx.store.places[place.ID]
	assert.False(t, ok)
}

func TestUpdatePlace(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{
		Title: "ESB", Description: "tall", Address: "NYC", CreatorID: "u1",
	})
	require.NoError(t, err)

	updated, err := fx.svc.Update(ctx, place.ID, "New title", "New description", "u1")
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "New description", updated.Description)
	// Everything else is immutable under update.
	assert.Equal(t, place.Address, updated.Address)
	assert.Equal(t, place.Location, updated.Location)
	assert.Equal(t, place.CreatorID, updated.CreatorID)
}

func TestUpdatePlaceByNonOwnerLeavesPlaceUnchanged(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{
		Title: "ESB", Description: "tall", Address: "NYC", CreatorID: "u1",
	})
	require.NoError(t, err)

	before := *fx.store.places[place.ID]

	_, err = fx.svc.Update(ctx, place.ID, "hijacked", "hijacked", "u2")
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	after := *fx.store.places[place.ID]
	assert.Equal(t, before, after)
}

func TestUpdatePlaceMissing(t *testing.T) {
	fx := newPlaceFixture()

	// NotFound wins over Forbidden for a nonexistent target.
	_, err := fx.svc.Update(context.Background(), "nope", "t", "d", "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestGetByUser(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	fx.store.addUser("u2", "Julie Jones", "julie@test.com")
	ctx := context.Background()

	p1, err := fx.svc.Create(ctx, CreatePlaceInput{Title: "A", Description: "a", Address: "NYC", CreatorID: "u1"})
	require.NoError(t, err)
	p2, err := fx.svc.Create(ctx, CreatePlaceInput{Title: "B", Description: "b", Address: "NYC", CreatorID: "u1"})
	require.NoError(t, err)

	places, err := fx.svc.GetByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, p1.ID, places[0].ID)
	assert.Equal(t, p2.ID, places[1].ID)

	// Existing user with zero places: empty list, not an error.
	places, err = fx.svc.GetByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, places)

	// Nonexistent user: NotFound.
	_, err = fx.svc.GetByUser(ctx, "ghost")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestGetByID(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	ctx := context.Background()

	place, err := fx.svc.Create(ctx, CreatePlaceInput{Title: "A", Description: "a", Address: "NYC", CreatorID: "u1"})
	require.NoError(t, err)

	got, err := fx.svc.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, place.ID, got.ID)

	_, err = fx.svc.GetByID(ctx, "nope")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestListAll(t *testing.T) {
	fx := newPlaceFixture()
	fx.store.addUser("u1", "Max Schwarz", "max@test.com")
	ctx := context.Background()

	_, err := fx.svc.Create(ctx, CreatePlaceInput{Title: "A", Description: "a", Address: "NYC", CreatorID: "u1"})
	require.NoError(t, err)

	places, err := fx.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, places, 1)
}
