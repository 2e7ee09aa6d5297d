package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourplaces/backend/internal/domain/entity"
	"github.com/yourplaces/backend/internal/domain/repository"
)

// In-memory repositories for exercising handlers through real services.

type fakeUsers struct {
	byID map[string]*entity.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*entity.User{}}
}

func (f *fakeUsers) add(u *entity.User) *entity.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Places == nil {
		u.Places = []string{}
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	for _, ex := range f.byID {
		if ex.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	f.add(u)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetAll(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) AppendPlace(_ context.Context, userID, placeID string) error {
	u, ok := f.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Places = append(u.Places, placeID)
	return nil
}

func (f *fakeUsers) RemovePlace(_ context.Context, userID, placeID string) error {
	u, ok := f.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := u.Places[:0]
	for _, id := range u.Places {
		if id != placeID {
			kept = append(kept, id)
		}
	}
	u.Places = kept
	return nil
}

type fakePlaces struct {
	byID  map[string]*entity.Place
	users *fakeUsers
}

func newFakePlaces(users *fakeUsers) *fakePlaces {
	return &fakePlaces{byID: map[string]*entity.Place{}, users: users}
}

func (f *fakePlaces) Create(_ context.Context, p *entity.Place) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlaces) GetByID(_ context.Context, id string) (*entity.Place, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaces) GetAll(_ context.Context) ([]entity.Place, error) {
	out := make([]entity.Place, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlaces) GetByCreator(_ context.Context, userID string) ([]entity.Place, error) {
	u, ok := f.users.byID[userID]
	if !ok {
		return []entity.Place{}, nil
	}
	out := make([]entity.Place, 0, len(u.Places))
	for _, id := range u.Places {
		if p, ok := f.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlaces) Update(_ context.Context, p *entity.Place) error {
	if _, ok := f.byID[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlaces) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeTx runs fn directly; handler tests do not exercise rollback, the
// service tests cover that.
type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedGeo struct {
	loc entity.Location
}

func (g fixedGeo) Resolve(_ context.Context, _ string) (entity.Location, error) {
	return g.loc, nil
}
