package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yourplaces/backend/internal/domain/entity"
	repo "github.com/yourplaces/backend/internal/domain/repository"
)

// memStore backs the fake repositories. The fake tx manager snapshots it
// before running a transaction body and restores it on error, which gives
// tests real rollback semantics without a database.
type memStore struct {
	users  map[string]*entity.User
	places map[string]*entity.Place
	seq    int

	failPlaceCreate bool
	failPlaceDelete bool
	failAppendPlace bool
	failRemovePlace bool
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]*entity.User{},
		places: map[string]*entity.Place{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

func (m *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.seq = m.seq
	for id, u := range m.users {
		uu := *u
		uu.Places = append([]string{}, u.Places...)
		cp.users[id] = &uu
	}
	for id, p := range m.places {
		pp := *p
		cp.places[id] = &pp
	}
	return cp
}

func (m *memStore) restore(snap *memStore) {
	m.users = snap.users
	m.places = snap.places
	m.seq = snap.seq
}

func (m *memStore) addUser(id, name, email string) *entity.User {
	u := &entity.User{ID: id, Name: name, Email: email, Places: []string{}}
	m.users[id] = u
	return u
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = r.s.nextID("u")
	cp := *u
	cp.Places = append([]string{}, u.Places...)
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	cp.Places = append([]string{}, u.Places...)
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			cp.Places = append([]string{}, u.Places...)
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]entity.User, error) {
	ids := make([]string, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]entity.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.s.users[id])
	}
	return out, nil
}

func (r *fakeUserRepo) AppendPlace(_ context.Context, userID, placeID string) error {
	if r.s.failAppendPlace {
		return errors.New("forced append failure")
	}
	u, ok := r.s.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.Places = append(u.Places, placeID)
	return nil
}

func (r *fakeUserRepo) RemovePlace(_ context.Context, userID, placeID string) error {
	if r.s.failRemovePlace {
		return errors.New("forced remove failure")
	}
	u, ok := r.s.users[userID]
	if !ok {
		return repo.ErrNotFound
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

type fakePlaceRepo struct{ s *memStore }

func (r *fakePlaceRepo) Create(_ context.Context, p *entity.Place) error {
	if r.s.failPlaceCreate {
		return errors.New("forced create failure")
	}
	p.ID = r.s.nextID("p")
	cp := *p
	r.s.places[p.ID] = &cp
	return nil
}

func (r *fakePlaceRepo) GetByID(_ context.Context, id string) (*entity.Place, error) {
	p, ok := r.s.places[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlaceRepo) GetAll(_ context.Context) ([]entity.Place, error) {
	ids := make([]string, 0, len(r.s.places))
	for id := range r.s.places {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]entity.Place, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.s.places[id])
	}
	return out, nil
}

func (r *fakePlaceRepo) GetByCreator(_ context.Context, userID string) ([]entity.Place, error) {
	u, ok := r.s.users[userID]
	if !ok {
		return []entity.Place{}, nil
	}
	out := []entity.Place{}
	for _, pid := range u.Places {
		if p, ok := r.s.places[pid]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlaceRepo) Update(_ context.Context, p *entity.Place) error {
	stored, ok := r.s.places[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	return nil
}

func (r *fakePlaceRepo) Delete(_ context.Context, id string) error {
	if r.s.failPlaceDelete {
		return errors.New("forced delete failure")
	}
	if _, ok := r.s.places[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.places, id)
	return nil
}

type fakeTxManager struct{ s *memStore }

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.s.snapshot()
	if err := fn(ctx); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

type stubGeocoder struct {
	loc  entity.Location
	fail bool
}

func (g *stubGeocoder) Resolve(context.Context, string) (entity.Location, error) {
	if g.fail {
		return entity.Location{}, errors.New("ZERO_RESULTS")
	}
	return g.loc, nil
}

type stubCleaner struct {
	removed []string
	fail    bool
}

func (c *stubCleaner) Remove(_ context.Context, ref string) error {
	if c.fail {
		return errors.New("forced cleanup failure")
	}
	c.removed = append(c.removed, ref)
	return nil
}

type stubIndexer struct {
	indexed []string
	deleted []string
	hits    []map[string]any
}

func (i *stubIndexer) IndexPlace(_ context.Context, p *entity.Place) error {
	i.indexed = append(i.indexed, p.ID)
	return nil
}

func (i *stubIndexer) DeletePlace(_ context.Context, id string) error {
	i.deleted = append(i.deleted, id)
	return nil
}

func (i *stubIndexer) SearchPlaces(context.Context, string, int) ([]map[string]any, error) {
	return i.hits, nil
}
