package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourplaces/backend/internal/domain/entity"
	"github.com/yourplaces/backend/internal/domain/repository"
)

type PlaceRepository struct {
	pool *pgxpool.Pool
}

func NewPlaceRepository(pool *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{pool: pool}
}

func scanPlace(row pgx.Row, p *entity.Place) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Location.Lat, &p.Location.Lng, &p.ImageURL, &p.CreatorID,
		&p.CreatedAt, &p.UpdatedAt)
}

const placeColumns = `id, title, description, address, lat, lng, image_url, creator, created_at, updated_at`

func (r *PlaceRepository) Create(ctx context.Context, p *entity.Place) error {
	row := querierFrom(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO places (title, description, address, lat, lng, image_url, creator)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.Address, p.Location.Lat, p.Location.Lng, p.ImageURL, p.CreatorID)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	p := &entity.Place{}

	row := querierFrom(ctx, r.pool).QueryRow(ctx,
		`SELECT `+placeColumns+` FROM places WHERE id = $1`, id)

	if err := scanPlace(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PlaceRepository) GetAll(ctx context.Context) ([]entity.Place, error) {
	rows, err := querierFrom(ctx, r.pool).Query(ctx,
		`SELECT `+placeColumns+` FROM places ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPlaces(rows)
}

// GetByCreator resolves places through the owner's back-reference list so
// the caller sees them in list order, not insertion order.
func (r *PlaceRepository) GetByCreator(ctx context.Context, userID string) ([]entity.Place, error) {
	rows, err := querierFrom(ctx, r.pool).Query(ctx, `
		SELECT p.id, p.title, p.description, p.address, p.lat, p.lng, p.image_url, p.creator, p.created_at, p.updated_at
		FROM users u
		JOIN LATERAL unnest(u.place_ids) WITH ORDINALITY AS ref(place_id, ord) ON true
		JOIN places p ON p.id = ref.place_id
		WHERE u.id = $1
		ORDER BY ref.ord
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPlaces(rows)
}

func (r *PlaceRepository) Update(ctx context.Context, p *entity.Place) error {
	p.UpdatedAt = time.Now()

	res, err := querierFrom(ctx, r.pool).Exec(ctx, `
		UPDATE places
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4
	`, p.Title, p.Description, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	res, err := querierFrom(ctx, r.pool).Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectPlaces(rows pgx.Rows) ([]entity.Place, error) {
	places := []entity.Place{}
	for rows.Next() {
		var p entity.Place
		if err := scanPlace(rows, &p); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)
