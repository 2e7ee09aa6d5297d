package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourplaces/backend/internal/domain/entity"
	"github.com/yourplaces/backend/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := querierFrom(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, place_ids, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.ImageURL)

	if err := row.Scan(&u.ID, &u.Places, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u := &entity.User{}

	row := querierFrom(ctx, r.pool).QueryRow(ctx, `
		SELECT id, name, email, password_hash, image_url, place_ids, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ImageURL,
		&u.Places, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}

	row := querierFrom(ctx, r.pool).QueryRow(ctx, `
		SELECT id, name, email, password_hash, image_url, place_ids, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ImageURL,
		&u.Places, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	rows, err := querierFrom(ctx, r.pool).Query(ctx, `
		SELECT id, name, email, password_hash, image_url, place_ids, created_at, updated_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []entity.User{}
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ImageURL,
			&u.Places, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// AppendPlace adds placeID to the owner's back-reference list. The UPDATE
// takes a row lock, so concurrent creates against the same owner serialize
// in the store rather than losing appends.
func (r *UserRepository) AppendPlace(ctx context.Context, userID, placeID string) error {
	res, err := querierFrom(ctx, r.pool).Exec(ctx, `
		UPDATE users
		SET place_ids = array_append(place_ids, $2::uuid), updated_at = now()
		WHERE id = $1
	`, userID, placeID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) RemovePlace(ctx context.Context, userID, placeID string) error {
	res, err := querierFrom(ctx, r.pool).Exec(ctx, `
		UPDATE users
		SET place_ids = array_remove(place_ids, $2::uuid), updated_at = now()
		WHERE id = $1
	`, userID, placeID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
