package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourplaces/backend/internal/domain/entity"
	repo "github.com/yourplaces/backend/internal/domain/repository"
	"github.com/yourplaces/backend/pkg/apperr"
	"github.com/yourplaces/backend/pkg/helpers"
)

// UserService handles signup, login, and user listing. Tokens are
// stateless: nothing about a session is stored server-side.
type UserService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, JWT: jwt, Logger: logger}
}

// AuthResult is what signup and login hand back to the HTTP layer.
type AuthResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user with a hashed password and an empty places list.
// Email uniqueness is checked here and again enforced by the store's
// unique constraint, so a racing duplicate still maps to Conflict.
func (s *UserService) Signup(ctx context.Context, name, email, password, imageURL string) (*AuthResult, error) {
	email = normalizeEmail(email)

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.Conflict, "Could not create user, email already exists.")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.Wrap(apperr.Store, "Signing up failed, please try again later.", err)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "Could not create user, please try again.", err)
	}

	u := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		ImageURL:     imageURL,
		Places:       []string{},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Could not create user, email already exists.")
		}
		return nil, apperr.Wrap(apperr.Store, "Signing up failed, please try again later.", err)
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, apperr.Wrap(apperr.Store, "Signing up failed, please try again later.", err)
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller; bcrypt keeps the hash
// comparison constant-time.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.New(apperr.Unauthorized, "Could not identify user, credentials seem to be wrong.")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "Logging in failed, please try again later.", err)
	}

	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, apperr.New(apperr.Unauthorized, "Could not identify user, credentials seem to be wrong.")
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, apperr.Wrap(apperr.Store, "Logging in failed, please try again later.", err)
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// ListUsers returns every user. Password hashes stay out of the JSON
// encoding at the entity level.
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.GetAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Fetching users failed, please try again later.", err)
	}
	return users, nil
}
