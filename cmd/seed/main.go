package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourplaces/backend/config"
	"github.com/yourplaces/backend/internal/application"
	"github.com/yourplaces/backend/internal/domain/entity"
	pginfra "github.com/yourplaces/backend/internal/infrastructure/postgres"
	"github.com/yourplaces/backend/pkg/apperr"
	"github.com/yourplaces/backend/pkg/helpers"
)

// fixedGeocoder returns a pre-resolved location so seeding needs no
// network access or API key.
type fixedGeocoder struct {
	loc entity.Location
}

func (g fixedGeocoder) Resolve(_ context.Context, _ string) (entity.Location, error) {
	return g.loc, nil
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	userRepo := pginfra.NewUserRepository(pool)
	placeRepo := pginfra.NewPlaceRepository(pool)
	txManager := pginfra.NewTxManager(pool)

	userSvc := application.NewUserService(userRepo, helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL), logger)

	res, err := userSvc.Signup(ctx, "Max Schwarz", "max@test.com", "testers",
		"https://upload.wikimedia.org/wikipedia/commons/thumb/d/d6/Max_schwarz.jpg/640px-Max_schwarz.jpg")
	if err != nil {
		if apperr.KindOf(err) == apperr.Conflict {
			logger.Info("seed user already exists, nothing to do")
			return
		}
		log.Fatalf("seeding user failed: %v", err)
	}
	logger.Infof("seeded user %s (%s)", res.User.Name, res.User.ID)

	geo := fixedGeocoder{loc: entity.Location{Lat: 40.7484405, Lng: -73.9878531}}
	placeSvc := application.NewPlaceService(placeRepo, userRepo, txManager, geo, nil, nil, logger)

	place, err := placeSvc.Create(ctx, application.CreatePlaceInput{
		Title:       "Empire State Building",
		Description: "One of the most famous sky scrapers in the world!",
		Address:     "20 W 34th St, New York, NY 10118, United States",
		CreatorID:   res.User.ID,
		ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/d/df/NYC_Empire_State_Building.jpg/640px-NYC_Empire_State_Building.jpg",
	})
	if err != nil {
		log.Fatalf("seeding place failed: %v", err)
	}
	logger.Infof("seeded place %s (%s)", place.Title, place.ID)

	// Sanity check the back-reference list written by the transaction.
	owner, err := userRepo.GetByID(ctx, res.User.ID)
	if err != nil {
		log.Fatalf("verifying seed failed: %v", err)
	}
	logger.Infof("owner now holds %d place(s)", len(owner.Places))
}
