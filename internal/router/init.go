package router

import (
	"github.com/yourplaces/backend/internal/application"
	"github.com/yourplaces/backend/internal/container"
	"github.com/yourplaces/backend/internal/infrastructure/geocode"
	"github.com/yourplaces/backend/internal/infrastructure/media"
	pginfra "github.com/yourplaces/backend/internal/infrastructure/postgres"
	"github.com/yourplaces/backend/internal/infrastructure/search"
	handlers "github.com/yourplaces/backend/internal/interface/http"
	"github.com/yourplaces/backend/internal/router/modules"
)

// InitModules builds all application modules from container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	placeRepo := pginfra.NewPlaceRepository(pool)
	txManager := pginfra.NewTxManager(pool)

	mediaStore := media.NewStore(container.GetGCS(), cfg.GCSBucket)
	cleaner := media.NewCleaner(container.GetRabbitPub(), mediaStore, logger)

	geocoder := geocode.NewCachedResolver(
		geocode.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey),
		container.GetRedis(),
		cfg.GeocodeCacheTTL,
		logger,
	)

	placeIndex := search.NewPlaceIndex(container.GetES(), cfg.ESPlacesIndex, logger)

	placeSvc := application.NewPlaceService(placeRepo, userRepo, txManager, geocoder, cleaner, placeIndex, logger)
	userSvc := application.NewUserService(userRepo, container.GetJWT(), logger)

	placeHandler := handlers.NewPlaceHandler(placeSvc, mediaStore, logger)
	userHandler := handlers.NewUserHandler(userSvc, mediaStore, logger)

	r.Add(modules.NewPlaceModule(placeHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler))
}
