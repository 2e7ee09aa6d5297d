package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/internal/container"
	handlers "github.com/yourplaces/backend/internal/interface/http"
	"github.com/yourplaces/backend/internal/interface/middleware"
	"github.com/yourplaces/backend/pkg/helpers"
)

// PlaceModule wires place HTTP handlers into routes.
// Public:    GET /api/places, GET /api/places/search,
//            GET /api/places/:pid, GET /api/places/user/:uid
// Protected: POST /api/places, PATCH /api/places/:pid, DELETE /api/places/:pid
type PlaceModule struct {
	Handler *handlers.PlaceHandler
	JWT     *helpers.JWTManager
}

func NewPlaceModule(h *handlers.PlaceHandler, jwt *helpers.JWTManager) *PlaceModule {
	return &PlaceModule{Handler: h, JWT: jwt}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	places := rg.Group("/places")

	places.GET("", m.Handler.GetAll)
	places.GET("/search", m.Handler.Search)
	places.GET("/user/:uid", m.Handler.GetByUser)
	places.GET("/:pid", m.Handler.GetByID)

	// Mutations require a verified identity; ownership is checked in the
	// service for update and delete.
	auth := places.Group("")
	auth.Use(middleware.BearerAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("", m.Handler.Create)
		auth.PATCH("/:pid", m.Handler.Update)
		auth.DELETE("/:pid", m.Handler.Delete)
	}
}
