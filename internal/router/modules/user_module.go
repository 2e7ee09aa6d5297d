package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/internal/container"
	handlers "github.com/yourplaces/backend/internal/interface/http"
	"github.com/yourplaces/backend/internal/interface/middleware"
)

// UserModule wires user HTTP handlers into routes.
// Public: GET /api/users, POST /api/users/signup, POST /api/users/login
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits.
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	users.GET("", m.Handler.GetUsers)
	users.POST("/signup", signupLimiter, m.Handler.Signup)
	users.POST("/login", loginLimiter, m.Handler.Login)
}
