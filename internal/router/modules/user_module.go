package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/container"
	handlers "github.com/oksasatya/event-guestlist-api/internal/interface/http"
	"github.com/oksasatya/event-guestlist-api/internal/interface/middleware"
)

// UserModule wires user HTTP handlers.
// Public: POST /api/users (registration; accounts start unapproved)
// Protected: GET /api/users/:id, DELETE /api/users/:id

type UserModule struct {
	Handler *handlers.UserHandler
	Auth    *application.AuthService
}

func NewUserModule(h *handlers.UserHandler, auth *application.AuthService) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public registration; the soft gate records who created the account
	// when an operator is signed in.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/users", registerLimiter, middleware.OptionalIdentity(m.Auth), m.Handler.Create)

	auth := rg.Group("/")
	auth.Use(middleware.RequireIdentity(m.Auth))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIdentity(), nil),
	)
	{
		auth.GET("/users/:id", m.Handler.GetByID)
		auth.DELETE("/users/:id", m.Handler.Delete)
	}
}
