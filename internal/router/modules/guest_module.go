package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/container"
	handlers "github.com/oksasatya/event-guestlist-api/internal/interface/http"
	"github.com/oksasatya/event-guestlist-api/internal/interface/middleware"
)

type GuestModule struct {
	Handler *handlers.GuestHandler
	Auth    *application.AuthService
}

func NewGuestModule(h *handlers.GuestHandler, auth *application.AuthService) *GuestModule {
	return &GuestModule{Handler: h, Auth: auth}
}

func (m *GuestModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireIdentity(m.Auth))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIdentity(), nil),
	)
	{
		auth.GET("/guests", m.Handler.List)
		auth.GET("/guests/:id", m.Handler.GetByID)
		auth.POST("/guests", m.Handler.Create)
		auth.PUT("/guests/:id", m.Handler.Update)
		auth.DELETE("/guests/:id", m.Handler.Delete)
		// Search guests via Elasticsearch
		auth.GET("/guests/search", m.Handler.Search)
	}
}
