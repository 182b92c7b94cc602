package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/container"
	handlers "github.com/oksasatya/event-guestlist-api/internal/interface/http"
	"github.com/oksasatya/event-guestlist-api/internal/interface/middleware"
)

type MessageModule struct {
	Handler *handlers.MessageHandler
	Auth    *application.AuthService
}

func NewMessageModule(h *handlers.MessageHandler, auth *application.AuthService) *MessageModule {
	return &MessageModule{Handler: h, Auth: auth}
}

func (m *MessageModule) Register(rg *gin.RouterGroup) {
	// Public create so invitees can leave a note without an account.
	// Soft identity gate attaches the caller when a token is present.
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/messages/:user_id", createLimiter, middleware.OptionalIdentity(m.Auth), m.Handler.Create)

	auth := rg.Group("/")
	auth.Use(middleware.RequireIdentity(m.Auth))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIdentity(), nil))
	{
		auth.GET("/messages/:user_id", m.Handler.ListByUser)
	}
}
