package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/container"
	handlers "github.com/oksasatya/event-guestlist-api/internal/interface/http"
	"github.com/oksasatya/event-guestlist-api/internal/interface/middleware"
)

// GroupModule covers groups and the read-only seating tables they
// reference.

type GroupModule struct {
	Groups *handlers.GroupHandler
	Tables *handlers.TableHandler
	Auth   *application.AuthService
}

func NewGroupModule(groups *handlers.GroupHandler, tables *handlers.TableHandler, auth *application.AuthService) *GroupModule {
	return &GroupModule{Groups: groups, Tables: tables, Auth: auth}
}

func (m *GroupModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireIdentity(m.Auth))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIdentity(), nil),
	)
	{
		auth.GET("/groups", m.Groups.List)
		auth.POST("/groups", m.Groups.Create)
		auth.PUT("/groups/:id", m.Groups.Update)

		auth.GET("/tables", m.Tables.List)
		auth.GET("/tables/:id", m.Tables.GetByID)
	}
}
