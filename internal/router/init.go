package router

import (
	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/container"
	pginfra "github.com/oksasatya/event-guestlist-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/event-guestlist-api/internal/interface/http"
	"github.com/oksasatya/event-guestlist-api/internal/router/modules"
	"github.com/oksasatya/event-guestlist-api/pkg/events"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(pool)
	guestRepo := pginfra.NewGuestRepository(pool)
	groupRepo := pginfra.NewGroupRepository(pool)
	tableRepo := pginfra.NewTableRepository(pool)
	messageRepo := pginfra.NewMessageRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger)
	userSvc := application.NewUserService(userRepo, logger)
	guestPub := events.NewGuestPublisher(container.GetRabbitPub(), logger)
	guestSvc := application.NewGuestService(guestRepo, guestPub, container.GetES(), cfg.ESGuestsIndex, logger)
	groupSvc := application.NewGroupService(groupRepo, guestRepo, logger)
	messageSvc := application.NewMessageService(messageRepo, userRepo)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), authSvc))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), authSvc))
	r.Add(modules.NewGuestModule(handlers.NewGuestHandler(guestSvc, logger), authSvc))
	r.Add(modules.NewGroupModule(
		handlers.NewGroupHandler(groupSvc, logger),
		handlers.NewTableHandler(tableRepo, logger),
		authSvc,
	))
	r.Add(modules.NewMessageModule(handlers.NewMessageHandler(messageSvc, logger), authSvc))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
