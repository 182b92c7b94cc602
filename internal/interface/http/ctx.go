package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/interface/middleware"
)

func identityFrom(c *gin.Context) *application.Identity {
	return middleware.IdentityFrom(c)
}
