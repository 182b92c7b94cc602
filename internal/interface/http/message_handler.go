package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/pkg/response"
	"github.com/oksasatya/event-guestlist-api/pkg/validation"
)

type MessageHandler struct {
	Svc    *application.MessageService
	Logger *logrus.Logger
}

func NewMessageHandler(svc *application.MessageService, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{Svc: svc, Logger: logger}
}

type createMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// ListByUser GET /api/messages/:user_id?p=1&pp=30
func (h *MessageHandler) ListByUser(c *gin.Context) {
	userID := c.Param("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}
	page, _ := strconv.Atoi(c.Query("p"))
	perPage, _ := strconv.Atoi(c.Query("pp"))

	msgs, err := h.Svc.ListForUser(c.Request.Context(), userID, page, perPage)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Invalid(c, "User not found")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", userID).Error("list messages failed")
		}
		response.ServerError(c, "")
		return
	}

	out := make([]gin.H, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, gin.H{
			"id":         m.ID,
			"user_id":    m.UserID,
			"body":       m.Body,
			"created_at": m.CreatedAt,
		})
	}
	response.Success(c, "Success", out)
}

// Create POST /api/messages/:user_id
// Open to invitees leaving a note, so the target user comes from the
// path instead of the caller identity.
func (h *MessageHandler) Create(c *gin.Context) {
	userID := c.Param("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return
	}

	m, err := h.Svc.Create(c.Request.Context(), userID, req.Body)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Invalid(c, "User not found")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("create message failed")
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", gin.H{
		"id":         m.ID,
		"user_id":    m.UserID,
		"body":       m.Body,
		"created_at": m.CreatedAt,
	})
}
