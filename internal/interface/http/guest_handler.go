package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/response"
	"github.com/oksasatya/event-guestlist-api/pkg/validation"
)

type GuestHandler struct {
	Svc    *application.GuestService
	Logger *logrus.Logger
}

func NewGuestHandler(svc *application.GuestService, logger *logrus.Logger) *GuestHandler {
	return &GuestHandler{Svc: svc, Logger: logger}
}

type listGuestsQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
	SortBy string `form:"sort_by"`

	Assist           *bool `form:"assist"`
	AnswerInvitation *bool `form:"answer_invitation"`
	SawInvitation    *bool `form:"saw_invitation"`
	AnswerSD         *bool `form:"answer_sd"`
	SawSD            *bool `form:"saw_sd"`
}

type createGuestRequest struct {
	FirstName        string `json:"first_name" binding:"required"`
	MiddleName       string `json:"middle_name"`
	LastName         string `json:"last_name" binding:"required"`
	PhoneNumber      string `json:"phone_number" binding:"required"`
	Assist           bool   `json:"assist"`
	AnswerInvitation bool   `json:"answer_invitation"`
	SawInvitation    bool   `json:"saw_invitation"`
	AnswerSD         bool   `json:"answer_sd"`
	SawSD            bool   `json:"saw_sd"`
}

type updateGuestRequest struct {
	FirstName        *string `json:"first_name"`
	MiddleName       *string `json:"middle_name"`
	LastName         *string `json:"last_name"`
	PhoneNumber      *string `json:"phone_number"`
	Assist           *bool   `json:"assist"`
	AnswerInvitation *bool   `json:"answer_invitation"`
	SawInvitation    *bool   `json:"saw_invitation"`
	AnswerSD         *bool   `json:"answer_sd"`
	SawSD            *bool   `json:"saw_sd"`
	TableID          *string `json:"table_id"`
}

func guestJSON(g *entity.Guest) gin.H {
	return gin.H{
		"id":                g.ID,
		"first_name":        g.FirstName,
		"middle_name":       g.MiddleName,
		"last_name":         g.LastName,
		"phone_number":      g.PhoneNumber,
		"assist":            g.Assist,
		"answer_invitation": g.AnswerInvitation,
		"saw_invitation":    g.SawInvitation,
		"answer_sd":         g.AnswerSD,
		"saw_sd":            g.SawSD,
		"group":             g.GroupID,
		"table":             g.TableID,
		"created_at":        g.CreatedAt,
		"updated_at":        g.UpdatedAt,
	}
}

// List GET /api/guests
func (h *GuestHandler) List(c *gin.Context) {
	var q listGuestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return
	}

	guests, err := h.Svc.List(c.Request.Context(), repository.GuestListParams{
		Page:             q.Page,
		Limit:            q.Limit,
		Search:           q.Search,
		Sort:             q.Sort,
		SortBy:           q.SortBy,
		Assist:           q.Assist,
		AnswerInvitation: q.AnswerInvitation,
		SawInvitation:    q.SawInvitation,
		AnswerSD:         q.AnswerSD,
		SawSD:            q.SawSD,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list guests failed")
		}
		response.ServerError(c, "")
		return
	}

	out := make([]gin.H, 0, len(guests))
	for _, g := range guests {
		out = append(out, guestJSON(g))
	}
	response.Success(c, "Success", out)
}

// GetByID GET /api/guests/:id
func (h *GuestHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}

	g, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrGuestNotFound) {
			response.NotFound(c, "Guest not found")
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", guestJSON(g))
}

// Create POST /api/guests
func (h *GuestHandler) Create(c *gin.Context) {
	var req createGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return
	}

	ident := identityFrom(c)
	g, err := h.Svc.Create(c.Request.Context(), application.CreateGuestInput{
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		PhoneNumber:      req.PhoneNumber,
		Assist:           req.Assist,
		AnswerInvitation: req.AnswerInvitation,
		SawInvitation:    req.SawInvitation,
		AnswerSD:         req.AnswerSD,
		SawSD:            req.SawSD,
	}, ident.ID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("create guest failed")
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", guestJSON(g))
}

// Update PUT /api/guests/:id
// Only the provided fields change; the rest stay untouched.
func (h *GuestHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}
	var req updateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return
	}

	ident := identityFrom(c)
	g, err := h.Svc.Update(c.Request.Context(), id, repository.GuestPatch{
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		PhoneNumber:      req.PhoneNumber,
		Assist:           req.Assist,
		AnswerInvitation: req.AnswerInvitation,
		SawInvitation:    req.SawInvitation,
		AnswerSD:         req.AnswerSD,
		SawSD:            req.SawSD,
		TableID:          req.TableID,
	}, ident.ID)
	if err != nil {
		if errors.Is(err, application.ErrGuestNotFound) {
			response.NotFound(c, "Guest not found")
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", guestJSON(g))
}

// Delete DELETE /api/guests/:id (soft delete)
func (h *GuestHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}

	ident := identityFrom(c)
	g, err := h.Svc.Delete(c.Request.Context(), id, ident.ID)
	if err != nil {
		if errors.Is(err, application.ErrGuestNotFound) {
			response.NotFound(c, "Guest not found")
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", guestJSON(g))
}

// Search GET /api/guests/search?q=&size=
func (h *GuestHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", res)
}
