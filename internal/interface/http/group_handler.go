package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/response"
	"github.com/oksasatya/event-guestlist-api/pkg/validation"
)

type GroupHandler struct {
	Svc    *application.GroupService
	Logger *logrus.Logger
}

func NewGroupHandler(svc *application.GroupService, logger *logrus.Logger) *GroupHandler {
	return &GroupHandler{Svc: svc, Logger: logger}
}

type listGroupsQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	HasGuests *bool  `form:"has_guests"`
}

type createGroupRequest struct {
	Name    string   `json:"name" binding:"required"`
	Guests  []string `json:"guests" binding:"omitempty,dive,uuid"`
	TableID *string  `json:"table" binding:"omitempty,uuid"`
}

type updateGroupRequest struct {
	Name    *string   `json:"name"`
	Guests  *[]string `json:"guests" binding:"omitempty,dive,uuid"`
	TableID *string   `json:"table" binding:"omitempty,uuid"`
}

func groupJSON(g *entity.Group) gin.H {
	return gin.H{
		"id":         g.ID,
		"name":       g.Name,
		"guests":     g.GuestIDs,
		"table":      g.TableID,
		"created_at": g.CreatedAt,
		"updated_at": g.UpdatedAt,
	}
}

// List GET /api/groups
func (h *GroupHandler) List(c *gin.Context) {
	var q listGroupsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return
	}

	groups, err := h.Svc.List(c.Request.Context(), repository.GroupListParams{
		Page:      q.Page,
		Limit:     q.Limit,
		Search:    q.Search,
		HasGuests: q.HasGuests,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list groups failed")
		}
		response.ServerError(c, "")
		return
	}

	out := make([]gin.H, 0, len(groups))
	for _, gw := range groups {
		members := make([]gin.H, 0, len(gw.Guests))
		for _, m := range gw.Guests {
			members = append(members, gin.H{
				"id":          m.ID,
				"first_name":  m.FirstName,
				"middle_name": m.MiddleName,
				"last_name":   m.LastName,
			})
		}
		item := groupJSON(&gw.Group)
		item["guests"] = members
		out = append(out, item)
	}
	response.Success(c, "Success", out)
}

// Create POST /api/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return
	}

	ident := identityFrom(c)
	g, err := h.Svc.Create(c.Request.Context(), application.CreateGroupInput{
		Name:    req.Name,
		Guests:  req.Guests,
		TableID: req.TableID,
	}, ident.ID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("create group failed")
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", groupJSON(g))
}

// Update PUT /api/groups/:id
// When the payload carries a guests list, group membership is
// reconciled against it; otherwise only scalar fields change.
func (h *GroupHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}
	var req updateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return
	}

	ident := identityFrom(c)
	g, err := h.Svc.Update(c.Request.Context(), id, application.UpdateGroupInput{
		Name:    req.Name,
		TableID: req.TableID,
		Guests:  req.Guests,
	}, ident.ID)
	if err != nil {
		if errors.Is(err, application.ErrGroupNotFound) {
			response.NotFound(c, "Group not found")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("group_id", id).Error("update group failed")
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", groupJSON(g))
}
