package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/response"
)

type TableHandler struct {
	Repo   repository.TableRepository
	Logger *logrus.Logger
}

func NewTableHandler(repo repository.TableRepository, logger *logrus.Logger) *TableHandler {
	return &TableHandler{Repo: repo, Logger: logger}
}

func tableJSON(t *entity.Table) gin.H {
	return gin.H{
		"id":         t.ID,
		"label":      t.Label,
		"groups":     t.GroupIDs,
		"guests":     t.GuestIDs,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

// List GET /api/tables
func (h *TableHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	tables, err := h.Repo.List(c.Request.Context(), page, limit)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list tables failed")
		}
		response.ServerError(c, "")
		return
	}
	out := make([]gin.H, 0, len(tables))
	for _, t := range tables {
		out = append(out, tableJSON(t))
	}
	response.Success(c, "Success", out)
}

// GetByID GET /api/tables/:id
func (h *TableHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}
	t, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Table not found")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("table_id", id).Error("get table failed")
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, "Success", tableJSON(t))
}
