package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/application"
	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/pkg/response"
	"github.com/oksasatya/event-guestlist-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,pwd"`
	Role       string `json:"role" binding:"omitempty,oneof=admin parents wedding-planner"`
}

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}

	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Invalid(c, "User not found")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, "Success", gin.H{
		"id":            u.ID,
		"first_name":    u.FirstName,
		"middle_name":   u.MiddleName,
		"last_name":     u.LastName,
		"username":      u.Username,
		"authenticated": u.Authenticated,
	})
}

// Create POST /api/users
// Accounts start unauthenticated; an operator approves them out of band.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return
	}

	createdBy := "admin"
	if ident := identityFrom(c); ident != nil {
		createdBy = ident.ID
	}
	u, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Username:   req.Username,
		Password:   req.Password,
		Role:       entity.Role(req.Role),
	}, createdBy)
	if err != nil {
		if errors.Is(err, application.ErrUserExists) {
			response.Conflict(c, "User Already Created")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("create user failed")
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, "Success", gin.H{
		"id":            u.ID,
		"first_name":    u.FirstName,
		"middle_name":   u.MiddleName,
		"last_name":     u.LastName,
		"username":      u.Username,
		"role":          u.Role,
		"authenticated": u.Authenticated,
		"created_at":    u.CreatedAt,
	})
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Invalid(c, "Invalid ID")
		return
	}

	deletedBy := "admin"
	if ident := identityFrom(c); ident != nil {
		deletedBy = ident.ID
	}
	if err := h.Svc.Delete(c.Request.Context(), id, deletedBy); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Invalid(c, "User not found")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, "Success", "Record deleted: "+id)
}
