package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/shared/server/middleware"
	"leavepilot-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches admin-account routes. The assign endpoint goes on
// the superadmin console group.
func (h *Handler) RegisterRoutes(admin, console *gin.RouterGroup) {
	admin.GET("/me", h.me)
	console.PATCH("/admins/:adminID", h.assign)
}

func (h *Handler) me(c *gin.Context) {
	adminID := middleware.AdminIDFromContext(c)
	admin, err := h.Svc.GetByID(c.Request.Context(), adminID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "admin not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load admin", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, admin)
}

type assignRequest struct {
	Role      string  `json:"role"`
	CompanyID *string `json:"companyId"`
}

func (h *Handler) assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	admin, err := h.Svc.Assign(c.Request.Context(), c.Param("adminID"), req.Role, req.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "admin not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "role must be hr_admin or superadmin", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update admin", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, admin)
}
