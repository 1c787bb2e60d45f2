package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the audit trail listing. Callers gate the group
// with the superadmin role check.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-events", h.list)
}

func (h *Handler) list(c *gin.Context) {
	limit := 50
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	events, err := h.Svc.List(c.Request.Context(), c.Query("companyId"), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list audit events", nil)
		return
	}
	if events == nil {
		events = []Event{}
	}
	respond.JSON(c, http.StatusOK, events)
}
