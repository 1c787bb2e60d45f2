package companies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/audit"
	"leavepilot-backend/internal/shared/server/middleware"
	"leavepilot-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc   *Service
	Audit *audit.Service
}

func NewHandler(svc *Service, auditSvc *audit.Service) *Handler {
	return &Handler{Svc: svc, Audit: auditSvc}
}

// RegisterRoutes attaches company routes. Create, list and update belong to
// the superadmin console; callers gate the group accordingly. Get is shared
// so company-scoped admins can read their own record.
func (h *Handler) RegisterRoutes(admin, console *gin.RouterGroup) {
	admin.GET("/companies/:companyID", h.get)
	console.POST("/companies", h.create)
	console.GET("/companies", h.list)
	console.PATCH("/companies/:companyID", h.update)
}

type createRequest struct {
	Name            string   `json:"name"`
	ContactEmail    string   `json:"contactEmail"`
	EmployeeCount   int      `json:"employeeCount"`
	TopUpPercentage *float64 `json:"topUpPercentage"`
	TopUpWeeks      *int     `json:"topUpWeeks"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	company, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Name:            req.Name,
		ContactEmail:    req.ContactEmail,
		EmployeeCount:   req.EmployeeCount,
		TopUpPercentage: req.TopUpPercentage,
		TopUpWeeks:      req.TopUpWeeks,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required and numeric fields must be in range", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create company", nil)
		}
		return
	}

	h.Audit.Record(c.Request.Context(), middleware.AdminIDFromContext(c), company.ID, "company.create", "company", company.ID, nil)
	respond.JSON(c, http.StatusCreated, company)
}

func (h *Handler) get(c *gin.Context) {
	companyID := c.Param("companyID")
	if middleware.AdminRoleFromContext(c) != "superadmin" && middleware.AdminCompanyFromContext(c) != companyID {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin is not scoped to this company", nil)
		return
	}

	company, err := h.Svc.Get(c.Request.Context(), companyID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "companyID is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch company", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, company)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
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

	companies, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list companies", nil)
		return
	}
	if companies == nil {
		companies = []Company{}
	}
	respond.JSON(c, http.StatusOK, companies)
}

type updateRequest struct {
	Name            *string  `json:"name"`
	ContactEmail    *string  `json:"contactEmail"`
	EmployeeCount   *int     `json:"employeeCount"`
	TopUpPercentage *float64 `json:"topUpPercentage"`
	TopUpWeeks      *int     `json:"topUpWeeks"`
	Status          *string  `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	company, err := h.Svc.Update(c.Request.Context(), c.Param("companyID"), UpdateInput{
		Name:            req.Name,
		ContactEmail:    req.ContactEmail,
		EmployeeCount:   req.EmployeeCount,
		TopUpPercentage: req.TopUpPercentage,
		TopUpWeeks:      req.TopUpWeeks,
		Status:          req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid field value", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update company", nil)
		}
		return
	}

	h.Audit.Record(c.Request.Context(), middleware.AdminIDFromContext(c), company.ID, "company.update", "company", company.ID, req)
	respond.JSON(c, http.StatusOK, company)
}
