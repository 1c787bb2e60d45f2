package employees

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/audit"
	"leavepilot-backend/internal/ingest"
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

// RegisterRoutes attaches employee routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies/:companyID/employees", h.create)
	rg.POST("/companies/:companyID/employees/from-document", h.createFromDocument)
	rg.GET("/companies/:companyID/employees", h.list)
	rg.GET("/companies/:companyID/employees/:employeeID", h.get)
	rg.PATCH("/companies/:companyID/employees/:employeeID/leave-status", h.updateLeaveStatus)
}

func companyScope(c *gin.Context) (string, bool) {
	companyID := strings.TrimSpace(c.Param("companyID"))
	if companyID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "companyID is required", nil)
		return "", false
	}
	if middleware.AdminRoleFromContext(c) == "superadmin" {
		return companyID, true
	}
	if middleware.AdminCompanyFromContext(c) != companyID {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin is not scoped to this company", nil)
		return "", false
	}
	return companyID, true
}

type createRequest struct {
	Name           string     `json:"name"`
	ExternalID     *string    `json:"externalId"`
	Department     *string    `json:"department"`
	Email          *string    `json:"email"`
	LeaveStatus    string     `json:"leaveStatus"`
	LeaveStartDate *time.Time `json:"leaveStartDate"`
	LeaveEndDate   *time.Time `json:"leaveEndDate"`
}

func (req createRequest) toInput() CreateInput {
	return CreateInput{
		Name:           req.Name,
		ExternalID:     req.ExternalID,
		Department:     req.Department,
		Email:          req.Email,
		LeaveStatus:    req.LeaveStatus,
		LeaveStartDate: req.LeaveStartDate,
		LeaveEndDate:   req.LeaveEndDate,
	}
}

func (h *Handler) create(c *gin.Context) {
	companyID, ok := companyScope(c)
	if !ok {
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	employee, err := h.Svc.Create(c.Request.Context(), companyID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name is required and leaveStatus must be valid", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create employee", nil)
		}
		return
	}

	h.Audit.Record(c.Request.Context(), middleware.AdminIDFromContext(c), companyID, "employee.create", "employee", employee.ID, nil)
	respond.JSON(c, http.StatusCreated, employee)
}

type createFromDocumentRequest struct {
	DocumentID string `json:"documentId"`
	createRequest
}

func (h *Handler) createFromDocument(c *gin.Context) {
	companyID, ok := companyScope(c)
	if !ok {
		return
	}

	var req createFromDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.DocumentID = strings.TrimSpace(req.DocumentID)
	if req.DocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId is required", nil)
		return
	}

	employee, err := h.Svc.CreateFromDocument(c.Request.Context(), companyID, req.DocumentID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ingest.ErrAlreadyLinked):
			respond.Error(c, http.StatusConflict, "already_linked", "document is already linked to an employee", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "extraction has no employee name; provide one in the request", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create employee", nil)
		}
		return
	}

	h.Audit.Record(c.Request.Context(), middleware.AdminIDFromContext(c), companyID, "employee.create_from_document", "employee", employee.ID, gin.H{"documentId": req.DocumentID})
	respond.JSON(c, http.StatusCreated, employee)
}

func (h *Handler) get(c *gin.Context) {
	companyID, ok := companyScope(c)
	if !ok {
		return
	}

	employee, err := h.Svc.Get(c.Request.Context(), companyID, c.Param("employeeID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "employee not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch employee", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, employee)
}

func (h *Handler) list(c *gin.Context) {
	companyID, ok := companyScope(c)
	if !ok {
		return
	}

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

	list, err := h.Svc.List(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list employees", nil)
		return
	}
	if list == nil {
		list = []Employee{}
	}
	respond.JSON(c, http.StatusOK, list)
}

type leaveStatusRequest struct {
	LeaveStatus    string     `json:"leaveStatus"`
	LeaveStartDate *time.Time `json:"leaveStartDate"`
	LeaveEndDate   *time.Time `json:"leaveEndDate"`
}

func (h *Handler) updateLeaveStatus(c *gin.Context) {
	companyID, ok := companyScope(c)
	if !ok {
		return
	}

	var req leaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	employee, err := h.Svc.UpdateLeaveStatus(c.Request.Context(), companyID, c.Param("employeeID"), req.LeaveStatus, req.LeaveStartDate, req.LeaveEndDate)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "employee not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "leaveStatus must be one of none, expecting, on_leave, returned", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update leave status", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, employee)
}
