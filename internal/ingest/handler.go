package ingest

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/audit"
	"leavepilot-backend/internal/extract"
	"leavepilot-backend/internal/shared/server/middleware"
	"leavepilot-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc   *Service
	Audit *audit.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, auditSvc *audit.Service) *Handler {
	return &Handler{Svc: svc, Audit: auditSvc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies/:companyID/documents", h.upload)
	rg.GET("/companies/:companyID/documents", h.list)
	rg.GET("/companies/:companyID/documents/:documentID", h.get)
	rg.POST("/companies/:companyID/documents/:documentID/link-employee", h.linkEmployee)
}

// companyScope resolves the tenant for the request. Company-scoped admins may
// only touch their own company; superadmins pass through.
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

func (h *Handler) upload(c *gin.Context) {
	companyID, ok := companyScope(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the 10MB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	// The claimed Content-Type is advisory; sniff the bytes before anything
	// leaves the process.
	mimeType := sniffMimeType(data, fileHeader.Header.Get("Content-Type"))
	if !extract.Supported(mimeType) {
		respond.Error(c, http.StatusBadRequest, "unsupported_file_type", "only PDF, PNG and JPEG files are accepted", nil)
		return
	}

	doc, err := h.Svc.Process(c.Request.Context(), companyID, fileHeader.Filename, mimeType, data)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	c.Set("documentId", doc.ID)
	c.Set("pipelineState", StatePersisted)
	respond.JSON(c, http.StatusCreated, toResponse(doc, h.Svc.FileURL(doc.StorageKey)))
}

func (h *Handler) get(c *gin.Context) {
	companyID, ok := companyScope(c)
	if !ok {
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), companyID, c.Param("documentID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(doc, h.Svc.FileURL(doc.StorageKey)))
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

	docs, err := h.Svc.List(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		}
		return
	}

	resp := make([]DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toSummary(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

type linkEmployeeRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) linkEmployee(c *gin.Context) {
	companyID, ok := companyScope(c)
	if !ok {
		return
	}

	var req linkEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if req.EmployeeID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "employeeId is required", nil)
		return
	}

	err := h.Svc.LinkEmployee(c.Request.Context(), companyID, c.Param("documentID"), req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrAlreadyLinked):
			respond.Error(c, http.StatusConflict, "already_linked", "document is already linked to an employee", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to link employee", nil)
		}
		return
	}

	h.Audit.Record(c.Request.Context(), middleware.AdminIDFromContext(c), companyID, "document.link", "document", c.Param("documentID"), gin.H{"employeeId": req.EmployeeID})
	respond.JSON(c, http.StatusOK, gin.H{"documentId": c.Param("documentID"), "employeeId": req.EmployeeID})
}

func (h *Handler) respondPipelineError(c *gin.Context, err error) {
	var storageErr *StorageError
	var modelErr *ModelError
	var dbErr *DatabaseError
	switch {
	case errors.Is(err, ErrUnsupportedFileType):
		respond.Error(c, http.StatusBadRequest, "unsupported_file_type", "only PDF, PNG and JPEG files are accepted", nil)
	case errors.Is(err, ErrFileTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the 10MB limit", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is empty", nil)
	case errors.As(err, &storageErr):
		respond.Error(c, http.StatusBadGateway, "storage_unavailable", "failed to store document", nil)
	case errors.As(err, &modelErr):
		respond.Error(c, http.StatusBadGateway, "extraction_unavailable", "document extraction is temporarily unavailable", nil)
	case errors.As(err, &dbErr):
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save document", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process document", nil)
	}
}

// sniffMimeType prefers the detected content type and falls back to the
// declared one when detection is inconclusive.
func sniffMimeType(data []byte, declared string) string {
	detected := extract.NormalizeMimeType(http.DetectContentType(data))
	if extract.Supported(detected) {
		return detected
	}
	return extract.NormalizeMimeType(declared)
}
