package content

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

// RegisterRoutes attaches content routes. Reads go on the shared admin
// group; mutations go on the superadmin console group.
func (h *Handler) RegisterRoutes(admin, console *gin.RouterGroup) {
	admin.GET("/content", h.list)
	admin.GET("/content/:itemID", h.get)
	console.POST("/content", h.create)
	console.PATCH("/content/:itemID", h.update)
	console.DELETE("/content/:itemID", h.remove)
}

type createRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Audience string `json:"audience"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	item, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Audience: req.Audience,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "title is required and category/audience must be valid", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create content item", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, item)
}

func (h *Handler) get(c *gin.Context) {
	item, err := h.Svc.Get(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "content item not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch content item", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, item)
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
	publishedOnly := c.Query("published") == "true"

	items, err := h.Svc.List(c.Request.Context(), publishedOnly, c.Query("audience"), limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "audience must be one of hr_admin, employee, all", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list content", nil)
		}
		return
	}
	if items == nil {
		items = []Item{}
	}
	respond.JSON(c, http.StatusOK, items)
}

type updateRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Category  *string `json:"category"`
	Audience  *string `json:"audience"`
	Published *bool   `json:"published"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	item, err := h.Svc.Update(c.Request.Context(), c.Param("itemID"), UpdateInput{
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		Audience:  req.Audience,
		Published: req.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "content item not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid field value", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update content item", nil)
		}
		return
	}

	if req.Published != nil && *req.Published {
		h.Audit.Record(c.Request.Context(), middleware.AdminIDFromContext(c), "", "content.publish", "content_item", item.ID, nil)
	}
	respond.JSON(c, http.StatusOK, item)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "content item not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete content item", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}
