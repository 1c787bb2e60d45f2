package onboarding

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the onboarding wizard routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/onboarding/:sessionID", h.get)
	rg.PUT("/onboarding/:sessionID/steps/:step", h.updateStep)
	rg.POST("/onboarding/:sessionID/complete", h.complete)
}

func (h *Handler) get(c *gin.Context) {
	draft, err := h.Svc.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "sessionID is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load onboarding draft", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, draft)
}

func (h *Handler) updateStep(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil || len(payload) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body is required", nil)
		return
	}

	draft, err := h.Svc.UpdateStep(c.Request.Context(), c.Param("sessionID"), c.Param("step"), payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownStep):
			respond.Error(c, http.StatusBadRequest, "unknown_step", "step must be one of company_profile, policy_setup, roster_seed", nil)
		case errors.Is(err, ErrCompleted):
			respond.Error(c, http.StatusConflict, "draft_completed", "draft is already completed", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid step payload", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update onboarding draft", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, draft)
}

func (h *Handler) complete(c *gin.Context) {
	draft, err := h.Svc.Complete(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrIncomplete):
			respond.Error(c, http.StatusBadRequest, "draft_incomplete", "company profile step must be filled before completion", nil)
		case errors.Is(err, ErrCompleted):
			respond.Error(c, http.StatusConflict, "draft_completed", "draft is already completed", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "sessionID is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to complete onboarding", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, draft)
}
