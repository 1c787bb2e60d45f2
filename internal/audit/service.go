package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"leavepilot-backend/internal/shared/telemetry"
)

// Service records and lists admin activity. Recording is best-effort: a
// failed append is logged and swallowed so it never fails the mutation it
// describes.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Record appends one event. Detail must marshal to JSON or is dropped.
func (s *Service) Record(ctx context.Context, actor, companyID, action, entityType, entityID string, detail any) {
	if s == nil || s.Repo == nil {
		return
	}
	event := Event{
		ID:         uuid.NewString(),
		Actor:      actor,
		CompanyID:  companyID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
	}
	if detail != nil {
		if blob, err := json.Marshal(detail); err == nil {
			event.Detail = blob
		}
	}
	if err := s.Repo.Append(ctx, event); err != nil {
		telemetry.Error("audit.append_failed", map[string]any{
			"err":    err.Error(),
			"action": action,
			"actor":  actor,
		})
	}
}

func (s *Service) List(ctx context.Context, companyID string, limit, offset int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, companyID, limit, offset)
}
