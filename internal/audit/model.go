package audit

import (
	"encoding/json"
	"time"
)

// Event is one append-only entry in the admin activity trail.
type Event struct {
	ID         string          `json:"id"`
	Actor      string          `json:"actor"`
	CompanyID  string          `json:"companyId,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Detail     json.RawMessage `json:"detail,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
