package audit

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Append(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, companyID string, limit, offset int) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Event
	// Append order is chronological; walk backwards for newest-first.
	for i := len(r.events) - 1; i >= 0; i-- {
		if companyID != "" && r.events[i].CompanyID != companyID {
			continue
		}
		out = append(out, r.events[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
