package onboarding

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{drafts: make(map[string]Draft)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, draft Draft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[draft.SessionID] = draft
	return nil
}

func (r *MemoryRepo) GetBySession(ctx context.Context, sessionID string) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	draft, ok := r.drafts[sessionID]
	if !ok {
		return Draft{}, ErrNotFound
	}
	return draft, nil
}

var _ Repo = (*MemoryRepo)(nil)
