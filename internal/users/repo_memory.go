package users

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	admins map[string]Admin
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{admins: make(map[string]Admin)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, admin Admin) (Admin, error) {
	if err := ctx.Err(); err != nil {
		return Admin{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.admins[admin.ID]; ok {
		existing.Email = admin.Email
		existing.Name = admin.Name
		existing.LastLoginAt = &now
		r.admins[admin.ID] = existing
		return existing, nil
	}
	admin.CreatedAt = now
	admin.LastLoginAt = &now
	r.admins[admin.ID] = admin
	return admin, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, adminID string) (Admin, error) {
	if err := ctx.Err(); err != nil {
		return Admin{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[adminID]
	if !ok {
		return Admin{}, ErrNotFound
	}
	return admin, nil
}

func (r *MemoryRepo) Update(ctx context.Context, admin Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.admins[admin.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Role = admin.Role
	existing.CompanyID = admin.CompanyID
	r.admins[admin.ID] = existing
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
