package companies

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	companies map[string]Company
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{companies: make(map[string]Company)}
}

func (r *MemoryRepo) Create(ctx context.Context, company Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[company.ID] = company
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, companyID string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	company, ok := r.companies[companyID]
	if !ok {
		return Company{}, ErrNotFound
	}
	return company, nil
}

func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Company, 0, len(r.companies))
	for _, company := range r.companies {
		out = append(out, company)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, company Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return ErrNotFound
	}
	r.companies[company.ID] = company
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
