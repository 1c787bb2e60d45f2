package content

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Item
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Item)}
}

func (r *MemoryRepo) Create(ctx context.Context, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, itemID string) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[itemID]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

func (r *MemoryRepo) List(ctx context.Context, publishedOnly bool, audience string, limit, offset int) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Item
	for _, item := range r.items {
		if publishedOnly && !item.Published {
			continue
		}
		if audience != "" && item.Audience != audience && item.Audience != AudienceAll {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
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

func (r *MemoryRepo) Update(ctx context.Context, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		return ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
