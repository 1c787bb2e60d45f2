package ingest

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for dev mode and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]Document)}
}

// Create stores a document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

// GetByID fetches a document by ID scoped to a company.
func (r *MemoryRepo) GetByID(ctx context.Context, companyID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[documentID]
	if !ok || doc.CompanyID != companyID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// ListByCompany lists documents ordered newest-first.
func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Document
	for _, doc := range r.docs {
		if doc.CompanyID == companyID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LinkEmployee records the one-time employee link.
func (r *MemoryRepo) LinkEmployee(ctx context.Context, companyID, documentID, employeeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok || doc.CompanyID != companyID {
		return ErrNotFound
	}
	if doc.LinkedEmployeeID != "" {
		return ErrAlreadyLinked
	}
	doc.LinkedEmployeeID = employeeID
	r.docs[documentID] = doc
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
