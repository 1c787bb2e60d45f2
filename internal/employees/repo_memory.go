package employees

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	employees map[string]Employee
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{employees: make(map[string]Employee)}
}

func (r *MemoryRepo) Create(ctx context.Context, employee Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[employee.ID] = employee
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, companyID, employeeID string) (Employee, error) {
	if err := ctx.Err(); err != nil {
		return Employee{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	employee, ok := r.employees[employeeID]
	if !ok || employee.CompanyID != companyID {
		return Employee{}, ErrNotFound
	}
	return employee, nil
}

func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Employee
	for _, employee := range r.employees {
		if employee.CompanyID == companyID {
			out = append(out, employee)
		}
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

func (r *MemoryRepo) Update(ctx context.Context, employee Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.employees[employee.ID]
	if !ok || existing.CompanyID != employee.CompanyID {
		return ErrNotFound
	}
	r.employees[employee.ID] = employee
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
