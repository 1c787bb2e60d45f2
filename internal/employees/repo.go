package employees

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("employee not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	Create(ctx context.Context, employee Employee) error
	GetByID(ctx context.Context, companyID, employeeID string) (Employee, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]Employee, error)
	Update(ctx context.Context, employee Employee) error
}
