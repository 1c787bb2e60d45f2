package companies

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("company not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	Create(ctx context.Context, company Company) error
	GetByID(ctx context.Context, companyID string) (Company, error)
	List(ctx context.Context, limit, offset int) ([]Company, error)
	Update(ctx context.Context, company Company) error
}
