package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("admin not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	Upsert(ctx context.Context, admin Admin) (Admin, error)
	GetByID(ctx context.Context, adminID string) (Admin, error)
	Update(ctx context.Context, admin Admin) error
}
