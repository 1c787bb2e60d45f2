package content

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("content item not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	Create(ctx context.Context, item Item) error
	GetByID(ctx context.Context, itemID string) (Item, error)
	List(ctx context.Context, publishedOnly bool, audience string, limit, offset int) ([]Item, error)
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, itemID string) error
}
