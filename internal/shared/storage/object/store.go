package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Keys are timestamp-prefixed and namespaced per company.
type ObjectStore interface {
	Save(ctx context.Context, companyID string, fileName string, contentType string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	URL(storageKey string) string
}
