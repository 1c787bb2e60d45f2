package ingest

import "context"

// Repo defines persistence operations for ingested documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, companyID, documentID string) (Document, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]Document, error)
	LinkEmployee(ctx context.Context, companyID, documentID, employeeID string) error
}
