package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The extraction record is stored as a
// JSONB blob alongside the document metadata.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document row.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    company_id,
    file_name,
    mime_type,
    size_bytes,
    storage_key,
    extraction,
    linked_employee_id,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8)`

	blob, err := json.Marshal(doc.Extraction)
	if err != nil {
		return fmt.Errorf("marshal extraction: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.CompanyID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		blob,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID scoped to a company.
func (r *PGRepo) GetByID(ctx context.Context, companyID, documentID string) (Document, error) {
	const query = `
SELECT id, company_id, file_name, mime_type, size_bytes, storage_key, extraction, linked_employee_id, created_at
FROM documents
WHERE company_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, companyID, documentID)
	return scanDocument(row)
}

// ListByCompany lists documents ordered newest-first.
func (r *PGRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, company_id, file_name, mime_type, size_bytes, storage_key, extraction, linked_employee_id, created_at
FROM documents
WHERE company_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// LinkEmployee records the one-time link from a document to the employee
// record created from it. A second link attempt is rejected.
func (r *PGRepo) LinkEmployee(ctx context.Context, companyID, documentID, employeeID string) error {
	const query = `
UPDATE documents
SET linked_employee_id = $1
WHERE company_id = $2 AND id = $3 AND linked_employee_id IS NULL`
	res, err := r.DB.ExecContext(ctx, query, employeeID, companyID, documentID)
	if err != nil {
		return err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		if _, getErr := r.GetByID(ctx, companyID, documentID); getErr != nil {
			return getErr
		}
		return ErrAlreadyLinked
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var blob []byte
	var linked sql.NullString
	err := row.Scan(
		&doc.ID,
		&doc.CompanyID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&blob,
		&linked,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	if linked.Valid {
		doc.LinkedEmployeeID = linked.String
	}
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &doc.Extraction); err != nil {
			return Document{}, fmt.Errorf("unmarshal extraction: %w", err)
		}
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
