package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresExtractionBlob(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID:         "doc-1",
		CompanyID:  "co-1",
		FileName:   "policy.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
		StorageKey: "abc/171234_policy.pdf",
		Extraction: ExtractionRecord{
			ExtractedAt:       time.Now().UTC(),
			ProcessingMethod:  MethodDualAI,
			ExtractionSuccess: true,
			Confidence:        Score(ExtractionResult{}),
		},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.CompanyID,
			doc.FileName,
			doc.MimeType,
			doc.SizeBytes,
			doc.StorageKey,
			sqlmock.AnyArg(), // extraction jsonb
			sqlmock.AnyArg(), // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansBlobAndLink(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	record := ExtractionRecord{
		ProcessingMethod:  MethodImageOCR,
		ExtractionSuccess: false,
		Confidence:        Score(ExtractionResult{}),
	}
	blob, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "company_id", "file_name", "mime_type", "size_bytes", "storage_key", "extraction", "linked_employee_id", "created_at",
	}).AddRow("doc-1", "co-1", "scan.png", "image/png", int64(100), "key-1", blob, "emp-9", now)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("co-1", "doc-1").
		WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "co-1", "doc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if doc.LinkedEmployeeID != "emp-9" {
		t.Fatalf("expected linked employee emp-9, got %q", doc.LinkedEmployeeID)
	}
	if doc.Extraction.ProcessingMethod != MethodImageOCR {
		t.Fatalf("expected decoded blob, got %+v", doc.Extraction)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("co-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "file_name", "mime_type", "size_bytes", "storage_key", "extraction", "linked_employee_id", "created_at",
		}))

	if _, err := repo.GetByID(context.Background(), "co-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoLinkEmployeeConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	// Zero rows updated with an existing row means the link is already set.
	mock.ExpectExec("UPDATE documents").
		WithArgs("emp-1", "co-1", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	blob, _ := json.Marshal(ExtractionRecord{Confidence: Score(ExtractionResult{})})
	rows := sqlmock.NewRows([]string{
		"id", "company_id", "file_name", "mime_type", "size_bytes", "storage_key", "extraction", "linked_employee_id", "created_at",
	}).AddRow("doc-1", "co-1", "scan.png", "image/png", int64(100), "key-1", blob, "emp-0", time.Now().UTC())
	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("co-1", "doc-1").
		WillReturnRows(rows)

	if err := repo.LinkEmployee(context.Background(), "co-1", "doc-1", "emp-1"); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
