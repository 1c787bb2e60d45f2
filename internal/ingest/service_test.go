package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"leavepilot-backend/internal/extract"
	"leavepilot-backend/internal/llm"
	localstore "leavepilot-backend/internal/shared/storage/object/local"
)

type fakeExtractor struct {
	raw   string
	err   error
	calls int
	input llm.ExtractInput
}

func (f *fakeExtractor) Extract(ctx context.Context, input llm.ExtractInput) (json.RawMessage, error) {
	f.calls++
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.raw), nil
}

type fakeValidator struct {
	raw     string
	err     error
	calls   int
	draft   json.RawMessage
	excerpt string
}

func (f *fakeValidator) Validate(ctx context.Context, draft json.RawMessage, sourceExcerpt string) (json.RawMessage, error) {
	f.calls++
	f.draft = draft
	f.excerpt = sourceExcerpt
	if f.err != nil {
		return nil, f.err
	}
	if f.raw == "" {
		return draft, nil
	}
	return json.RawMessage(f.raw), nil
}

func newTestService(t *testing.T, extractor llm.Extractor, validator llm.Validator) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := NewService(extractor, validator, localstore.New(t.TempDir()), repo)
	return svc, repo
}

func TestProcessImageSinglePass(t *testing.T) {
	extractor := &fakeExtractor{raw: "Sure! " + populatedPayload}
	validator := &fakeValidator{}
	svc, repo := newTestService(t, extractor, validator)

	doc, err := svc.Process(context.Background(), "co-1", "policy.png", "image/png", []byte("\x89PNG fake image bytes"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if extractor.calls != 1 {
		t.Fatalf("expected one extractor call, got %d", extractor.calls)
	}
	if !extractor.input.IsImage() {
		t.Fatalf("expected image input to the extractor")
	}
	if validator.calls != 0 {
		t.Fatalf("image path must not run the validation pass, got %d calls", validator.calls)
	}

	if doc.Extraction.ProcessingMethod != MethodImageOCR {
		t.Fatalf("expected %s, got %s", MethodImageOCR, doc.Extraction.ProcessingMethod)
	}
	if !doc.Extraction.ExtractionSuccess {
		t.Fatalf("expected extractionSuccess=true")
	}
	if doc.Extraction.Confidence.Bucket != BucketSuccess {
		t.Fatalf("expected SUCCESS bucket, got %s", doc.Extraction.Confidence.Bucket)
	}
	if doc.StorageKey == "" || doc.SizeBytes == 0 {
		t.Fatalf("expected stored blob metadata, got key=%q size=%d", doc.StorageKey, doc.SizeBytes)
	}

	stored, err := repo.GetByID(context.Background(), "co-1", doc.ID)
	if err != nil {
		t.Fatalf("get stored doc: %v", err)
	}
	if stored.Extraction.EmployeeInfo.Name == nil || *stored.Extraction.EmployeeInfo.Name != "Jordan Smith" {
		t.Fatalf("expected persisted extraction, got %+v", stored.Extraction.EmployeeInfo)
	}
}

func TestProcessPDFDualPass(t *testing.T) {
	corrected := strings.Replace(populatedPayload, "Jordan Smith", "Jordan A. Smith", 1)
	extractor := &fakeExtractor{raw: populatedPayload}
	validator := &fakeValidator{raw: corrected}
	svc, _ := newTestService(t, extractor, validator)
	svc.pdfText = func([]byte) (string, error) {
		return strings.Repeat("benefits policy text ", 100), nil
	}

	doc, err := svc.Process(context.Background(), "co-1", "policy.pdf", "application/pdf", []byte("%PDF-1.4 stub"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if validator.calls != 1 {
		t.Fatalf("expected one validator call, got %d", validator.calls)
	}
	if len(validator.excerpt) != excerptChars {
		t.Fatalf("expected %d-char excerpt, got %d", excerptChars, len(validator.excerpt))
	}
	if doc.Extraction.ProcessingMethod != MethodDualAI {
		t.Fatalf("expected %s, got %s", MethodDualAI, doc.Extraction.ProcessingMethod)
	}
	if doc.Extraction.EmployeeInfo.Name == nil || *doc.Extraction.EmployeeInfo.Name != "Jordan A. Smith" {
		t.Fatalf("expected validator correction to win, got %v", doc.Extraction.EmployeeInfo.Name)
	}
}

func TestProcessValidatorGarbageFallsBackToDraft(t *testing.T) {
	extractor := &fakeExtractor{raw: populatedPayload}
	validator := &fakeValidator{raw: "I see nothing wrong with this document."}
	svc, _ := newTestService(t, extractor, validator)
	svc.pdfText = func([]byte) (string, error) {
		return strings.Repeat("policy ", 50), nil
	}

	doc, err := svc.Process(context.Background(), "co-1", "policy.pdf", "application/pdf", []byte("%PDF-1.4 stub"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.Extraction.EmployeeInfo.Name == nil || *doc.Extraction.EmployeeInfo.Name != "Jordan Smith" {
		t.Fatalf("expected the draft to stand, got %v", doc.Extraction.EmployeeInfo.Name)
	}
	if !doc.Extraction.ExtractionSuccess {
		t.Fatalf("draft fallback is still a success")
	}
}

func TestProcessUnreadablePDFDegrades(t *testing.T) {
	extractor := &fakeExtractor{raw: populatedPayload}
	svc, repo := newTestService(t, extractor, &fakeValidator{})

	doc, err := svc.Process(context.Background(), "co-1", "scan.pdf", "application/pdf", []byte("not a real pdf"))
	if err != nil {
		t.Fatalf("unreadable pdf is a degraded outcome, not an error: %v", err)
	}

	if extractor.calls != 0 {
		t.Fatalf("no model call may happen for unreadable input, got %d", extractor.calls)
	}
	if doc.Extraction.ExtractionSuccess {
		t.Fatalf("expected extractionSuccess=false")
	}
	if doc.Extraction.ProcessingMethod != MethodPDFText {
		t.Fatalf("expected %s, got %s", MethodPDFText, doc.Extraction.ProcessingMethod)
	}
	if doc.Extraction.FailureReason == nil || *doc.Extraction.FailureReason != "no readable text found" {
		t.Fatalf("expected failure reason, got %v", doc.Extraction.FailureReason)
	}
	if doc.Extraction.Confidence.Bucket != BucketFailed || doc.Extraction.Confidence.Score != 0 {
		t.Fatalf("expected 0.0/FAILED confidence, got %+v", doc.Extraction.Confidence)
	}

	if _, err := repo.GetByID(context.Background(), "co-1", doc.ID); err != nil {
		t.Fatalf("degraded record must still be persisted: %v", err)
	}
}

func TestProcessPDFUnparseableDraftIsSinglePass(t *testing.T) {
	extractor := &fakeExtractor{raw: "The document describes a parental leave policy."}
	validator := &fakeValidator{}
	svc, repo := newTestService(t, extractor, validator)
	svc.pdfText = func([]byte) (string, error) {
		return strings.Repeat("policy ", 50), nil
	}

	doc, err := svc.Process(context.Background(), "co-1", "policy.pdf", "application/pdf", []byte("%PDF-1.4 stub"))
	if err != nil {
		t.Fatalf("unparseable draft degrades, it does not fail: %v", err)
	}

	if validator.calls != 0 {
		t.Fatalf("an unusable draft must not reach the validation pass, got %d calls", validator.calls)
	}
	if doc.Extraction.ProcessingMethod != MethodPDFText {
		t.Fatalf("only one pass ran, expected %s, got %s", MethodPDFText, doc.Extraction.ProcessingMethod)
	}
	if doc.Extraction.ExtractionSuccess {
		t.Fatalf("expected extractionSuccess=false")
	}
	if doc.Extraction.FailureReason == nil {
		t.Fatalf("expected a failure reason")
	}

	if _, err := repo.GetByID(context.Background(), "co-1", doc.ID); err != nil {
		t.Fatalf("degraded record must still be persisted: %v", err)
	}
}

func TestProcessUnparseableModelOutputDegrades(t *testing.T) {
	extractor := &fakeExtractor{raw: "The document describes a parental leave policy."}
	svc, _ := newTestService(t, extractor, &fakeValidator{})

	doc, err := svc.Process(context.Background(), "co-1", "photo.jpg", "image/jpeg", []byte("\xff\xd8\xff fake jpeg"))
	if err != nil {
		t.Fatalf("unparseable output degrades, it does not fail: %v", err)
	}
	if doc.Extraction.ExtractionSuccess {
		t.Fatalf("expected extractionSuccess=false")
	}
	if doc.Extraction.FailureReason == nil {
		t.Fatalf("expected a failure reason")
	}
}

func TestProcessAllNullResultIsNotSuccess(t *testing.T) {
	extractor := &fakeExtractor{raw: fullyNullPayload}
	svc, _ := newTestService(t, extractor, &fakeValidator{})

	doc, err := svc.Process(context.Background(), "co-1", "blank.png", "image/png", []byte("\x89PNG blank"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.Extraction.ExtractionSuccess {
		t.Fatalf("a fully-null result is persisted but not a success")
	}
	if doc.Extraction.FailureReason != nil {
		t.Fatalf("valid all-null output carries no failure reason, got %v", *doc.Extraction.FailureReason)
	}
}

func TestProcessModelFailureIsInfraError(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("rate limited")}
	svc, repo := newTestService(t, extractor, &fakeValidator{})

	_, err := svc.Process(context.Background(), "co-1", "policy.png", "image/png", []byte("\x89PNG bytes"))
	var modelErr *ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("expected ModelError, got %v", err)
	}

	docs, err := repo.ListByCompany(context.Background(), "co-1", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("nothing may be persisted on infra failure, got %d docs", len(docs))
	}
}

type failingRepo struct{ MemoryRepo }

func (f *failingRepo) Create(ctx context.Context, doc Document) error {
	return errors.New("insert failed")
}

func TestProcessInsertFailureIsDatabaseError(t *testing.T) {
	extractor := &fakeExtractor{raw: populatedPayload}
	svc := NewService(extractor, &fakeValidator{}, localstore.New(t.TempDir()), &failingRepo{})

	_, err := svc.Process(context.Background(), "co-1", "policy.png", "image/png", []byte("\x89PNG bytes"))
	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}

func TestProcessInputValidation(t *testing.T) {
	svc, _ := newTestService(t, &fakeExtractor{}, &fakeValidator{})
	ctx := context.Background()

	if _, err := svc.Process(ctx, "co-1", "notes.txt", "text/plain", []byte("hello")); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
	oversized := make([]byte, MaxUploadBytes+1)
	if _, err := svc.Process(ctx, "co-1", "big.pdf", "application/pdf", oversized); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if _, err := svc.Process(ctx, "co-1", "empty.pdf", "application/pdf", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Process(ctx, "co-1", "policy.pdf", "application/pdf;charset=binary", []byte("not a pdf")); err != nil {
		t.Fatalf("mime parameters must be tolerated: %v", err)
	}
}

func TestLinkEmployeeIsOneTime(t *testing.T) {
	extractor := &fakeExtractor{raw: fullyNullPayload}
	svc, _ := newTestService(t, extractor, &fakeValidator{})
	ctx := context.Background()

	doc, err := svc.Process(ctx, "co-1", "blank.png", "image/png", []byte("\x89PNG blank"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if err := svc.LinkEmployee(ctx, "co-1", doc.ID, "emp-1"); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := svc.LinkEmployee(ctx, "co-1", doc.ID, "emp-2"); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked, got %v", err)
	}
	if err := svc.LinkEmployee(ctx, "co-other", doc.ID, "emp-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-tenant link must be invisible, got %v", err)
	}
}

func TestReadableThreshold(t *testing.T) {
	if extract.Readable("short") {
		t.Fatalf("5 chars is below the threshold")
	}
	if !extract.Readable(strings.Repeat("a", extract.MinReadableChars)) {
		t.Fatalf("threshold length should be readable")
	}
}
