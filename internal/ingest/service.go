package ingest

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"

	"leavepilot-backend/internal/extract"
	"leavepilot-backend/internal/llm"
	"leavepilot-backend/internal/shared/metrics"
	"leavepilot-backend/internal/shared/storage/object"
	"leavepilot-backend/internal/shared/telemetry"
)

// MaxUploadBytes is the hard cap on upload size.
const MaxUploadBytes = 10 << 20

// excerptChars is how much source text the validation pass sees.
const excerptChars = 1000

const reasonNoText = "no readable text found"
const reasonBadModelOutput = "model output could not be parsed into the extraction schema"

// Service runs the synchronous ingestion pipeline: classify the file, extract
// text or hand the image to a vision model, run the two model passes, score
// the result, then persist blob and row. Model-output problems degrade into a
// stored all-null record; infrastructure problems abort with a typed error
// and persist nothing.
type Service struct {
	extractor llm.Extractor
	validator llm.Validator
	store     object.ObjectStore
	repo      Repo

	pdfText func([]byte) (string, error)
}

// NewService wires the pipeline dependencies.
func NewService(extractor llm.Extractor, validator llm.Validator, store object.ObjectStore, repo Repo) *Service {
	return &Service{
		extractor: extractor,
		validator: validator,
		store:     store,
		repo:      repo,
		pdfText:   extract.PDFText,
	}
}

// Process ingests one uploaded file and returns the persisted document.
func (s *Service) Process(ctx context.Context, companyID, fileName, mimeType string, data []byte) (Document, error) {
	mimeType = extract.NormalizeMimeType(mimeType)
	if !extract.Supported(mimeType) {
		return Document{}, ErrUnsupportedFileType
	}
	if int64(len(data)) > MaxUploadBytes {
		return Document{}, ErrFileTooLarge
	}
	if len(data) == 0 {
		return Document{}, ErrInvalidInput
	}

	s.status(companyID, fileName, StateReceived)
	metrics.IncIngestStarted()
	startedAt := time.Now()

	record, err := s.runExtraction(ctx, companyID, fileName, mimeType, data)
	if err != nil {
		s.status(companyID, fileName, StateError)
		metrics.IncIngestFailed()
		metrics.ObserveIngestDurationMs(float64(time.Since(startedAt).Milliseconds()))
		return Document{}, err
	}

	record.Confidence = Score(record.ExtractionResult)
	s.status(companyID, fileName, StateScored)

	storageKey, sizeBytes, err := s.store.Save(ctx, companyID, fileName, mimeType, bytes.NewReader(data))
	if err != nil {
		s.status(companyID, fileName, StateError)
		metrics.IncIngestFailed()
		metrics.ObserveIngestDurationMs(float64(time.Since(startedAt).Milliseconds()))
		return Document{}, &StorageError{Err: err}
	}

	doc := Document{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  sizeBytes,
		StorageKey: storageKey,
		Extraction: record,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		// The blob is already written; there is no compensation step, only a
		// trail for manual cleanup.
		telemetry.Error("ingest.orphaned_object", map[string]any{
			"company_id":  companyID,
			"storage_key": storageKey,
			"file_name":   fileName,
		})
		s.status(companyID, fileName, StateError)
		metrics.IncIngestFailed()
		metrics.ObserveIngestDurationMs(float64(time.Since(startedAt).Milliseconds()))
		return Document{}, &DatabaseError{Err: err}
	}

	s.status(companyID, fileName, StatePersisted)
	metrics.IncIngestPersisted()
	if record.FailureReason != nil {
		metrics.IncIngestDegraded()
	}
	metrics.ObserveIngestDurationMs(float64(time.Since(startedAt).Milliseconds()))
	return doc, nil
}

// runExtraction executes the model passes for the file's type and returns the
// extraction record, without confidence. Degradations come back as records
// with ExtractionSuccess=false; only provider failures return an error.
func (s *Service) runExtraction(ctx context.Context, companyID, fileName, mimeType string, data []byte) (ExtractionRecord, error) {
	now := time.Now().UTC()

	if extract.IsImage(mimeType) {
		s.status(companyID, fileName, StateSkipped)
		raw, err := s.extractor.Extract(ctx, llm.ExtractInput{ImageData: data, ImageMIME: mimeType})
		if err != nil {
			return ExtractionRecord{}, &ModelError{Err: err}
		}
		s.status(companyID, fileName, StateAIExtracted)
		return s.finishRecord(companyID, fileName, MethodImageOCR, raw, now), nil
	}

	text, err := s.pdfText(data)
	if err != nil || !extract.Readable(text) {
		// Unreadable PDFs are a property of the input, not an outage: persist
		// a fully-null record so the upload is still traceable.
		s.status(companyID, fileName, StateSkipped)
		return degradedRecord(MethodPDFText, reasonNoText, now), nil
	}
	s.status(companyID, fileName, StateTextExtracted)

	raw, err := s.extractor.Extract(ctx, llm.ExtractInput{Text: text})
	if err != nil {
		return ExtractionRecord{}, &ModelError{Err: err}
	}
	s.status(companyID, fileName, StateAIExtracted)

	// An unusable draft degrades before the validation pass runs, so the
	// record is tagged as a single-pass text extraction.
	draft, err := llm.RecoverJSON(string(raw))
	if err != nil || ValidateResultJSON(draft) != nil {
		return degradedRecord(MethodPDFText, reasonBadModelOutput, now), nil
	}
	result, err := ParseResult(draft)
	if err != nil {
		return degradedRecord(MethodPDFText, reasonBadModelOutput, now), nil
	}

	validated, err := s.validator.Validate(ctx, draft, extract.Excerpt(text, excerptChars))
	if err != nil {
		return ExtractionRecord{}, &ModelError{Err: err}
	}
	s.status(companyID, fileName, StateValidated)

	// The validator may only correct the draft; if its output is unusable the
	// draft stands.
	if recovered, rerr := llm.RecoverJSON(string(validated)); rerr == nil && ValidateResultJSON(recovered) == nil {
		if corrected, perr := ParseResult(recovered); perr == nil {
			result = corrected
		}
	}

	return ExtractionRecord{
		ExtractionResult:  result,
		ExtractedAt:       now,
		ProcessingMethod:  MethodDualAI,
		ExtractionSuccess: result.HasAnyField(),
	}, nil
}

// finishRecord turns a single-pass model response into a record, degrading to
// all-null when the payload cannot be recovered or fails the schema.
func (s *Service) finishRecord(companyID, fileName, method string, raw []byte, at time.Time) ExtractionRecord {
	recovered, err := llm.RecoverJSON(string(raw))
	if err != nil || ValidateResultJSON(recovered) != nil {
		return degradedRecord(method, reasonBadModelOutput, at)
	}
	result, err := ParseResult(recovered)
	if err != nil {
		return degradedRecord(method, reasonBadModelOutput, at)
	}
	s.status(companyID, fileName, StateValidated)
	return ExtractionRecord{
		ExtractionResult:  result,
		ExtractedAt:       at,
		ProcessingMethod:  method,
		ExtractionSuccess: result.HasAnyField(),
	}
}

// Get fetches a single document scoped to a company.
func (s *Service) Get(ctx context.Context, companyID, documentID string) (Document, error) {
	if companyID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, companyID, documentID)
}

// List returns a page of a company's documents, newest first.
func (s *Service) List(ctx context.Context, companyID string, limit, offset int) ([]Document, error) {
	if companyID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCompany(ctx, companyID, limit, offset)
}

// LinkEmployee records the one-time link from a document to an employee.
func (s *Service) LinkEmployee(ctx context.Context, companyID, documentID, employeeID string) error {
	if companyID == "" || documentID == "" || employeeID == "" {
		return ErrInvalidInput
	}
	return s.repo.LinkEmployee(ctx, companyID, documentID, employeeID)
}

// FileURL resolves the public or local URL for a stored object.
func (s *Service) FileURL(storageKey string) string {
	return s.store.URL(storageKey)
}

func (s *Service) status(companyID, fileName, state string) {
	telemetry.Info("ingest.status", map[string]any{
		"company_id":     companyID,
		"file_name":      fileName,
		"pipeline_state": state,
	})
}
