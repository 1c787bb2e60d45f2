package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ExtractInput carries the source material for one extraction pass: either
// plain document text, or raw image bytes for vision-capable models.
type ExtractInput struct {
	Text      string
	ImageData []byte
	ImageMIME string
}

// IsImage reports whether the input carries an image payload.
func (in ExtractInput) IsImage() bool {
	return len(in.ImageData) > 0
}

// Extractor is the primary extraction pass (Model A). Implementations return
// the model's raw response content; callers own JSON recovery and schema
// checks so a malformed response can degrade instead of failing the pipeline.
type Extractor interface {
	Extract(ctx context.Context, input ExtractInput) (json.RawMessage, error)
}

// Validator is the correction pass (Model B). It receives the draft produced
// by the Extractor plus an excerpt of the source text, and may only fix
// obvious parsing mistakes. It must never populate fields the draft left null.
type Validator interface {
	Validate(ctx context.Context, draft json.RawMessage, sourceExcerpt string) (json.RawMessage, error)
}

// ErrNotConfigured is returned by the placeholder clients.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderExtractor is a stub implementation until provider wiring is added.
type PlaceholderExtractor struct{}

// Extract returns ErrNotConfigured.
func (PlaceholderExtractor) Extract(ctx context.Context, input ExtractInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}

// PlaceholderValidator is a stub implementation until provider wiring is added.
type PlaceholderValidator struct{}

// Validate returns the draft unchanged.
func (PlaceholderValidator) Validate(ctx context.Context, draft json.RawMessage, sourceExcerpt string) (json.RawMessage, error) {
	_ = ctx
	_ = sourceExcerpt
	return draft, nil
}
