package ingest

import "errors"

// Input-validation failures. Reported before any network call; nothing is
// stored or inserted.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds size limit")
	ErrNotFound            = errors.New("document not found")
	ErrAlreadyLinked       = errors.New("document already linked to an employee")
)

// Infrastructure failures form a closed taxonomy so callers can discriminate
// failure kinds with errors.As instead of string matching.

// StorageError wraps an object-store failure.
type StorageError struct{ Err error }

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// ModelError wraps a model-provider failure from either pass.
type ModelError struct{ Err error }

func (e *ModelError) Error() string { return "model: " + e.Err.Error() }
func (e *ModelError) Unwrap() error { return e.Err }

// DatabaseError wraps a row-insert or lookup failure.
type DatabaseError struct{ Err error }

func (e *DatabaseError) Error() string { return "database: " + e.Err.Error() }
func (e *DatabaseError) Unwrap() error { return e.Err }
