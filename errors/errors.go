package errors

import (
	"errors"
	"fmt"
)

// Category classifies error types for targeted handling and reporting.
type Category string

const (
	CategoryDecode   Category = "decode"
	CategoryEncode   Category = "encode"
	CategoryConfig   Category = "config"
	CategoryLayout   Category = "layout"
	CategoryExport   Category = "export"
	CategoryPipeline Category = "pipeline"
	CategoryInput    Category = "input"
)

// BatchError is the structured error type used throughout the module.
type BatchError struct {
	Category Category
	Op       string // operation name
	Err      error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Op, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// New creates a BatchError.
func New(category Category, op string, err error) *BatchError {
	return &BatchError{Category: category, Op: op, Err: err}
}

// Wrap wraps an existing error with context.
func Wrap(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(category, op, err)
}

// IsCategory reports whether err belongs to the given category.
func IsCategory(err error, cat Category) bool {
	var be *BatchError
	if errors.As(err, &be) {
		return be.Category == cat
	}
	return false
}

// Sentinel errors for common failure modes.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrEmptyInput        = errors.New("empty input")
	ErrEmptyBatch        = errors.New("no images in batch")
	ErrBadSizeSyntax     = errors.New("size must be WIDTHxHEIGHT with positive integers")
	ErrNoExporter        = errors.New("no exporter registered")
)
