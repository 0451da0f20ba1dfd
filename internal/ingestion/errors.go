package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrEmptyDocument is returned when a document yields no text
	ErrEmptyDocument = errors.New("document contains no text")
)

// UnsupportedFormatError is returned for file types that cannot be read.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file type for %s: no extension", e.Path)
	}
	return fmt.Sprintf("unsupported file type %q for %s (supported: %s)", e.Extension, e.Path, supportedList())
}

// ExtractionError wraps a failure to pull text out of a readable format.
type ExtractionError struct {
	Path   string
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s text from %s: %v", e.Format, e.Path, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
