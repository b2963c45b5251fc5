package ocr

import (
	"errors"
	"fmt"
)

// Common OCR engine errors
var (
	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrRecognitionFailed is returned when the Vision API call fails or
	// reports an error for the submitted image.
	ErrRecognitionFailed = errors.New("text recognition failed")

	// ErrNoResponse is returned when the Vision API returns an empty
	// response set for the request.
	ErrNoResponse = errors.New("no response from Vision API")

	// ErrImageEncoding is returned when the input image cannot be encoded
	// for submission to the engine.
	ErrImageEncoding = errors.New("failed to encode image for recognition")
)

// EngineError wraps errors with additional context about the failed
// engine invocation.
type EngineError struct {
	// Op is the operation that failed (e.g., "Recognize").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *EngineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapEngineError wraps an error as an EngineError if it isn't already one.
func WrapEngineError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var engErr *EngineError
	if errors.As(err, &engErr) {
		return err
	}

	return &EngineError{Op: op, Err: err, Details: details}
}
