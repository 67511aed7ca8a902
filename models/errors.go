package models

import "fmt"

// Error codes carried by FetchError.
const (
	// ErrCodeConfiguration marks fatal configuration problems, such as an
	// empty proxy pool while proxy mode is enabled. Never retried.
	ErrCodeConfiguration = "CONFIGURATION_ERROR"

	// ErrCodeRetriesExhausted is returned only when a maximum attempt count
	// is configured and every attempt failed.
	ErrCodeRetriesExhausted = "RETRIES_EXHAUSTED"

	// ErrCodeParse marks a markup tree that could not be built from an
	// otherwise successful response body.
	ErrCodeParse = "PARSE_FAILED"

	// ErrCodeLayoutChanged marks a document-query miss on a successful
	// fetch: the page was retrieved but no longer matches the expected
	// markup layout.
	ErrCodeLayoutChanged = "LAYOUT_CHANGED"
)

// FetchError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type FetchError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(code, message string, err error) *FetchError {
	return &FetchError{Code: code, Message: message, Err: err}
}
