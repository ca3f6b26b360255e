package differ

import "fmt"

// MissingBlobError means a stored version needed for the diff could not be loaded.
type MissingBlobError struct {
	Digest string
	Err    error
}

func (e *MissingBlobError) Error() string {
	return fmt.Sprintf("content blob %s is missing: %v", e.Digest, e.Err)
}

// Unwrap returns the underlying error.
func (e *MissingBlobError) Unwrap() error {
	return e.Err
}

// RenderError wraps a failure to produce the diff document.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render diff document: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Err
}
