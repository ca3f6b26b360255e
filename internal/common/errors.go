package common

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is by callers that only care about the category.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError prefixes err with message. A nil err stays nil.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf is WrapError with a format string.
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return WrapError(err, fmt.Sprintf(format, args...))
}

func NewError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// ValidationError reports a rejected input value. It matches ErrInvalidInput.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ConfigurationError points at the config section and field that failed validation.
// It matches ErrInvalidConfiguration.
type ConfigurationError struct {
	Section string
	Field   string
	Reason  string
}

func NewConfigurationError(section, field, reason string) *ConfigurationError {
	return &ConfigurationError{Section: section, Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Section != "" && e.Field != "":
		return fmt.Sprintf("configuration error in section '%s', field '%s': %s", e.Section, e.Field, e.Reason)
	case e.Section != "":
		return fmt.Sprintf("configuration error in section '%s': %s", e.Section, e.Reason)
	default:
		return "configuration error: " + e.Reason
	}
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// NetworkError is a transport failure talking to Target, which is either an endpoint
// URL or a short label for a notification API call.
type NetworkError struct {
	Target  string
	Reason  string
	Wrapped error
}

func NewNetworkError(target, reason string, wrapped error) *NetworkError {
	return &NetworkError{Target: target, Reason: reason, Wrapped: wrapped}
}

func (e *NetworkError) Error() string {
	msg := fmt.Sprintf("network error for '%s': %s", e.Target, e.Reason)
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *NetworkError) Unwrap() error { return e.Wrapped }

// HTTPError is a response with an unexpected status code.
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

func NewHTTPErrorWithURL(statusCode int, message, url string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message, URL: url}
}

func (e *HTTPError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("HTTP %d error: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d error for '%s': %s", e.StatusCode, e.URL, e.Message)
}

// StatusCodeOf returns the status code carried by an HTTPError anywhere in err's chain, or 0.
func StatusCodeOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
