package httpclient

import (
	"errors"
	"fmt"
)

// ErrContentTooLarge is wrapped by FetchError when a body exceeds MaxContentSize.
var ErrContentTooLarge = errors.New("content too large")

// FetchErrorKind classifies why a fetch failed.
type FetchErrorKind int

const (
	// FetchTimeout means the request did not complete within the configured timeout.
	FetchTimeout FetchErrorKind = iota
	// FetchNetwork covers DNS, connection, TLS and body read failures.
	FetchNetwork
	// FetchNonSuccessStatus means the server answered outside 2xx, redirects included.
	FetchNonSuccessStatus
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchNetwork:
		return "network"
	case FetchNonSuccessStatus:
		return "non_success_status"
	default:
		return "unknown"
	}
}

// FetchError is returned by Fetcher.Fetch. All kinds are recoverable at run level.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchTimeout:
		return fmt.Sprintf("timeout fetching '%s': %v", e.URL, e.Err)
	case FetchNonSuccessStatus:
		return fmt.Sprintf("unexpected status %d fetching '%s'", e.StatusCode, e.URL)
	default:
		return fmt.Sprintf("network error fetching '%s': %v", e.URL, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}
