package urlhandler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
)

// ValidateEndpoint checks that raw parses as an absolute URL with a scheme and host.
// The returned error is a *common.ValidationError.
func ValidateEndpoint(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return common.NewValidationError("endpoint", raw, "URL is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return common.NewValidationError("endpoint", raw, fmt.Sprintf("could not parse URL: %v", err))
	}
	if parsed.Scheme == "" {
		return common.NewValidationError("endpoint", raw, "URL lacks a scheme")
	}
	if parsed.Host == "" {
		return common.NewValidationError("endpoint", raw, "URL lacks a host")
	}
	return nil
}

// IsValidEndpoint is the boolean form of ValidateEndpoint.
func IsValidEndpoint(raw string) bool {
	return ValidateEndpoint(raw) == nil
}

// ResolveURL resolves a possibly relative href against base and drops the fragment.
func ResolveURL(href string, base *url.URL) (string, error) {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return "", common.NewValidationError("href", href, "href is empty")
	}

	ref, err := url.Parse(trimmed)
	if err != nil {
		return "", common.WrapError(err, "could not parse href")
	}

	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	if resolved.Host == "" {
		return "", common.NewValidationError("href", href, "cannot resolve to an absolute URL")
	}
	resolved.Fragment = ""
	return resolved.String(), nil
}
