package extractor

import (
	"net/url"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/urlhandler"
	"github.com/rs/zerolog"
)

// URLValidator resolves raw strings found in scripts to absolute URLs
type URLValidator struct {
	logger zerolog.Logger
}

// NewURLValidator creates a new URL validator
func NewURLValidator(logger zerolog.Logger) *URLValidator {
	return &URLValidator{
		logger: logger.With().Str("component", "URLValidator").Logger(),
	}
}

// Resolve returns the absolute form of rawPath. Relative paths need a base.
func (uv *URLValidator) Resolve(rawPath string, base *url.URL) (string, error) {
	rawPath = strings.TrimSpace(rawPath)
	if rawPath == "" {
		return "", common.NewValidationError("raw_path", rawPath, "path cannot be empty")
	}

	if urlhandler.IsValidEndpoint(rawPath) {
		return uv.checkHost(rawPath)
	}

	if base == nil {
		return "", common.NewValidationError("raw_path", rawPath, "cannot resolve relative path without base URL")
	}

	resolved, err := urlhandler.ResolveURL(rawPath, base)
	if err != nil {
		uv.logger.Debug().Err(err).Str("raw_path", rawPath).Str("base_url", base.String()).Msg("Failed to resolve path")
		return "", err
	}
	return uv.checkHost(resolved)
}

// checkHost rejects things like "http://localhost" or template fragments parsed as hosts.
func (uv *URLValidator) checkHost(absoluteURL string) (string, error) {
	parsed, err := url.Parse(absoluteURL)
	if err != nil {
		return "", common.WrapError(err, "failed to parse URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", common.NewValidationError("scheme", parsed.Scheme, "only http and https URLs are listed")
	}
	if !strings.Contains(parsed.Host, ".") {
		return "", common.NewValidationError("host", parsed.Host, "host appears invalid")
	}
	return absoluteURL, nil
}
