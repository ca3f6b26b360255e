package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog"
)

// FetchResult is the body and metadata of a successful fetch.
type FetchResult struct {
	URL         string
	Body        string
	StatusCode  int
	ContentType string
}

// Size is the body length in bytes.
func (r *FetchResult) Size() int64 {
	return int64(len(r.Body))
}

// Fetcher retrieves monitored endpoints. One attempt per call; no retries.
type Fetcher struct {
	client *HTTPClient
	logger zerolog.Logger
}

// NewFetcher creates a fetcher on top of client.
func NewFetcher(client *HTTPClient, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger.With().Str("component", "Fetcher").Logger(),
	}
}

// Fetch performs a GET on endpoint. Only 2xx is success; every failure is a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: FetchNetwork, URL: endpoint, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		fetchErr := classify(endpoint, resp, err)
		f.logger.Debug().Err(err).Str("url", endpoint).Str("kind", fetchErr.Kind.String()).Msg("Fetch failed")
		return nil, fetchErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Debug().Str("url", endpoint).Int("status_code", resp.StatusCode).Msg("Received non-2xx status")
		return nil, &FetchError{Kind: FetchNonSuccessStatus, URL: endpoint, StatusCode: resp.StatusCode}
	}

	result := &FetchResult{
		URL:         endpoint,
		Body:        string(resp.Body),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	f.logger.Debug().
		Str("url", endpoint).
		Int64("size", result.Size()).
		Str("content_type", result.ContentType).
		Msg("Fetched content")
	return result, nil
}

func classify(endpoint string, resp *Response, err error) *FetchError {
	fetchErr := &FetchError{Kind: FetchNetwork, URL: endpoint, Err: err}
	if resp != nil {
		fetchErr.StatusCode = resp.StatusCode
	}
	if errors.Is(err, ErrContentTooLarge) {
		return fetchErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		fetchErr.Kind = FetchTimeout
		return fetchErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		fetchErr.Kind = FetchTimeout
	}
	return fetchErr
}
