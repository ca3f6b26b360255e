package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// HTTPClient wraps net/http.Client with the project's transport defaults
type HTTPClient struct {
	client *http.Client
	config HTTPClientConfig
	logger zerolog.Logger
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	if config.Timeout <= 0 {
		return nil, common.NewValidationError("timeout", config.Timeout, "timeout must be positive")
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify, //nolint:gosec // monitoring self-signed targets is expected
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("insecure_skip_verify", config.InsecureSkipVerify).
		Bool("http2_enabled", config.EnableHTTP2).
		Int("max_content_size", config.MaxContentSize).
		Msg("HTTP client created")

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// Timeout returns the per-request timeout.
func (c *HTTPClient) Timeout() time.Duration {
	return c.config.Timeout
}

// Do sends req and reads the whole body, enforcing MaxContentSize.
// A body over the limit yields ErrContentTooLarge together with the status code.
func (c *HTTPClient) Do(req *http.Request) (*Response, error) {
	for key, value := range c.config.CustomHeaders {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	if c.config.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "*/*")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var reader io.Reader = resp.Body
	if c.config.MaxContentSize > 0 {
		reader = io.LimitReader(resp.Body, int64(c.config.MaxContentSize)+1)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, common.WrapError(err, "failed to read response body")
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header}
	if c.config.MaxContentSize > 0 && buf.Len() > c.config.MaxContentSize {
		return out, ErrContentTooLarge
	}
	out.Body = buf.Bytes()
	return out, nil
}

// Post sends body to url with the given content type.
func (c *HTTPClient) Post(ctx context.Context, url, contentType string, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, common.WrapError(err, "failed to create HTTP request")
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(req)
}
