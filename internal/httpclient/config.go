package httpclient

import "time"

// HTTPClientConfig holds the transport settings shared by the fetcher and the notifiers.
// Redirects are never followed; a 3xx response is returned to the caller as-is.
type HTTPClientConfig struct {
	Timeout               time.Duration
	InsecureSkipVerify    bool
	UserAgent             string
	MaxContentSize        int // bytes, 0 for no limit
	EnableHTTP2           bool
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	DialTimeout           time.Duration
	KeepAlive             time.Duration
	ExpectContinueTimeout time.Duration
	CustomHeaders         map[string]string
}

// DefaultHTTPClientConfig returns the configuration used for fetching monitored endpoints.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               10 * time.Second,
		InsecureSkipVerify:    true,
		UserAgent:             "jsmon/1.0",
		MaxContentSize:        10 * 1024 * 1024,
		EnableHTTP2:           true,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		CustomHeaders:         map[string]string{},
	}
}
