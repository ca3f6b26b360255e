package config

import "time"

// MonitorConfig defines configuration for a monitoring pass
type MonitorConfig struct {
	TargetsDir         string `json:"targets_dir,omitempty" yaml:"targets_dir,omitempty"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	MaxContentSize     int    `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"` // bytes
	EnableHTTP2        bool   `json:"enable_http2" yaml:"enable_http2"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	// Headers are sent with every endpoint fetch, e.g. a session cookie for authenticated assets.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		TargetsDir:         DefaultMonitorTargetsDir,
		HTTPTimeoutSeconds: DefaultMonitorHTTPTimeoutSecs,
		InsecureSkipVerify: DefaultMonitorInsecureSkipVerify,
		MaxContentSize:     DefaultMonitorMaxContentSize,
		EnableHTTP2:        DefaultMonitorEnableHTTP2,
		UserAgent:          DefaultMonitorUserAgent,
	}
}

// HTTPTimeout returns the fetch timeout, falling back to the default when unset.
func (mc MonitorConfig) HTTPTimeout() time.Duration {
	if mc.HTTPTimeoutSeconds <= 0 {
		return DefaultMonitorHTTPTimeoutSecs * time.Second
	}
	return time.Duration(mc.HTTPTimeoutSeconds) * time.Second
}
