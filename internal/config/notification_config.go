package config

import "time"

// DiscordConfig holds the Discord webhook channel settings
type DiscordConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`
}

// TelegramConfig holds the Telegram bot channel settings
type TelegramConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	BotToken   string `json:"bot_token,omitempty" yaml:"bot_token,omitempty"`
	ChatID     string `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
	APIBaseURL string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty" validate:"omitempty,url"`
}

// SlackConfig holds the Slack incoming webhook channel settings
type SlackConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`
}

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	NotifyOnErrors     bool   `json:"notify_on_errors" yaml:"notify_on_errors"`
	NotifyOnWarnings   bool   `json:"notify_on_warnings" yaml:"notify_on_warnings"`
	ConcurrentDelivery bool   `json:"concurrent_delivery" yaml:"concurrent_delivery"`
	AttachDiff         bool   `json:"attach_diff" yaml:"attach_diff"`
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
	Username           string `json:"username,omitempty" yaml:"username,omitempty"`
	AvatarURL          string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty" validate:"omitempty,url"`

	Discord  DiscordConfig  `json:"discord" yaml:"discord"`
	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`
	Slack    SlackConfig    `json:"slack" yaml:"slack"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		NotifyOnErrors:     false,
		NotifyOnWarnings:   true,
		ConcurrentDelivery: false,
		AttachDiff:         true,
		TimeoutSeconds:     DefaultNotificationTimeoutSecs,
		Username:           DefaultNotificationUsername,
		AvatarURL:          DefaultNotificationAvatarURL,
		Telegram: TelegramConfig{
			APIBaseURL: DefaultTelegramAPIBaseURL,
		},
	}
}

// Timeout returns the per-delivery timeout.
func (nc NotificationConfig) Timeout() time.Duration {
	if nc.TimeoutSeconds <= 0 {
		return DefaultNotificationTimeoutSecs * time.Second
	}
	return time.Duration(nc.TimeoutSeconds) * time.Second
}

// AnyEnabled reports whether at least one channel is switched on.
func (nc NotificationConfig) AnyEnabled() bool {
	return nc.Discord.Enabled || nc.Telegram.Enabled || nc.Slack.Enabled
}
