package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure. Every failure is a
// *common.ConfigurationError, which callers treat as fatal.
func ValidateConfig(cfg *GlobalConfig) error {
	if err := validateStruct(cfg); err != nil {
		return err
	}
	if err := validateArtifactBaseURL(cfg.ArtifactConfig.BaseURL); err != nil {
		return err
	}
	return ValidateNotifiers(cfg.NotificationConfig)
}

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("storagebackend", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "file", "sqlite":
			return true
		default:
			return false
		}
	})

	return validate
}

func validateStruct(cfg *GlobalConfig) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return common.NewConfigurationError("", "", fmt.Sprintf("validation error: %v", err))
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("'%s' failed rule '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return common.NewConfigurationError("", "", strings.Join(messages, "; "))
}

func validateArtifactBaseURL(baseURL string) error {
	if baseURL == "" {
		return nil
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return common.NewConfigurationError("artifact_config", "base_url", fmt.Sprintf("invalid URL: %s", baseURL))
	}
	return nil
}

// ValidateNotifiers requires at least one enabled channel and usable credentials on every enabled one.
func ValidateNotifiers(nc NotificationConfig) error {
	if !nc.AnyEnabled() {
		return common.NewConfigurationError("notification_config", "", "no notifier enabled; set up Discord, Telegram or Slack")
	}

	if nc.Discord.Enabled {
		if err := requireCredential("discord.webhook_url", nc.Discord.WebhookURL); err != nil {
			return err
		}
		if err := requireWebhookURL("discord.webhook_url", nc.Discord.WebhookURL); err != nil {
			return err
		}
	}
	if nc.Telegram.Enabled {
		if err := requireCredential("telegram.bot_token", nc.Telegram.BotToken); err != nil {
			return err
		}
		if err := requireCredential("telegram.chat_id", nc.Telegram.ChatID); err != nil {
			return err
		}
	}
	if nc.Slack.Enabled {
		if err := requireCredential("slack.webhook_url", nc.Slack.WebhookURL); err != nil {
			return err
		}
		if err := requireWebhookURL("slack.webhook_url", nc.Slack.WebhookURL); err != nil {
			return err
		}
	}
	return nil
}

func requireCredential(field, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return common.NewConfigurationError("notification_config", field, "is empty")
	}
	if v == PlaceholderCredential {
		return common.NewConfigurationError("notification_config", field, "still set to the "+PlaceholderCredential+" placeholder")
	}
	return nil
}

func requireWebhookURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return common.NewConfigurationError("notification_config", field, "is not an absolute URL")
	}
	return nil
}
