package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables that override file configuration.
const (
	EnvNotifyDiscord     = "JSMON_NOTIFY_DISCORD"
	EnvDiscordWebhookURL = "JSMON_DISCORD_WEBHOOK_URL"
	EnvNotifyTelegram    = "JSMON_NOTIFY_TELEGRAM"
	EnvTelegramToken     = "JSMON_TELEGRAM_TOKEN"
	EnvTelegramChatID    = "JSMON_TELEGRAM_CHAT_ID"
	EnvNotifySlack       = "JSMON_NOTIFY_SLACK"
	EnvSlackWebhookURL   = "JSMON_SLACK_WEBHOOK_URL"
)

// DotEnvFile is looked for next to the config file, then in the working directory.
const DotEnvFile = ".env"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc over the process environment, falling back to the first
// .env file found. Variables already set in the environment always win.
func EnvLookup(configPath string, logger zerolog.Logger) (LookupFunc, error) {
	candidates := []string{DotEnvFile}
	if configPath != "" {
		candidates = append([]string{filepath.Join(filepath.Dir(configPath), DotEnvFile)}, candidates...)
	}
	for _, p := range candidates {
		if !isRegularFile(p) {
			continue
		}
		values, err := godotenv.Read(p)
		if err != nil {
			return nil, common.WrapErrorf(err, "failed to parse env file '%s'", p)
		}
		logger.Debug().Str("path", p).Int("keys", len(values)).Msg("Loaded env file")
		return func(key string) (string, bool) {
			if v, ok := os.LookupEnv(key); ok {
				return v, true
			}
			v, ok := values[key]
			return v, ok
		}, nil
	}
	return os.LookupEnv, nil
}

// ApplyEnvOverrides copies any set JSMON_* variables onto cfg.
// Boolean variables that do not parse are ignored.
func ApplyEnvOverrides(cfg *GlobalConfig, lookup LookupFunc) {
	nc := &cfg.NotificationConfig

	overrideBool(lookup, EnvNotifyDiscord, &nc.Discord.Enabled)
	overrideString(lookup, EnvDiscordWebhookURL, &nc.Discord.WebhookURL)

	overrideBool(lookup, EnvNotifyTelegram, &nc.Telegram.Enabled)
	overrideString(lookup, EnvTelegramToken, &nc.Telegram.BotToken)
	overrideString(lookup, EnvTelegramChatID, &nc.Telegram.ChatID)

	overrideBool(lookup, EnvNotifySlack, &nc.Slack.Enabled)
	overrideString(lookup, EnvSlackWebhookURL, &nc.Slack.WebhookURL)
}

func overrideString(lookup LookupFunc, key string, target *string) {
	if v, ok := lookup(key); ok {
		*target = strings.TrimSpace(v)
	}
}

func overrideBool(lookup LookupFunc, key string, target *bool) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	if b, ok := parseBool(v); ok {
		*target = b
	}
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off", "":
		return false, true
	default:
		return false, false
	}
}
