package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/httpclient"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/rs/zerolog"
)

// SlackNotifier posts Block Kit messages to a Slack incoming webhook.
// Slack webhooks cannot carry files, so diff attachments are ignored.
type SlackNotifier struct {
	webhookURL string
	username   string
	iconURL    string
	client     *httpclient.HTTPClient
	logger     zerolog.Logger
}

// NewSlackNotifier creates a new SlackNotifier.
func NewSlackNotifier(cfg config.SlackConfig, nc config.NotificationConfig, client *httpclient.HTTPClient, logger zerolog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: cfg.WebhookURL,
		username:   nc.Username,
		iconURL:    nc.AvatarURL,
		client:     client,
		logger:     logger.With().Str("component", "SlackNotifier").Logger(),
	}
}

// Name implements Notifier.
func (sn *SlackNotifier) Name() string { return "slack" }

// NotifyChange implements Notifier.
func (sn *SlackNotifier) NotifyChange(ctx context.Context, endpoint string, fields []models.Field, _ *models.Attachment) bool {
	payload := sn.payload(ChangeTitle, fmt.Sprintf("*Endpoint:* `%s`", codeSafe(endpoint)), "", fields)
	return sn.deliver(ctx, endpoint, models.EventChange, payload)
}

// NotifyError implements Notifier.
func (sn *SlackNotifier) NotifyError(ctx context.Context, endpoint, message string, fields []models.Field) bool {
	payload := sn.payload(ErrorTitle, fmt.Sprintf("*Error accessing endpoint:* `%s`", codeSafe(endpoint)), message, fields)
	return sn.deliver(ctx, endpoint, models.EventError, payload)
}

// NotifyWarning implements Notifier.
func (sn *SlackNotifier) NotifyWarning(ctx context.Context, endpoint, message string, fields []models.Field) bool {
	payload := sn.payload(WarningTitle, fmt.Sprintf("*Warning for endpoint:* `%s`", codeSafe(endpoint)), message, fields)
	return sn.deliver(ctx, endpoint, models.EventWarning, payload)
}

func (sn *SlackNotifier) payload(title, summary, message string, fields []models.Field) models.SlackMessagePayload {
	blocks := []models.SlackBlock{
		{Type: "header", Text: &models.SlackText{Type: "plain_text", Text: title}},
		{Type: "section", Text: &models.SlackText{Type: "mrkdwn", Text: summary}},
	}
	if message != "" {
		blocks = append(blocks, models.SlackBlock{
			Type: "section",
			Text: &models.SlackText{Type: "mrkdwn", Text: truncateString("```"+codeSafe(message)+"```", maxSlackTextLength)},
		})
	}

	var current []models.SlackText
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, models.SlackBlock{Type: "section", Fields: current})
			current = nil
		}
	}
	for _, f := range fields {
		if f.Style == models.FieldBlock {
			flush()
			blocks = append(blocks, models.SlackBlock{
				Type: "section",
				Text: &models.SlackText{Type: "mrkdwn", Text: truncateString(fmt.Sprintf("*%s*\n```%s```", f.Label, codeSafe(f.Value)), maxSlackTextLength)},
			})
			continue
		}
		current = append(current, models.SlackText{Type: "mrkdwn", Text: slackFieldText(f)})
		if len(current) == maxSlackFieldsPerSection {
			flush()
		}
	}
	flush()

	return models.SlackMessagePayload{
		Text:     strings.TrimSpace(title + " " + summary),
		Username: sn.username,
		IconURL:  sn.iconURL,
		Blocks:   blocks,
	}
}

func slackFieldText(f models.Field) string {
	switch f.Style {
	case models.FieldCode:
		return fmt.Sprintf("*%s*\n`%s`", f.Label, codeSafe(f.Value))
	case models.FieldLink:
		return fmt.Sprintf("*%s*\n<%s|View>", f.Label, f.Value)
	default:
		return fmt.Sprintf("*%s*\n%s", f.Label, f.Value)
	}
}

func (sn *SlackNotifier) deliver(ctx context.Context, endpoint string, kind models.EventKind, payload models.SlackMessagePayload) bool {
	err := sn.send(ctx, payload)
	if err != nil {
		sn.logger.Error().Err(err).Int("status_code", common.StatusCodeOf(err)).Str("endpoint", endpoint).Str("kind", kind.String()).Msg("Slack notification failed")
		return false
	}
	sn.logger.Info().Str("endpoint", endpoint).Str("kind", kind.String()).Msg("Slack notification sent")
	return true
}

func (sn *SlackNotifier) send(ctx context.Context, payload models.SlackMessagePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return common.WrapError(err, "failed to marshal slack payload")
	}
	resp, err := sn.client.Post(ctx, sn.webhookURL, "application/json", body)
	if err != nil {
		return common.NewNetworkError("slack webhook", "request failed", err)
	}
	return checkResponse(resp, "slack webhook")
}
