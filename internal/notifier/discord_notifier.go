package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/httpclient"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/rs/zerolog"
)

// DiscordNotifier posts embeds to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	username   string
	avatarURL  string
	client     *httpclient.HTTPClient
	logger     zerolog.Logger
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(cfg config.DiscordConfig, nc config.NotificationConfig, client *httpclient.HTTPClient, logger zerolog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: cfg.WebhookURL,
		username:   nc.Username,
		avatarURL:  nc.AvatarURL,
		client:     client,
		logger:     logger.With().Str("component", "DiscordNotifier").Logger(),
	}
}

// Name implements Notifier.
func (dn *DiscordNotifier) Name() string { return "discord" }

// NotifyChange implements Notifier. The diff document is uploaded when it fits Discord's limit.
func (dn *DiscordNotifier) NotifyChange(ctx context.Context, endpoint string, fields []models.Field, attachment *models.Attachment) bool {
	embed := newDiscordEmbed(models.EventChange, fmt.Sprintf("Endpoint: `%s`", codeSafe(endpoint))).
		fields(fields).
		build()

	if attachment != nil && len(attachment.Data) > maxDiscordFileSize {
		dn.logger.Warn().Str("endpoint", endpoint).Int("size", len(attachment.Data)).Msg("Diff too large for Discord upload, sending without attachment")
		attachment = nil
	}
	return dn.deliver(ctx, endpoint, models.EventChange, dn.payload(embed), attachment)
}

// NotifyError implements Notifier.
func (dn *DiscordNotifier) NotifyError(ctx context.Context, endpoint, message string, fields []models.Field) bool {
	embed := newDiscordEmbed(models.EventError, fmt.Sprintf("Error accessing endpoint: `%s`", codeSafe(endpoint))).
		message("Error Message", message).
		fields(fields).
		build()
	return dn.deliver(ctx, endpoint, models.EventError, dn.payload(embed), nil)
}

// NotifyWarning implements Notifier.
func (dn *DiscordNotifier) NotifyWarning(ctx context.Context, endpoint, message string, fields []models.Field) bool {
	embed := newDiscordEmbed(models.EventWarning, fmt.Sprintf("Warning for endpoint: `%s`", codeSafe(endpoint))).
		message("Warning Message", message).
		fields(fields).
		build()
	return dn.deliver(ctx, endpoint, models.EventWarning, dn.payload(embed), nil)
}

func (dn *DiscordNotifier) payload(embed models.DiscordEmbed) models.DiscordMessagePayload {
	return models.DiscordMessagePayload{
		Username:  dn.username,
		AvatarURL: dn.avatarURL,
		Embeds:    []models.DiscordEmbed{embed},
	}
}

func (dn *DiscordNotifier) deliver(ctx context.Context, endpoint string, kind models.EventKind, payload models.DiscordMessagePayload, attachment *models.Attachment) bool {
	if err := dn.send(ctx, payload, attachment); err != nil {
		dn.logger.Error().Err(err).Int("status_code", common.StatusCodeOf(err)).Str("endpoint", endpoint).Str("kind", kind.String()).Msg("Discord notification failed")
		return false
	}
	dn.logger.Info().Str("endpoint", endpoint).Str("kind", kind.String()).Bool("attachment", attachment != nil).Msg("Discord notification sent")
	return true
}

func (dn *DiscordNotifier) send(ctx context.Context, payload models.DiscordMessagePayload, attachment *models.Attachment) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return common.WrapError(err, "failed to marshal discord payload")
	}

	body, contentType := payloadJSON, "application/json"
	if attachment != nil {
		body, contentType, err = discordMultipart(payloadJSON, attachment)
		if err != nil {
			return err
		}
	}

	resp, err := dn.client.Post(ctx, dn.webhookURL, contentType, body)
	if err != nil {
		return common.NewNetworkError("discord webhook", "request failed", err)
	}
	return checkResponse(resp, "discord webhook")
}

// discordMultipart builds a payload_json + files[0] form.
func discordMultipart(payloadJSON []byte, attachment *models.Attachment) ([]byte, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("payload_json", string(payloadJSON)); err != nil {
		return nil, "", common.WrapError(err, "failed to write payload_json to multipart")
	}
	part, err := writer.CreateFormFile("files[0]", attachment.Filename)
	if err != nil {
		return nil, "", common.WrapError(err, "failed to create form file")
	}
	if _, err := part.Write(attachment.Data); err != nil {
		return nil, "", common.WrapError(err, "failed to copy file data to form")
	}
	if err := writer.Close(); err != nil {
		return nil, "", common.WrapError(err, "failed to close multipart writer")
	}
	return body.Bytes(), writer.FormDataContentType(), nil
}
