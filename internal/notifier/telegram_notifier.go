package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/httpclient"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/rs/zerolog"
)

// TelegramNotifier sends messages through the Telegram Bot API.
type TelegramNotifier struct {
	apiBaseURL string
	botToken   string
	chatID     string
	client     *httpclient.HTTPClient
	logger     zerolog.Logger
}

// NewTelegramNotifier creates a new TelegramNotifier.
func NewTelegramNotifier(cfg config.TelegramConfig, client *httpclient.HTTPClient, logger zerolog.Logger) *TelegramNotifier {
	base := strings.TrimRight(cfg.APIBaseURL, "/")
	if base == "" {
		base = config.DefaultTelegramAPIBaseURL
	}
	return &TelegramNotifier{
		apiBaseURL: base,
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		client:     client,
		logger:     logger.With().Str("component", "TelegramNotifier").Logger(),
	}
}

// Name implements Notifier.
func (tn *TelegramNotifier) Name() string { return "telegram" }

// NotifyChange implements Notifier. With an attachment the diff is sent as a document whose
// caption carries the summary; otherwise a plain message is sent.
func (tn *TelegramNotifier) NotifyChange(ctx context.Context, endpoint string, fields []models.Field, attachment *models.Attachment) bool {
	head := fmt.Sprintf("<code>%s</code> has been updated", escapeWithin(endpoint, maxTelegramEndpointLength))

	var err error
	if attachment != nil && len(attachment.Data) <= maxTelegramFileSize {
		err = tn.sendDocument(ctx, telegramText(head, fields, maxTelegramCaptionLength), attachment)
	} else {
		if attachment != nil {
			tn.logger.Warn().Str("endpoint", endpoint).Int("size", len(attachment.Data)).Msg("Diff too large for Telegram upload, sending message only")
		}
		err = tn.sendMessage(ctx, telegramText(head, fields, maxTelegramMessageLength))
	}
	return tn.result(err, endpoint, models.EventChange)
}

// NotifyError implements Notifier.
func (tn *TelegramNotifier) NotifyError(ctx context.Context, endpoint, message string, fields []models.Field) bool {
	head := fmt.Sprintf("Error accessing endpoint <code>%s</code>: <b>%s</b>",
		escapeWithin(endpoint, maxTelegramEndpointLength), escapeWithin(message, maxTelegramFieldLength))
	text := telegramText(head, fields, maxTelegramMessageLength)
	return tn.result(tn.sendMessage(ctx, text), endpoint, models.EventError)
}

// NotifyWarning implements Notifier.
func (tn *TelegramNotifier) NotifyWarning(ctx context.Context, endpoint, message string, fields []models.Field) bool {
	head := fmt.Sprintf("Warning for endpoint <code>%s</code>: <b>%s</b>",
		escapeWithin(endpoint, maxTelegramEndpointLength), escapeWithin(message, maxTelegramFieldLength))
	text := telegramText(head, fields, maxTelegramMessageLength)
	return tn.result(tn.sendMessage(ctx, text), endpoint, models.EventWarning)
}

func (tn *TelegramNotifier) result(err error, endpoint string, kind models.EventKind) bool {
	if err != nil {
		tn.logger.Error().Str("error", redactToken(err.Error(), tn.botToken)).Int("status_code", common.StatusCodeOf(err)).Str("endpoint", endpoint).Str("kind", kind.String()).Msg("Telegram notification failed")
		return false
	}
	tn.logger.Info().Str("endpoint", endpoint).Str("kind", kind.String()).Msg("Telegram notification sent")
	return true
}

func (tn *TelegramNotifier) methodURL(method string) string {
	return tn.apiBaseURL + "/bot" + tn.botToken + "/" + method
}

func (tn *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	payload := models.TelegramMessagePayload{
		ChatID:                tn.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return common.WrapError(err, "failed to marshal telegram payload")
	}

	resp, err := tn.client.Post(ctx, tn.methodURL("sendMessage"), "application/json", body)
	if err != nil {
		return common.NewNetworkError("telegram sendMessage", "request failed", err)
	}
	return checkResponse(resp, "telegram sendMessage")
}

func (tn *TelegramNotifier) sendDocument(ctx context.Context, caption string, attachment *models.Attachment) error {
	if len(attachment.Data) > maxTelegramFileSize {
		return sizeTooLarge("document", len(attachment.Data), maxTelegramFileSize)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range map[string]string{"chat_id": tn.chatID, "caption": caption, "parse_mode": "HTML"} {
		if err := writer.WriteField(key, value); err != nil {
			return common.WrapErrorf(err, "failed to write %s to multipart", key)
		}
	}
	part, err := writer.CreateFormFile("document", attachment.Filename)
	if err != nil {
		return common.WrapError(err, "failed to create form file")
	}
	if _, err := part.Write(attachment.Data); err != nil {
		return common.WrapError(err, "failed to copy file data to form")
	}
	if err := writer.Close(); err != nil {
		return common.WrapError(err, "failed to close multipart writer")
	}

	resp, err := tn.client.Post(ctx, tn.methodURL("sendDocument"), writer.FormDataContentType(), body.Bytes())
	if err != nil {
		return common.NewNetworkError("telegram sendDocument", "request failed", err)
	}
	return checkResponse(resp, "telegram sendDocument")
}

// telegramText renders head followed by as many whole fields as fit in limit runes.
// Values are cut before they are wrapped in tags, so the markup stays balanced.
func telegramText(head string, fields []models.Field, limit int) string {
	var sb strings.Builder
	sb.WriteString(head)
	used := utf8.RuneCountInString(head)
	for i, f := range fields {
		line := formatTelegramField(f)
		n := utf8.RuneCountInString(line)
		if used+n > limit {
			omitted := fmt.Sprintf("\n<i>%d more field(s) omitted</i>", len(fields)-i)
			if used+utf8.RuneCountInString(omitted) <= limit {
				sb.WriteString(omitted)
			}
			break
		}
		sb.WriteString(line)
		used += n
	}
	return sb.String()
}

func formatTelegramField(f models.Field) string {
	label := escapeWithin(f.Label, maxTelegramLabelLength)
	switch f.Style {
	case models.FieldCode:
		return fmt.Sprintf("\n<b>%s:</b> <code>%s</code>", label, escapeWithin(f.Value, maxTelegramFieldLength))
	case models.FieldLink:
		return fmt.Sprintf("\n<b>%s:</b> <a href=\"%s\">View</a>", label, html.EscapeString(f.Value))
	case models.FieldBlock:
		return fmt.Sprintf("\n<b>%s:</b>\n<pre>%s</pre>", label, escapeWithin(f.Value, maxTelegramBlockLength))
	default:
		return fmt.Sprintf("\n<b>%s:</b> %s", label, escapeWithin(f.Value, maxTelegramFieldLength))
	}
}

// escapeWithin HTML-escapes s and cuts it on an entity boundary so the result is at most max runes.
func escapeWithin(s string, max int) string {
	escaped := html.EscapeString(s)
	if utf8.RuneCountInString(escaped) <= max {
		return escaped
	}
	var sb strings.Builder
	used := 0
	for _, r := range s {
		e := html.EscapeString(string(r))
		n := utf8.RuneCountInString(e)
		if used+n > max-3 {
			break
		}
		sb.WriteString(e)
		used += n
	}
	return sb.String() + "..."
}
