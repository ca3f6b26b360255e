package models

// EventKind classifies a NotificationEvent.
type EventKind int

const (
	EventChange EventKind = iota
	EventError
	EventWarning
)

func (k EventKind) String() string {
	switch k {
	case EventChange:
		return "change"
	case EventError:
		return "error"
	case EventWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// FieldStyle hints how a backend should present a field value.
type FieldStyle int

const (
	FieldPlain FieldStyle = iota
	// FieldCode values are identifiers such as hashes, shown in monospace.
	FieldCode
	// FieldLink values are URLs shown as a clickable link.
	FieldLink
	// FieldBlock values are long, multi-line text shown on their own row.
	FieldBlock
)

// Field is one labelled value shown in a notification. Order is preserved by every backend.
type Field struct {
	Label string
	Value string
	Style FieldStyle
}

// Attachment is a file a backend may upload alongside the message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NotificationEvent is what the monitor hands to the dispatcher.
type NotificationEvent struct {
	Endpoint   string
	Kind       EventKind
	Message    string
	Fields     []Field
	Attachment *Attachment
}

// DiscordMessagePayload represents the JSON payload sent to a Discord webhook.
type DiscordMessagePayload struct {
	Content   string         `json:"content,omitempty"`
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds,omitempty"`
}

// DiscordEmbed represents a Discord embed object.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
}

// DiscordEmbedFooter represents the footer of an embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// DiscordEmbedField represents a field in an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// TelegramMessagePayload is the body of a Bot API sendMessage call.
type TelegramMessagePayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

// SlackMessagePayload is the body posted to a Slack incoming webhook.
type SlackMessagePayload struct {
	Text     string       `json:"text"`
	Username string       `json:"username,omitempty"`
	IconURL  string       `json:"icon_url,omitempty"`
	Blocks   []SlackBlock `json:"blocks,omitempty"`
}

// SlackBlock is a Block Kit layout block.
type SlackBlock struct {
	Type   string      `json:"type"`
	Text   *SlackText  `json:"text,omitempty"`
	Fields []SlackText `json:"fields,omitempty"`
}

// SlackText is a Block Kit text object.
type SlackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
