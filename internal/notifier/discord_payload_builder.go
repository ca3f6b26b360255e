package notifier

import "github.com/aleister1102/jsmon/internal/models"

// discordEmbedBuilder assembles one embed per event. Title, colour and footer follow the event kind.
type discordEmbedBuilder struct {
	embed models.DiscordEmbed
}

func newDiscordEmbed(kind models.EventKind, description string) *discordEmbedBuilder {
	b := &discordEmbedBuilder{}
	switch kind {
	case models.EventError:
		b.embed.Title, b.embed.Color = ErrorTitle, ErrorEmbedColor
		b.embed.Footer = &models.DiscordEmbedFooter{Text: ErrorFooter}
	case models.EventWarning:
		b.embed.Title, b.embed.Color = WarningTitle, WarningEmbedColor
		b.embed.Footer = &models.DiscordEmbedFooter{Text: WarningFooter}
	default:
		b.embed.Title, b.embed.Color = ChangeTitle, ChangeEmbedColor
		b.embed.Footer = &models.DiscordEmbedFooter{Text: ChangeFooter}
	}
	b.embed.Description = truncateString(description, maxDiscordDescription)
	return b
}

// message adds the free-text message as a full-width code block.
func (b *discordEmbedBuilder) message(label, text string) *discordEmbedBuilder {
	return b.field(label, "```"+codeSafe(text)+"```", false)
}

func (b *discordEmbedBuilder) field(name, value string, inline bool) *discordEmbedBuilder {
	if value == "" {
		value = "-"
	}
	b.embed.Fields = append(b.embed.Fields, models.DiscordEmbedField{
		Name:   name,
		Value:  truncateString(value, maxDiscordFieldValue),
		Inline: inline,
	})
	return b
}

// fields renders notification fields by style: short values inline, links and blocks full width.
func (b *discordEmbedBuilder) fields(fields []models.Field) *discordEmbedBuilder {
	for _, f := range fields {
		switch f.Style {
		case models.FieldCode:
			b.field(f.Label, "`"+codeSafe(f.Value)+"`", true)
		case models.FieldLink:
			b.field(f.Label, "[View]("+f.Value+")", false)
		case models.FieldBlock:
			b.field(f.Label, f.Value, false)
		default:
			b.field(f.Label, f.Value, true)
		}
	}
	return b
}

func (b *discordEmbedBuilder) build() models.DiscordEmbed {
	return b.embed
}
