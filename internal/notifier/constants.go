package notifier

// Discord formatting constants
const (
	ChangeEmbedColor  = 3447003  // blue
	ErrorEmbedColor   = 15158332 // red
	WarningEmbedColor = 16776960 // yellow

	ChangeTitle  = "JS Endpoint Updated!"
	ErrorTitle   = "JSMon Error Alert"
	WarningTitle = "JSMon Warning Alert"

	ChangeFooter  = "JSMon Change Detection"
	ErrorFooter   = "JSMon Error Detection"
	WarningFooter = "JSMon Warning Detection"
)

// Backend limits
const (
	maxDiscordFileSize        = 8 * 1024 * 1024 // without Nitro
	maxDiscordFieldValue      = 1024
	maxDiscordDescription     = 4096
	maxTelegramMessageLength  = 4096
	maxTelegramCaptionLength  = 1024
	maxTelegramFileSize       = 50 * 1024 * 1024
	maxSlackFieldsPerSection  = 10
	maxSlackTextLength        = 3000
	maxTelegramEndpointLength = 256
	maxTelegramLabelLength    = 64
	maxTelegramFieldLength    = 256
	maxTelegramBlockLength    = 512
	maxResponseBodySize       = 1024 * 1024
)
