package config

const (
	// Monitor Defaults
	DefaultMonitorTargetsDir          = "targets"
	DefaultMonitorHTTPTimeoutSecs     = 10
	DefaultMonitorInsecureSkipVerify  = true
	DefaultMonitorMaxContentSize      = 10 * 1024 * 1024
	DefaultMonitorEnableHTTP2         = true
	DefaultMonitorUserAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultNotificationTimeoutSecs    = 10
	DefaultNotificationUsername       = "JSMon Bot"
	DefaultNotificationAvatarURL      = "https://i.imgur.com/fKL31aD.jpg"
	DefaultTelegramAPIBaseURL         = "https://api.telegram.org"
	DefaultExtractorMaxListedURLs     = 10
	DefaultArtifactServeAddr          = ":8080"

	// Storage Defaults
	DefaultStorageBackend    = "file"
	DefaultStorageDataDir    = "."
	DefaultStorageIndexFile  = "jsmon.json"
	DefaultStorageBlobDir    = "downloads"
	DefaultStorageSQLitePath = "jsmon.db"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Diff Defaults
	DefaultDiffContextLines      = 3
	DefaultDiffBeautifyScripts   = true
	DefaultDiffMaxDiffFileSizeMB = 10

	// Archive Defaults
	DefaultArchiveDir              = "archive"
	DefaultArchiveCompressionCodec = "zstd"

	// PlaceholderCredential is the value shipped in sample configs; it is never a usable secret.
	PlaceholderCredential = "CHANGEME"
)
