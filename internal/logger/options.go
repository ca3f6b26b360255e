package logger

import (
	"io"
	"os"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/rs/zerolog"
)

// Format selects how entries are rendered.
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
	// FormatText is the console layout without colour and with full timestamps.
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	}
	return "console"
}

// Options is the resolved form of the log_config section.
type Options struct {
	Level      zerolog.Level
	Format     Format
	Console    io.Writer // nil disables console output
	FilePath   string    // empty disables file output
	MaxSizeMB  int
	MaxBackups int
}

func defaultOptions() Options {
	return Options{
		Level:      zerolog.InfoLevel,
		Format:     FormatConsole,
		Console:    os.Stderr,
		MaxSizeMB:  config.DefaultMaxLogSizeMB,
		MaxBackups: config.DefaultMaxLogBackups,
	}
}

// optionsFromConfig resolves cfg on top of the defaults. An unknown level falls
// back to info and is reported through the returned error.
func optionsFromConfig(cfg config.LogConfig) (Options, error) {
	opts := defaultOptions()

	level, err := ParseLevel(cfg.LogLevel)
	opts.Level = level
	opts.Format = ParseFormat(cfg.LogFormat)
	opts.FilePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		opts.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		opts.MaxBackups = cfg.MaxLogBackups
	}
	return opts, err
}

// ParseLevel accepts any zerolog level name, case-insensitively. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, common.WrapErrorf(err, "invalid log level %q", s)
	}
	return level, nil
}

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	}
	return FormatConsole
}
