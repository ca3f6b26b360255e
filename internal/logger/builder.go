package logger

import (
	"io"
	stdlog "log"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder builds the root logger.
type LoggerBuilder struct {
	opts Options
	err  error
}

func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{opts: defaultOptions()}
}

// WithConfig applies the log_config section. A console writer set earlier is kept.
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	console := lb.opts.Console
	lb.opts, lb.err = optionsFromConfig(cfg)
	lb.opts.Console = console
	return lb
}

// WithConsole redirects console output; nil turns it off.
func (lb *LoggerBuilder) WithConsole(w io.Writer) *LoggerBuilder {
	lb.opts.Console = w
	return lb
}

// Build creates the logger and points the standard log package at it.
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	if lb.err != nil {
		return zerolog.Nop(), lb.err
	}
	if lb.opts.MaxSizeMB <= 0 {
		return zerolog.Nop(), common.NewValidationError("max_log_size_mb", lb.opts.MaxSizeMB, "max size must be positive")
	}

	var writers []io.Writer
	if lb.opts.Console != nil {
		writers = append(writers, formatWriter(lb.opts.Format, lb.opts.Console, false))
	}
	if lb.opts.FilePath != "" {
		file, err := rotatingFile(lb.opts)
		if err != nil {
			return zerolog.Nop(), common.WrapError(err, "failed to open log file")
		}
		writers = append(writers, formatWriter(lb.opts.Format, file, true))
	}
	if len(writers) == 0 {
		return zerolog.Nop(), common.NewError("no output writers configured")
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.opts.Level).
		With().
		Timestamp().
		Logger()

	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
	return logger, nil
}
