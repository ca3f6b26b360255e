package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// formatWriter renders entries for out. Files never get colour codes.
func formatWriter(format Format, out io.Writer, isFile bool) io.Writer {
	switch format {
	case FormatJSON:
		return out
	case FormatText:
		return zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: "2006-01-02 15:04:05"}
	default:
		return zerolog.ConsoleWriter{Out: out, NoColor: isFile, TimeFormat: "15:04:05"}
	}
}

// rotatingFile opens a size-rotated log file, creating its directory.
func rotatingFile(opts Options) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
	}, nil
}
