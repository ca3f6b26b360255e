package logger

import (
	"bytes"
	"encoding/json"
	stdlog "log"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/jsmon/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	_, err := New(config.NewDefaultLogConfig())
	require.NoError(t, err)
}

func TestBuilder_JSONConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	log, err := NewLoggerBuilder().WithConfig(cfg).WithConsole(&buf).Build()
	require.NoError(t, err)

	log.Info().Msg("dropped")
	log.Warn().Str("endpoint", "https://example.com/a.js").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "https://example.com/a.js", entry["endpoint"])
}

func TestBuilder_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jsmon.log")
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = path
	cfg.LogFormat = "json"

	log, err := NewLoggerBuilder().WithConfig(cfg).WithConsole(nil).Build()
	require.NoError(t, err)
	log.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestBuilder_RedirectsStdLog(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"

	_, err := NewLoggerBuilder().WithConfig(cfg).WithConsole(&buf).Build()
	require.NoError(t, err)
	t.Cleanup(func() { stdlog.SetOutput(os.Stderr) })

	stdlog.Print("from stdlib")
	assert.Contains(t, buf.String(), "from stdlib")
}

func TestBuilder_InvalidLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "loud"
	_, err := NewLoggerBuilder().WithConfig(cfg).Build()
	assert.Error(t, err)
}

func TestBuilder_NoWriters(t *testing.T) {
	_, err := NewLoggerBuilder().WithConsole(nil).Build()
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatConsole, ParseFormat(""))
	assert.Equal(t, FormatConsole, ParseFormat("unknown"))
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.LogConfig{LogLevel: "debug", LogFormat: "text", LogFile: "out.log", MaxLogSizeMB: 5}
	opts, err := optionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, opts.Level)
	assert.Equal(t, FormatText, opts.Format)
	assert.Equal(t, "out.log", opts.FilePath)
	assert.Equal(t, 5, opts.MaxSizeMB)
	assert.Equal(t, config.DefaultMaxLogBackups, opts.MaxBackups)
	assert.Equal(t, "text", opts.Format.String())
}
