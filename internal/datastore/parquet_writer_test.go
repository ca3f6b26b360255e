package datastore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunArchiveBuilder_RequiresDir(t *testing.T) {
	cfg := config.NewDefaultArchiveConfig()
	cfg.Dir = ""
	_, err := NewRunArchiveBuilder(zerolog.Nop()).WithArchiveConfig(cfg).Build()
	assert.Error(t, err)
}

func TestRunArchiveWriter_WriteAndRead(t *testing.T) {
	for _, codec := range []string{"zstd", "snappy", "gzip", "none"} {
		t.Run(codec, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "archive")
			cfg := config.ArchiveConfig{Enabled: true, Dir: dir, CompressionCodec: codec}
			fixed := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

			writer, err := NewRunArchiveBuilder(zerolog.Nop()).
				WithArchiveConfig(cfg).
				WithClock(func() time.Time { return fixed }).
				Build()
			require.NoError(t, err)

			summary := models.NewRunSummary(fixed)
			summary.Add(models.CheckResult{Endpoint: "https://example.com/a.js", State: models.CheckEnrolled, NewDigest: "4337927841", NewSize: 8, CheckedAt: fixed})
			summary.Add(models.CheckResult{Endpoint: "https://example.com/b.js", State: models.CheckFetchFailed, Error: "timeout", CheckedAt: fixed})

			path, err := writer.Write(context.Background(), summary)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "run-20240501T123000Z.parquet"), path)

			rows, err := ReadRunArchive(path)
			require.NoError(t, err)
			require.Len(t, rows, 2)

			assert.Equal(t, "https://example.com/a.js", rows[0].Endpoint)
			assert.Equal(t, "enrolled", rows[0].State)
			require.NotNil(t, rows[0].NewDigest)
			assert.Equal(t, "4337927841", *rows[0].NewDigest)
			assert.Nil(t, rows[0].OldDigest)

			assert.Equal(t, "fetch_failed", rows[1].State)
			require.NotNil(t, rows[1].Error)
			assert.Equal(t, "timeout", *rows[1].Error)
		})
	}
}

func TestRunArchiveWriter_CancelledContext(t *testing.T) {
	writer, err := NewRunArchiveBuilder(zerolog.Nop()).
		WithArchiveConfig(config.ArchiveConfig{Dir: t.TempDir()}).
		Build()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = writer.Write(ctx, models.NewRunSummary(time.Now()))
	assert.ErrorIs(t, err, context.Canceled)
}
