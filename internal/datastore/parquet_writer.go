package datastore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// RunArchiveWriter writes one Parquet file per monitor run.
type RunArchiveWriter struct {
	config      config.ArchiveConfig
	logger      zerolog.Logger
	fileManager *common.FileManager
	now         func() time.Time
}

// RunArchiveBuilder provides a fluent interface for creating RunArchiveWriter
type RunArchiveBuilder struct {
	config config.ArchiveConfig
	logger zerolog.Logger
	now    func() time.Time
}

// NewRunArchiveBuilder creates a new RunArchiveBuilder
func NewRunArchiveBuilder(logger zerolog.Logger) *RunArchiveBuilder {
	return &RunArchiveBuilder{
		config: config.NewDefaultArchiveConfig(),
		logger: logger,
		now:    time.Now,
	}
}

// WithArchiveConfig sets the archive configuration
func (b *RunArchiveBuilder) WithArchiveConfig(cfg config.ArchiveConfig) *RunArchiveBuilder {
	b.config = cfg
	return b
}

// WithClock overrides the time source used for file names.
func (b *RunArchiveBuilder) WithClock(now func() time.Time) *RunArchiveBuilder {
	b.now = now
	return b
}

// Build creates a new RunArchiveWriter instance
func (b *RunArchiveBuilder) Build() (*RunArchiveWriter, error) {
	if b.config.Dir == "" {
		return nil, common.NewValidationError("dir", b.config.Dir, "archive directory cannot be empty")
	}

	return &RunArchiveWriter{
		config:      b.config,
		logger:      b.logger.With().Str("component", "RunArchiveWriter").Logger(),
		fileManager: common.NewFileManager(b.logger),
		now:         b.now,
	}, nil
}

// Write stores every CheckResult of summary as a row of run-<UTC timestamp>.parquet and
// returns the file path.
func (w *RunArchiveWriter) Write(ctx context.Context, summary *models.RunSummary) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := w.fileManager.EnsureDirectory(w.config.Dir, 0755); err != nil {
		return "", common.WrapError(err, "failed to prepare archive directory")
	}

	fileName := fmt.Sprintf("run-%s.parquet", w.now().UTC().Format("20060102T150405Z"))
	filePath := filepath.Join(w.config.Dir, fileName)

	records := make([]models.ParquetCheckRecord, 0, len(summary.Results))
	for _, result := range summary.Results {
		records = append(records, result.ToParquetRecord())
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("opening archive file '%s': %w", filePath, err)
	}

	writer := parquet.NewGenericWriter[models.ParquetCheckRecord](file, w.compressionOption())
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		_ = file.Close()
		return "", fmt.Errorf("writing archive rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("closing Parquet writer: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing archive file: %w", err)
	}

	w.logger.Info().Str("path", filePath).Int("records", len(records)).Msg("Run archive written")
	return filePath, nil
}

func (w *RunArchiveWriter) compressionOption() parquet.WriterOption {
	switch strings.ToLower(w.config.CompressionCodec) {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "none", "uncompressed", "":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		w.logger.Warn().Str("codec", w.config.CompressionCodec).Msg("Unsupported compression codec string, defaulting to Uncompressed")
		return parquet.Compression(&parquet.Uncompressed)
	}
}

// ReadRunArchive loads every row of an archive file.
func ReadRunArchive(path string) ([]models.ParquetCheckRecord, error) {
	rows, err := parquet.ReadFile[models.ParquetCheckRecord](path)
	if err != nil {
		return nil, fmt.Errorf("reading archive '%s': %w", path, err)
	}
	return rows, nil
}
