package differ

import (
	"errors"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/datastore"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/rs/zerolog"
)

// BlobReader is the part of the history store the differ needs.
type BlobReader interface {
	ReadBlob(digest string) ([]byte, error)
}

// DocumentRenderer turns a computed diff into a self-contained document.
type DocumentRenderer interface {
	RenderDiff(artifact *models.DiffArtifact) ([]byte, error)
}

// ContentDiffer loads two stored versions and produces a DiffArtifact
type ContentDiffer struct {
	blobs      BlobReader
	renderer   DocumentRenderer
	lineDiffer *LineDiffer
	config     config.DiffConfig
	logger     zerolog.Logger
}

// ContentDifferBuilder provides a fluent interface for creating ContentDiffer
type ContentDifferBuilder struct {
	blobs    BlobReader
	renderer DocumentRenderer
	config   config.DiffConfig
	logger   zerolog.Logger
}

// NewContentDifferBuilder creates a new builder
func NewContentDifferBuilder(logger zerolog.Logger) *ContentDifferBuilder {
	return &ContentDifferBuilder{
		config: config.NewDefaultDiffConfig(),
		logger: logger,
	}
}

// WithDiffConfig sets the diff configuration
func (b *ContentDifferBuilder) WithDiffConfig(cfg config.DiffConfig) *ContentDifferBuilder {
	b.config = cfg
	return b
}

// WithBlobReader sets where stored versions are loaded from
func (b *ContentDifferBuilder) WithBlobReader(blobs BlobReader) *ContentDifferBuilder {
	b.blobs = blobs
	return b
}

// WithRenderer sets the document renderer
func (b *ContentDifferBuilder) WithRenderer(renderer DocumentRenderer) *ContentDifferBuilder {
	b.renderer = renderer
	return b
}

// Build creates a new ContentDiffer instance
func (b *ContentDifferBuilder) Build() (*ContentDiffer, error) {
	if b.blobs == nil {
		return nil, common.NewValidationError("blob_reader", nil, "blob reader cannot be nil")
	}
	if b.renderer == nil {
		return nil, common.NewValidationError("renderer", nil, "renderer cannot be nil")
	}

	return &ContentDiffer{
		blobs:      b.blobs,
		renderer:   b.renderer,
		lineDiffer: NewLineDiffer(),
		config:     b.config,
		logger:     b.logger.With().Str("component", "ContentDiffer").Logger(),
	}, nil
}

// Diff compares the blobs stored under oldDigest and newDigest.
// Errors are *MissingBlobError or *RenderError.
func (cd *ContentDiffer) Diff(oldDigest, newDigest, contentType string) (*models.DiffArtifact, error) {
	oldContent, err := cd.load(oldDigest)
	if err != nil {
		return nil, err
	}
	newContent, err := cd.load(newDigest)
	if err != nil {
		return nil, err
	}

	artifact := &models.DiffArtifact{
		OldDigest:   oldDigest,
		NewDigest:   newDigest,
		OldSize:     int64(len(oldContent)),
		NewSize:     int64(len(newContent)),
		ContentType: contentType,
	}

	if cd.tooLarge(oldContent) || cd.tooLarge(newContent) {
		cd.logger.Warn().
			Str("old_digest", oldDigest).
			Str("new_digest", newDigest).
			Int64("old_size", artifact.OldSize).
			Int64("new_size", artifact.NewSize).
			Int("limit_mb", cd.config.MaxDiffFileSizeMB).
			Msg("Content too large for detailed diff")
		artifact.Skipped = true
		return cd.render(artifact)
	}

	oldText, newText := string(oldContent), string(newContent)
	if cd.config.BeautifyScripts && IsScriptLike(contentType) {
		oldPretty, errOld := Beautify(oldText)
		newPretty, errNew := Beautify(newText)
		if errOld == nil && errNew == nil {
			oldText, newText = oldPretty, newPretty
			artifact.Beautified = true
		} else {
			cd.logger.Warn().
				AnErr("old_error", errOld).
				AnErr("new_error", errNew).
				Str("content_type", contentType).
				Msg("Beautifier failed, diffing raw content")
		}
	}

	lines := cd.lineDiffer.Diff(oldText, newText)
	artifact.LinesAdded, artifact.LinesDeleted = CountChanges(lines)
	artifact.Hunks = BuildHunks(lines, cd.config.ContextLines)

	return cd.render(artifact)
}

func (cd *ContentDiffer) load(digest string) ([]byte, error) {
	data, err := cd.blobs.ReadBlob(digest)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, datastore.ErrBlobNotFound) || errors.Is(err, datastore.ErrInvalidDigest) {
		return nil, &MissingBlobError{Digest: digest, Err: err}
	}
	return nil, &MissingBlobError{Digest: digest, Err: common.WrapError(err, "blob could not be read")}
}

func (cd *ContentDiffer) tooLarge(content []byte) bool {
	if cd.config.MaxDiffFileSizeMB <= 0 {
		return false
	}
	return int64(len(content)) > int64(cd.config.MaxDiffFileSizeMB)*1024*1024
}

func (cd *ContentDiffer) render(artifact *models.DiffArtifact) (*models.DiffArtifact, error) {
	doc, err := cd.renderer.RenderDiff(artifact)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	artifact.Document = doc
	return artifact, nil
}
