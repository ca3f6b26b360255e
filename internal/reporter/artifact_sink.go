package reporter

import (
	"path/filepath"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ArtifactSink saves diff documents as <uuid>.html in a directory and builds public links.
type ArtifactSink struct {
	dir         string
	baseURL     string
	fileManager *common.FileManager
	logger      zerolog.Logger
	newID       func() string
}

// NewArtifactSink prepares dir. An empty dir returns a nil sink. If dir cannot be used
// (for instance it is a regular file) the problem is logged and a nil sink is returned, so
// runs continue without saved diffs.
func NewArtifactSink(dir, baseURL string, logger zerolog.Logger) *ArtifactSink {
	if dir == "" {
		return nil
	}
	sinkLogger := logger.With().Str("component", "ArtifactSink").Logger()
	fm := common.NewFileManager(logger)

	if err := fm.EnsureDirectory(dir, 0755); err != nil {
		sinkLogger.Warn().Err(err).Str("dir", dir).Msg("Diff target is not a usable directory, diffs will not be saved")
		return nil
	}

	return &ArtifactSink{
		dir:         dir,
		baseURL:     strings.TrimRight(baseURL, "/"),
		fileManager: fm,
		logger:      sinkLogger,
		newID:       func() string { return uuid.New().String() },
	}
}

// Dir returns the directory artifacts are written to.
func (s *ArtifactSink) Dir() string {
	return s.dir
}

// Save writes document and returns the local path and the public link. The link is empty
// when no base URL is configured.
func (s *ArtifactSink) Save(document []byte) (path string, link string, err error) {
	name := s.newID() + ".html"
	path = filepath.Join(s.dir, name)

	if err := s.fileManager.WriteFileAtomic(path, document, 0644); err != nil {
		return "", "", common.WrapError(err, "failed to save diff document")
	}

	if s.baseURL != "" {
		link = s.baseURL + "/" + name
	}
	s.logger.Info().Str("path", path).Str("link", link).Msg("Diff saved")
	return path, link, nil
}
