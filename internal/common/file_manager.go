package common

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileManager provides file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir reports whether path exists and is a directory.
func (fm *FileManager) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ReadFile reads a whole file, refusing files larger than maxSize (0 = no limit).
func (fm *FileManager) ReadFile(path string, maxSize int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapError(ErrNotFound, fmt.Sprintf("file not found: %s", path))
		}
		return nil, WrapError(err, fmt.Sprintf("failed to open file: %s", path))
	}
	defer func() { _ = file.Close() }()

	var reader io.Reader = file
	if maxSize > 0 {
		reader = io.LimitReader(file, maxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, WrapError(err, fmt.Sprintf("failed to read file: %s", path))
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, NewValidationError("file_size", len(data), fmt.Sprintf("file %s exceeds maximum size %d", path, maxSize))
	}
	return data, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return WrapError(err, "failed to check directory: "+path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// WriteFileAtomic writes data to a temp file in the target directory and renames it into place,
// so readers observe either the old or the new content.
func (fm *FileManager) WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := fm.EnsureDirectory(dir, 0755); err != nil {
		return WrapError(err, "failed to create parent directories for: "+path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return WrapError(err, "failed to create temp file for: "+path)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return WrapError(err, "failed to write temp file for: "+path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return WrapError(err, "failed to sync temp file for: "+path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return WrapError(err, "failed to close temp file for: "+path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return WrapError(err, "failed to set permissions on: "+path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return WrapError(err, "failed to move temp file into place: "+path)
	}
	return nil
}
