package config

import "path/filepath"

// StorageConfig defines where fingerprint history and content blobs live
type StorageConfig struct {
	Backend    string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,storagebackend"`
	DataDir    string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
	IndexFile  string `json:"index_file,omitempty" yaml:"index_file,omitempty"`
	BlobDir    string `json:"blob_dir,omitempty" yaml:"blob_dir,omitempty"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:    DefaultStorageBackend,
		DataDir:    DefaultStorageDataDir,
		IndexFile:  DefaultStorageIndexFile,
		BlobDir:    DefaultStorageBlobDir,
		SQLitePath: DefaultStorageSQLitePath,
	}
}

// IndexPath returns the index file path resolved against DataDir.
func (sc StorageConfig) IndexPath() string {
	return sc.resolve(sc.IndexFile, DefaultStorageIndexFile)
}

// BlobPath returns the blob directory resolved against DataDir.
func (sc StorageConfig) BlobPath() string {
	return sc.resolve(sc.BlobDir, DefaultStorageBlobDir)
}

// DatabasePath returns the sqlite database path resolved against DataDir.
func (sc StorageConfig) DatabasePath() string {
	return sc.resolve(sc.SQLitePath, DefaultStorageSQLitePath)
}

func (sc StorageConfig) resolve(p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return p
	}
	dataDir := sc.DataDir
	if dataDir == "" {
		dataDir = DefaultStorageDataDir
	}
	return filepath.Join(dataDir, p)
}
