package datastore

import (
	"fmt"
	"strings"

	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/fingerprint"
	"github.com/rs/zerolog"
)

// BlobInfo describes a stored content blob.
type BlobInfo struct {
	Size int64
}

// HistoryStore is the append-only per-endpoint fingerprint ledger plus the
// content-addressed blob store. Implementations serialise writers.
type HistoryStore interface {
	// LastFingerprint returns the newest fingerprint for endpoint; found is false for unseen endpoints.
	LastFingerprint(endpoint string) (digest string, found bool, err error)
	// Append stores content under digest (skipped when already present) and then records
	// digest as the endpoint's newest version. Appending the current newest digest again is a no-op.
	Append(endpoint, digest string, content []byte) error
	// BlobStat returns ErrBlobNotFound for unknown digests.
	BlobStat(digest string) (BlobInfo, error)
	// ReadBlob returns ErrBlobNotFound for unknown digests.
	ReadBlob(digest string) ([]byte, error)
	// History returns a copy of the endpoint's fingerprints, oldest first.
	History(endpoint string) ([]string, error)
	// Endpoints lists every endpoint with history, sorted.
	Endpoints() ([]string, error)
	Close() error
}

// NewHistoryStore opens the backend selected by storage_config.backend.
func NewHistoryStore(cfg config.StorageConfig, logger zerolog.Logger) (HistoryStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "file":
		return NewFileHistoryStore(cfg, logger)
	case "sqlite":
		return NewSQLiteHistoryStore(cfg.DatabasePath(), logger)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

func validateDigest(digest string) error {
	if !fingerprint.IsValid(digest) {
		return fmt.Errorf("%w: %q", ErrInvalidDigest, digest)
	}
	return nil
}
