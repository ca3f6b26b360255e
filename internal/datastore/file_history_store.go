package datastore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/rs/zerolog"
)

// FileHistoryStore keeps the index in a JSON file (endpoint -> fingerprints) and each
// content version in <blob dir>/<fingerprint>.
type FileHistoryStore struct {
	indexPath   string
	blobDir     string
	index       map[string][]string
	mu          sync.Mutex
	lock        *fileLock
	fileManager *common.FileManager
	logger      zerolog.Logger
	closed      bool
}

// NewFileHistoryStore loads the index and takes the store lock.
func NewFileHistoryStore(cfg config.StorageConfig, logger zerolog.Logger) (*FileHistoryStore, error) {
	storeLogger := logger.With().Str("component", "FileHistoryStore").Logger()
	fm := common.NewFileManager(logger)

	indexPath := cfg.IndexPath()
	blobDir := cfg.BlobPath()

	if err := fm.EnsureDirectory(filepath.Dir(indexPath), 0755); err != nil {
		return nil, common.WrapError(err, "failed to prepare data directory")
	}
	if err := fm.EnsureDirectory(blobDir, 0755); err != nil {
		return nil, common.WrapError(err, "failed to prepare blob directory")
	}

	lock, err := acquireFileLock(indexPath + ".lock")
	if err != nil {
		return nil, err
	}

	index, err := loadIndex(fm, indexPath)
	if err != nil {
		_ = lock.release()
		return nil, err
	}

	storeLogger.Debug().
		Str("index", indexPath).
		Str("blobs", blobDir).
		Int("endpoints", len(index)).
		Msg("File history store opened")

	return &FileHistoryStore{
		indexPath:   indexPath,
		blobDir:     blobDir,
		index:       index,
		lock:        lock,
		fileManager: fm,
		logger:      storeLogger,
	}, nil
}

func loadIndex(fm *common.FileManager, path string) (map[string][]string, error) {
	data, err := fm.ReadFile(path, 0)
	if errors.Is(err, common.ErrNotFound) {
		return make(map[string][]string), nil
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to read history index")
	}

	index := make(map[string][]string)
	if len(data) == 0 {
		return index, nil
	}
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, common.WrapErrorf(err, "history index %s is corrupt", path)
	}
	return index, nil
}

// LastFingerprint implements HistoryStore.
func (s *FileHistoryStore) LastFingerprint(endpoint string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, ErrStoreClosed
	}
	history := s.index[endpoint]
	if len(history) == 0 {
		return "", false, nil
	}
	return history[len(history)-1], true, nil
}

// Append implements HistoryStore. The blob is written before the index, and the index is
// replaced atomically, so a crash never leaves an index entry without its blob.
func (s *FileHistoryStore) Append(endpoint, digest string, content []byte) error {
	if err := validateDigest(digest); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if err := s.writeBlob(digest, content); err != nil {
		return err
	}

	history := s.index[endpoint]
	if len(history) > 0 && history[len(history)-1] == digest {
		return nil
	}

	updated := make(map[string][]string, len(s.index)+1)
	for k, v := range s.index {
		updated[k] = v
	}
	next := make([]string, len(history), len(history)+1)
	copy(next, history)
	updated[endpoint] = append(next, digest)

	data, err := json.Marshal(updated)
	if err != nil {
		return common.WrapError(err, "failed to encode history index")
	}
	if err := s.fileManager.WriteFileAtomic(s.indexPath, data, 0644); err != nil {
		return common.WrapError(err, "failed to persist history index")
	}

	s.index = updated
	s.logger.Debug().Str("endpoint", endpoint).Str("digest", digest).Int("versions", len(updated[endpoint])).Msg("Appended history entry")
	return nil
}

func (s *FileHistoryStore) writeBlob(digest string, content []byte) error {
	path := s.blobPath(digest)
	if s.fileManager.FileExists(path) {
		return nil
	}
	if err := s.fileManager.WriteFileAtomic(path, content, 0644); err != nil {
		return common.WrapError(err, "failed to write content blob")
	}
	return nil
}

func (s *FileHistoryStore) blobPath(digest string) string {
	return filepath.Join(s.blobDir, digest)
}

// BlobStat implements HistoryStore.
func (s *FileHistoryStore) BlobStat(digest string) (BlobInfo, error) {
	if err := validateDigest(digest); err != nil {
		return BlobInfo{}, err
	}
	info, err := os.Stat(s.blobPath(digest))
	if os.IsNotExist(err) {
		return BlobInfo{}, common.WrapErrorf(ErrBlobNotFound, "digest %s", digest)
	}
	if err != nil {
		return BlobInfo{}, common.WrapError(err, "failed to stat blob")
	}
	return BlobInfo{Size: info.Size()}, nil
}

// ReadBlob implements HistoryStore.
func (s *FileHistoryStore) ReadBlob(digest string) ([]byte, error) {
	if err := validateDigest(digest); err != nil {
		return nil, err
	}
	data, err := s.fileManager.ReadFile(s.blobPath(digest), 0)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.WrapErrorf(ErrBlobNotFound, "digest %s", digest)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// History implements HistoryStore.
func (s *FileHistoryStore) History(endpoint string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	history := s.index[endpoint]
	out := make([]string, len(history))
	copy(out, history)
	return out, nil
}

// Endpoints implements HistoryStore.
func (s *FileHistoryStore) Endpoints() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]string, 0, len(s.index))
	for endpoint := range s.index {
		out = append(out, endpoint)
	}
	sort.Strings(out)
	return out, nil
}

// Close releases the lock file. Calling it twice is safe.
func (s *FileHistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.lock.release()
}
