package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS history (
	endpoint    TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	digest      TEXT NOT NULL,
	recorded_at DATETIME NOT NULL,
	PRIMARY KEY (endpoint, seq)
);
CREATE TABLE IF NOT EXISTS blobs (
	digest  TEXT PRIMARY KEY,
	content BLOB NOT NULL,
	size    INTEGER NOT NULL
);
`

// SQLiteHistoryStore keeps the same append-only ledger in a sqlite database.
// Each Append runs in one transaction over a single connection, and a lock file next to
// the database keeps a second run from reading the ledger while this one writes it.
type SQLiteHistoryStore struct {
	db     *sql.DB
	lock   *fileLock
	closed bool
	mu     sync.Mutex
	logger zerolog.Logger
	now    func() time.Time
}

// NewSQLiteHistoryStore opens (and if needed creates) the database at path.
func NewSQLiteHistoryStore(path string, logger zerolog.Logger) (*SQLiteHistoryStore, error) {
	storeLogger := logger.With().Str("component", "SQLiteHistoryStore").Logger()

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
	}

	lock, err := acquireFileLock(path + ".lock")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		_ = lock.release()
		return nil, fmt.Errorf("sql.Open failed for %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		_ = lock.release()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	storeLogger.Debug().Str("path", path).Msg("SQLite history store opened")
	return &SQLiteHistoryStore{
		db:     db,
		lock:   lock,
		logger: storeLogger,
		now:    time.Now,
	}, nil
}

// LastFingerprint implements HistoryStore.
func (s *SQLiteHistoryStore) LastFingerprint(endpoint string) (string, bool, error) {
	var digest string
	err := s.db.QueryRow(`SELECT digest FROM history WHERE endpoint = ? ORDER BY seq DESC LIMIT 1`, endpoint).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query last fingerprint: %w", err)
	}
	return digest, true, nil
}

// Append implements HistoryStore.
func (s *SQLiteHistoryStore) Append(endpoint, digest string, content []byte) (err error) {
	if err := validateDigest(digest); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if content == nil {
		content = []byte{}
	}
	if _, err = tx.Exec(`INSERT OR IGNORE INTO blobs (digest, content, size) VALUES (?, ?, ?)`, digest, content, len(content)); err != nil {
		return fmt.Errorf("failed to insert blob: %w", err)
	}

	var last sql.NullString
	var maxSeq sql.NullInt64
	err = tx.QueryRow(`SELECT digest, seq FROM history WHERE endpoint = ? ORDER BY seq DESC LIMIT 1`, endpoint).Scan(&last, &maxSeq)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to query history: %w", err)
	}
	err = nil

	if !(last.Valid && last.String == digest) {
		nextSeq := maxSeq.Int64 + 1
		if _, err = tx.Exec(`INSERT INTO history (endpoint, seq, digest, recorded_at) VALUES (?, ?, ?, ?)`,
			endpoint, nextSeq, digest, s.now().UTC()); err != nil {
			return fmt.Errorf("failed to insert history entry: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit append: %w", err)
	}
	s.logger.Debug().Str("endpoint", endpoint).Str("digest", digest).Msg("Appended history entry")
	return nil
}

// BlobStat implements HistoryStore.
func (s *SQLiteHistoryStore) BlobStat(digest string) (BlobInfo, error) {
	var size int64
	err := s.db.QueryRow(`SELECT size FROM blobs WHERE digest = ?`, digest).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return BlobInfo{}, fmt.Errorf("digest %s: %w", digest, ErrBlobNotFound)
	}
	if err != nil {
		return BlobInfo{}, fmt.Errorf("failed to stat blob: %w", err)
	}
	return BlobInfo{Size: size}, nil
}

// ReadBlob implements HistoryStore.
func (s *SQLiteHistoryStore) ReadBlob(digest string) ([]byte, error) {
	var content []byte
	err := s.db.QueryRow(`SELECT content FROM blobs WHERE digest = ?`, digest).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("digest %s: %w", digest, ErrBlobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return content, nil
}

// History implements HistoryStore.
func (s *SQLiteHistoryStore) History(endpoint string) ([]string, error) {
	return s.queryStrings(`SELECT digest FROM history WHERE endpoint = ? ORDER BY seq ASC`, endpoint)
}

// Endpoints implements HistoryStore.
func (s *SQLiteHistoryStore) Endpoints() ([]string, error) {
	return s.queryStrings(`SELECT DISTINCT endpoint FROM history ORDER BY endpoint ASC`)
}

func (s *SQLiteHistoryStore) queryStrings(query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Close closes the database and releases the lock. Calling it twice is safe.
func (s *SQLiteHistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(s.db.Close(), s.lock.release())
}
