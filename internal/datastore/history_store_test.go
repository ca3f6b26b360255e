package datastore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/fingerprint"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endpoint = "https://example.com/a.js"

func fileStoreConfig(dir string) config.StorageConfig {
	cfg := config.NewDefaultStorageConfig()
	cfg.DataDir = dir
	return cfg
}

// backends runs fn against a fresh store of every backend.
func backends(t *testing.T, fn func(t *testing.T, store HistoryStore)) {
	t.Run("file", func(t *testing.T) {
		store, err := NewFileHistoryStore(fileStoreConfig(t.TempDir()), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		fn(t, store)
	})
	t.Run("sqlite", func(t *testing.T) {
		store, err := NewSQLiteHistoryStore(filepath.Join(t.TempDir(), "jsmon.db"), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		fn(t, store)
	})
}

func TestHistoryStore_UnknownEndpoint(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		digest, found, err := store.LastFingerprint(endpoint)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, digest)

		history, err := store.History(endpoint)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestHistoryStore_AppendAndRead(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		v1, v2 := "var a=1;", "var a=2;"
		fp1, fp2 := fingerprint.Of(v1), fingerprint.Of(v2)

		require.NoError(t, store.Append(endpoint, fp1, []byte(v1)))
		last, found, err := store.LastFingerprint(endpoint)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, fp1, last)

		require.NoError(t, store.Append(endpoint, fp2, []byte(v2)))
		last, _, err = store.LastFingerprint(endpoint)
		require.NoError(t, err)
		assert.Equal(t, fp2, last)

		history, err := store.History(endpoint)
		require.NoError(t, err)
		assert.Equal(t, []string{fp1, fp2}, history)

		data, err := store.ReadBlob(fp1)
		require.NoError(t, err)
		assert.Equal(t, v1, string(data))

		info, err := store.BlobStat(fp2)
		require.NoError(t, err)
		assert.Equal(t, int64(8), info.Size)
	})
}

func TestHistoryStore_Monotonic(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		a, b := fingerprint.Of("a"), fingerprint.Of("b")
		sequence := []string{a, b, a, b}
		for i, fp := range sequence {
			require.NoError(t, store.Append(endpoint, fp, []byte("x")))
			history, err := store.History(endpoint)
			require.NoError(t, err)
			assert.Len(t, history, i+1)
			assert.Equal(t, sequence[:i+1], history)
		}
	})
}

func TestHistoryStore_AppendSameDigestIsNoop(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		fp := fingerprint.Of("same")
		require.NoError(t, store.Append(endpoint, fp, []byte("same")))
		require.NoError(t, store.Append(endpoint, fp, []byte("same")))

		history, err := store.History(endpoint)
		require.NoError(t, err)
		assert.Equal(t, []string{fp}, history)
	})
}

func TestHistoryStore_BlobWriteOnce(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		fp := fingerprint.Of("original")
		require.NoError(t, store.Append(endpoint, fp, []byte("original")))
		require.NoError(t, store.Append("https://example.com/b.js", fp, []byte("different bytes")))

		data, err := store.ReadBlob(fp)
		require.NoError(t, err)
		assert.Equal(t, "original", string(data))
	})
}

func TestHistoryStore_MissingBlob(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		_, err := store.BlobStat("0123456789")
		assert.ErrorIs(t, err, ErrBlobNotFound)

		_, err = store.ReadBlob("0123456789")
		assert.ErrorIs(t, err, ErrBlobNotFound)
	})
}

func TestHistoryStore_HistoryIsCopy(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		fp := fingerprint.Of("x")
		require.NoError(t, store.Append(endpoint, fp, []byte("x")))

		history, err := store.History(endpoint)
		require.NoError(t, err)
		history[0] = "tampered!!"

		again, err := store.History(endpoint)
		require.NoError(t, err)
		assert.Equal(t, []string{fp}, again)
	})
}

func TestHistoryStore_Endpoints(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		require.NoError(t, store.Append("https://example.com/z.js", fingerprint.Of("z"), []byte("z")))
		require.NoError(t, store.Append("https://example.com/a.js", fingerprint.Of("a"), []byte("a")))

		endpoints, err := store.Endpoints()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a.js", "https://example.com/z.js"}, endpoints)
	})
}

func TestHistoryStore_InvalidDigest(t *testing.T) {
	backends(t, func(t *testing.T, store HistoryStore) {
		err := store.Append(endpoint, "../../etc/passwd", []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidDigest)
	})
}

func TestFileHistoryStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := fileStoreConfig(dir)
	fp := fingerprint.Of("var a=1;")

	store, err := NewFileHistoryStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Append(endpoint, fp, []byte("var a=1;")))
	require.NoError(t, store.Close())

	assert.FileExists(t, filepath.Join(dir, "jsmon.json"))
	assert.FileExists(t, filepath.Join(dir, "downloads", fp))

	reopened, err := NewFileHistoryStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	last, found, err := reopened.LastFingerprint(endpoint)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, fp, last)
}

func TestFileHistoryStore_ReadsExistingIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jsmon.json"),
		[]byte(`{"https://example.com/a.js": ["0123456789", "abcdefabcd"]}`), 0644))

	store, err := NewFileHistoryStore(fileStoreConfig(dir), zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	last, found, err := store.LastFingerprint(endpoint)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abcdefabcd", last)
}

func TestFileHistoryStore_CorruptIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jsmon.json"), []byte("{not json"), 0644))

	_, err := NewFileHistoryStore(fileStoreConfig(dir), zerolog.Nop())
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "jsmon.json.lock"), "lock must be released on failure")
}

func TestFileHistoryStore_Locking(t *testing.T) {
	cfg := fileStoreConfig(t.TempDir())

	first, err := NewFileHistoryStore(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = NewFileHistoryStore(cfg, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrStoreLocked))

	require.NoError(t, first.Close())
	require.NoError(t, first.Close())

	second, err := NewFileHistoryStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestFileHistoryStore_ClosedStore(t *testing.T) {
	store, err := NewFileHistoryStore(fileStoreConfig(t.TempDir()), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, _, err = store.LastFingerprint(endpoint)
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, store.Append(endpoint, fingerprint.Of("x"), []byte("x")), ErrStoreClosed)
}

func TestNewHistoryStore_Factory(t *testing.T) {
	dir := t.TempDir()

	cfg := fileStoreConfig(dir)
	store, err := NewHistoryStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	_, ok := store.(*FileHistoryStore)
	assert.True(t, ok)
	require.NoError(t, store.Close())

	cfg.Backend = "sqlite"
	store, err = NewHistoryStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	_, ok = store.(*SQLiteHistoryStore)
	assert.True(t, ok)
	require.NoError(t, store.Close())
	assert.FileExists(t, filepath.Join(dir, "jsmon.db"))

	cfg.Backend = "redis"
	_, err = NewHistoryStore(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestHistoryStore_StaleLockFileIsReclaimed(t *testing.T) {
	stale := []byte("999999 2024-01-01T00:00:00Z\n")

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		lockPath := filepath.Join(dir, "jsmon.json.lock")
		require.NoError(t, os.WriteFile(lockPath, stale, 0644))

		store, err := NewFileHistoryStore(fileStoreConfig(dir), zerolog.Nop())
		require.NoError(t, err)

		owner, err := os.ReadFile(lockPath)
		require.NoError(t, err)
		assert.NotContains(t, string(owner), "999999")

		require.NoError(t, store.Close())
		assert.NoFileExists(t, lockPath)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jsmon.db")
		require.NoError(t, os.WriteFile(path+".lock", stale, 0644))

		store, err := NewSQLiteHistoryStore(path, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, store.Close())
		assert.NoFileExists(t, path+".lock")
	})
}

func TestSQLiteHistoryStore_Locking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsmon.db")

	first, err := NewSQLiteHistoryStore(path, zerolog.Nop())
	require.NoError(t, err)

	_, err = NewSQLiteHistoryStore(path, zerolog.Nop())
	assert.ErrorIs(t, err, ErrStoreLocked)

	require.NoError(t, first.Close())
	require.NoError(t, first.Close())

	second, err := NewSQLiteHistoryStore(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, second.Close())
}
