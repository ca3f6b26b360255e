package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_ReadFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	data, err := fm.ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = fm.ReadFile(path, 3)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = fm.ReadFile(filepath.Join(dir, "missing"), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileManager_EnsureDirectory(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, fm.EnsureDirectory(nested, 0755))
	assert.True(t, fm.IsDir(nested))
	require.NoError(t, fm.EnsureDirectory(nested, 0755))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	err := fm.EnsureDirectory(file, 0755)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFileManager_WriteFileAtomic(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "index.json")

	require.NoError(t, fm.WriteFileAtomic(path, []byte("v1"), 0644))
	require.NoError(t, fm.WriteFileAtomic(path, []byte("v2"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
