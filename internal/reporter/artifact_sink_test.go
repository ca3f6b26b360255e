package reporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactSink_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "diffs", "nested")

	sink := NewArtifactSink(dir, "https://diffs.example.com/", zerolog.Nop())
	require.NotNil(t, sink)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestArtifactSink_Save(t *testing.T) {
	dir := t.TempDir()
	sink := NewArtifactSink(dir, "https://diffs.example.com/", zerolog.Nop())
	require.NotNil(t, sink)
	sink.newID = func() string { return "11111111-2222-3333-4444-555555555555" }

	path, link, err := sink.Save([]byte("<html></html>"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "11111111-2222-3333-4444-555555555555.html"), path)
	assert.Equal(t, "https://diffs.example.com/11111111-2222-3333-4444-555555555555.html", link)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestArtifactSink_UniqueNames(t *testing.T) {
	sink := NewArtifactSink(t.TempDir(), "", zerolog.Nop())
	require.NotNil(t, sink)

	first, link, err := sink.Save([]byte("a"))
	require.NoError(t, err)
	assert.Empty(t, link)
	second, _, err := sink.Save([]byte("a"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".html"))
}

func TestArtifactSink_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.Nil(t, NewArtifactSink(file, "https://diffs.example.com", zerolog.Nop()))
}

func TestArtifactSink_EmptyDir(t *testing.T) {
	assert.Nil(t, NewArtifactSink("", "", zerolog.Nop()))
}
