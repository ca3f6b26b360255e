package urlhandler

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "https script", input: "https://example.com/a.js"},
		{name: "http with port and query", input: "http://example.com:8080/app.js?v=3"},
		{name: "missing scheme", input: "example.com/a.js", wantErr: true},
		{name: "missing host", input: "https:///a.js", wantErr: true},
		{name: "relative path", input: "/static/a.js", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEndpoint(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.True(t, IsValidEndpoint(tt.input))
				return
			}
			var validationErr *common.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, "endpoint", validationErr.Field)
			assert.False(t, IsValidEndpoint(tt.input))
		})
	}
}

func TestResolveURL(t *testing.T) {
	base, _ := url.Parse("https://example.com/static/js/app.js")

	resolved, err := ResolveURL("../api/v1/users#frag", base)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/static/api/v1/users", resolved)

	resolved, err = ResolveURL("https://cdn.example.net/x.js", base)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.net/x.js", resolved)

	_, err = ResolveURL("/only/path", nil)
	assert.Error(t, err)

	_, err = ResolveURL("  ", base)
	assert.Error(t, err)
}

func writeTargets(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadEndpoints(t *testing.T) {
	dir := t.TempDir()
	writeTargets(t, dir, "b.txt", "https://example.com/b.js\nhttps://example.com/a.js\n")
	writeTargets(t, dir, "a.txt", "  https://example.com/a.js  \n\n\t\nnot-a-url\n")
	writeTargets(t, dir, ".hidden", "https://example.com/hidden.js\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writeTargets(t, filepath.Join(dir, "nested"), "c.txt", "https://example.com/nested.js\n")

	endpoints, err := LoadEndpoints(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/a.js",
		"not-a-url",
		"https://example.com/b.js",
	}, endpoints)
}

func TestLoadEndpoints_EmptyDir(t *testing.T) {
	endpoints, err := LoadEndpoints(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, endpoints)
}

func TestLoadEndpoints_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadEndpoints(filepath.Join(dir, "missing"), zerolog.Nop())
	assert.ErrorIs(t, err, ErrTargetsDirNotFound)

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = LoadEndpoints(file, zerolog.Nop())
	assert.ErrorIs(t, err, ErrTargetsNotDir)
}
