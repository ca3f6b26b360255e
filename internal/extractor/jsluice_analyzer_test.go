package extractor

import (
	"net/url"
	"testing"

	"github.com/aleister1102/jsmon/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(maxListed int) *JSluiceAnalyzer {
	return NewJSluiceAnalyzer(config.ExtractorConfig{Enabled: true, MaxListed: maxListed}, zerolog.Nop())
}

func TestJSluiceAnalyzer_ExtractURLs(t *testing.T) {
	base, err := url.Parse("https://example.com/static/app.js")
	require.NoError(t, err)

	src := []byte(`fetch("https://api.example.com/v1/users"); fetch("/api/orders");`)
	found := newTestAnalyzer(10).ExtractURLs(src, base)

	assert.Contains(t, found, "https://api.example.com/v1/users")
	assert.Contains(t, found, "https://example.com/api/orders")
}

func TestJSluiceAnalyzer_NewURLs(t *testing.T) {
	base, err := url.Parse("https://example.com/a.js")
	require.NoError(t, err)

	oldSrc := []byte(`fetch("https://api.example.com/v1/users");`)
	newSrc := []byte(`fetch("https://api.example.com/v1/users"); fetch("https://api.example.com/v2/admin");`)

	added, truncated := newTestAnalyzer(10).NewURLs(oldSrc, newSrc, base)
	assert.Equal(t, []string{"https://api.example.com/v2/admin"}, added)
	assert.Zero(t, truncated)
}

func TestJSluiceAnalyzer_NewURLsCapped(t *testing.T) {
	newSrc := []byte(`fetch("https://a.example.com/1"); fetch("https://b.example.com/2"); fetch("https://c.example.com/3");`)

	added, truncated := newTestAnalyzer(2).NewURLs(nil, newSrc, nil)
	assert.Equal(t, []string{"https://a.example.com/1", "https://b.example.com/2"}, added)
	assert.Equal(t, 1, truncated)
}

func TestJSluiceAnalyzer_EmptyContent(t *testing.T) {
	added, truncated := newTestAnalyzer(10).NewURLs(nil, nil, nil)
	assert.Empty(t, added)
	assert.Zero(t, truncated)
}

func TestURLValidator_Resolve(t *testing.T) {
	validator := NewURLValidator(zerolog.Nop())
	base, err := url.Parse("https://example.com")
	require.NoError(t, err)

	resolved, err := validator.Resolve("/path#frag", base)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", resolved)

	_, err = validator.Resolve("/path", nil)
	assert.Error(t, err)

	_, err = validator.Resolve("http://localhost/x", base)
	assert.Error(t, err)

	_, err = validator.Resolve("mailto:someone@example.com", base)
	assert.Error(t, err)

	_, err = validator.Resolve("  ", base)
	assert.Error(t, err)
}
