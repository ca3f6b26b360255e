package differ

import (
	"errors"
	"strings"
	"testing"

	"github.com/aleister1102/jsmon/internal/config"
	"github.com/aleister1102/jsmon/internal/datastore"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/aleister1102/jsmon/internal/reporter"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBlobs map[string][]byte

func (m memoryBlobs) ReadBlob(digest string) ([]byte, error) {
	data, ok := m[digest]
	if !ok {
		return nil, datastore.ErrBlobNotFound
	}
	return data, nil
}

type stubRenderer struct {
	calls int
	err   error
}

func (r *stubRenderer) RenderDiff(artifact *models.DiffArtifact) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if artifact.Skipped {
		return []byte("skipped"), nil
	}
	return []byte("rendered"), nil
}

func newTestDiffer(t *testing.T, blobs BlobReader, renderer DocumentRenderer, cfg config.DiffConfig) *ContentDiffer {
	t.Helper()
	cd, err := NewContentDifferBuilder(zerolog.Nop()).
		WithDiffConfig(cfg).
		WithBlobReader(blobs).
		WithRenderer(renderer).
		Build()
	require.NoError(t, err)
	return cd
}

func rawDiffConfig() config.DiffConfig {
	cfg := config.NewDefaultDiffConfig()
	cfg.BeautifyScripts = false
	return cfg
}

func TestContentDiffer_Diff(t *testing.T) {
	blobs := memoryBlobs{
		"4337927841": []byte("var a=1;"),
		"b3a9c0355b": []byte("var a=2;"),
	}
	renderer := &stubRenderer{}
	cd := newTestDiffer(t, blobs, renderer, rawDiffConfig())

	artifact, err := cd.Diff("4337927841", "b3a9c0355b", "application/javascript")
	require.NoError(t, err)

	assert.Equal(t, int64(8), artifact.OldSize)
	assert.Equal(t, int64(8), artifact.NewSize)
	assert.Equal(t, 1, artifact.LinesAdded)
	assert.Equal(t, 1, artifact.LinesDeleted)
	assert.Len(t, artifact.Hunks, 1)
	assert.False(t, artifact.Beautified)
	assert.Equal(t, []byte("rendered"), artifact.Document)
	assert.Equal(t, 1, renderer.calls)
}

func TestContentDiffer_HTMLDocumentIsStable(t *testing.T) {
	blobs := memoryBlobs{
		"4337927841": []byte("function a(){return 1}\nvar x=\"<b>&\";"),
		"b3a9c0355b": []byte("function a(){return 2}\nvar x=\"<b>&\";\nvar y=3;"),
	}
	renderer, err := reporter.NewHTMLDiffRenderer()
	require.NoError(t, err)
	cd := newTestDiffer(t, blobs, renderer, config.NewDefaultDiffConfig())

	first, err := cd.Diff("4337927841", "b3a9c0355b", "application/javascript")
	require.NoError(t, err)
	second, err := cd.Diff("4337927841", "b3a9c0355b", "application/javascript")
	require.NoError(t, err)

	require.NotEmpty(t, first.Document)
	assert.Equal(t, first.Document, second.Document)
	assert.Equal(t, first.Hunks, second.Hunks)
	assert.Contains(t, string(first.Document), "<html")
	assert.NotContains(t, string(first.Document), `var x="<b>&"`)
	assert.Positive(t, first.LinesAdded)
}

func TestContentDiffer_MissingBlob(t *testing.T) {
	blobs := memoryBlobs{"4337927841": []byte("var a=1;")}
	cd := newTestDiffer(t, blobs, &stubRenderer{}, rawDiffConfig())

	_, err := cd.Diff("4337927841", "b3a9c0355b", "")
	require.Error(t, err)

	var missing *MissingBlobError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "b3a9c0355b", missing.Digest)
	assert.True(t, errors.Is(err, datastore.ErrBlobNotFound))
}

func TestContentDiffer_RenderFailure(t *testing.T) {
	blobs := memoryBlobs{"aaaaaaaaaa": []byte("x"), "bbbbbbbbbb": []byte("y")}
	cd := newTestDiffer(t, blobs, &stubRenderer{err: errors.New("boom")}, rawDiffConfig())

	_, err := cd.Diff("aaaaaaaaaa", "bbbbbbbbbb", "")
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestContentDiffer_SkipsOversizedContent(t *testing.T) {
	big := strings.Repeat("a", 1024*1024+1)
	blobs := memoryBlobs{"aaaaaaaaaa": []byte("small"), "bbbbbbbbbb": []byte(big)}
	cfg := rawDiffConfig()
	cfg.MaxDiffFileSizeMB = 1
	cd := newTestDiffer(t, blobs, &stubRenderer{}, cfg)

	artifact, err := cd.Diff("aaaaaaaaaa", "bbbbbbbbbb", "")
	require.NoError(t, err)
	assert.True(t, artifact.Skipped)
	assert.Empty(t, artifact.Hunks)
	assert.Equal(t, []byte("skipped"), artifact.Document)
	assert.Equal(t, int64(len(big)), artifact.NewSize)
}

func TestContentDiffer_BeautifiesScripts(t *testing.T) {
	blobs := memoryBlobs{
		"aaaaaaaaaa": []byte("function f(){return 1}"),
		"bbbbbbbbbb": []byte("function f(){return 2}"),
	}
	cfg := config.NewDefaultDiffConfig()
	cfg.BeautifyScripts = true
	cd := newTestDiffer(t, blobs, &stubRenderer{}, cfg)

	artifact, err := cd.Diff("aaaaaaaaaa", "bbbbbbbbbb", "text/javascript; charset=utf-8")
	require.NoError(t, err)
	assert.True(t, artifact.Beautified)
	assert.Equal(t, 1, artifact.LinesAdded)
	assert.Equal(t, 1, artifact.LinesDeleted)
}

func TestContentDiffer_PlainTextNotBeautified(t *testing.T) {
	blobs := memoryBlobs{"aaaaaaaaaa": []byte("a"), "bbbbbbbbbb": []byte("b")}
	cd := newTestDiffer(t, blobs, &stubRenderer{}, config.NewDefaultDiffConfig())

	artifact, err := cd.Diff("aaaaaaaaaa", "bbbbbbbbbb", "text/plain")
	require.NoError(t, err)
	assert.False(t, artifact.Beautified)
}

func TestContentDifferBuilder_RequiresDependencies(t *testing.T) {
	_, err := NewContentDifferBuilder(zerolog.Nop()).WithRenderer(&stubRenderer{}).Build()
	assert.Error(t, err)

	_, err = NewContentDifferBuilder(zerolog.Nop()).WithBlobReader(memoryBlobs{}).Build()
	assert.Error(t, err)
}

func TestIsScriptLike(t *testing.T) {
	assert.True(t, IsScriptLike("application/javascript"))
	assert.True(t, IsScriptLike("application/x-javascript"))
	assert.True(t, IsScriptLike("application/ecmascript"))
	assert.True(t, IsScriptLike("application/json; charset=utf-8"))
	assert.False(t, IsScriptLike("text/html"))
	assert.False(t, IsScriptLike(""))
}
