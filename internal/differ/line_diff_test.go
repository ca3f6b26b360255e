package differ

import (
	"testing"

	"github.com/aleister1102/jsmon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineDiffer_SingleLineChange(t *testing.T) {
	lines := NewLineDiffer().Diff("var a=1;", "var a=2;")

	added, deleted := CountChanges(lines)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, deleted)

	for _, l := range lines {
		switch l.Operation {
		case models.DiffDelete:
			assert.Equal(t, "var a=1;", l.Text)
			assert.Equal(t, 1, l.OldLine)
			assert.Zero(t, l.NewLine)
		case models.DiffInsert:
			assert.Equal(t, "var a=2;", l.Text)
			assert.Equal(t, 1, l.NewLine)
			assert.Zero(t, l.OldLine)
		}
	}
}

func TestLineDiffer_Identical(t *testing.T) {
	lines := NewLineDiffer().Diff("a\nb\n", "a\nb")

	added, deleted := CountChanges(lines)
	assert.Zero(t, added)
	assert.Zero(t, deleted)
	assert.Len(t, lines, 2)
	assert.Empty(t, BuildHunks(lines, 3))
}

func TestLineDiffer_CRLF(t *testing.T) {
	lines := NewLineDiffer().Diff("a\r\nb\r\n", "a\r\nc\r\n")
	for _, l := range lines {
		assert.NotContains(t, l.Text, "\r")
	}
}

func TestLineDiffer_Numbering(t *testing.T) {
	lines := NewLineDiffer().Diff("1\n2\n3\n", "1\nx\n2\n3\n")

	require.Len(t, lines, 4)
	assert.Equal(t, models.DiffLine{Operation: models.DiffInsert, NewLine: 2, Text: "x"}, lines[1])
	assert.Equal(t, models.DiffLine{Operation: models.DiffEqual, OldLine: 3, NewLine: 4, Text: "3"}, lines[3])
}

func numbered(n int) string {
	s := ""
	for i := 1; i <= n; i++ {
		s += string(rune('a'+(i-1)%26)) + "\n"
	}
	return s
}

func TestBuildHunks_Context(t *testing.T) {
	old := numbered(20)
	changed := []byte(old)
	changed[2*9] = 'X' // line 10

	lines := NewLineDiffer().Diff(old, string(changed))
	hunks := BuildHunks(lines, 3)

	require.Len(t, hunks, 1)
	h := hunks[0]
	assert.Equal(t, 7, h.OldStart)
	assert.Equal(t, 7, h.OldLines)
	assert.Equal(t, 7, h.NewStart)
	assert.Equal(t, 7, h.NewLines)
	assert.Len(t, h.Lines, 8)
}

func TestBuildHunks_SeparateAndMerged(t *testing.T) {
	old := numbered(20)

	far := []byte(old)
	far[0] = 'X'      // line 1
	far[2*19] = 'Y'   // line 20
	hunks := BuildHunks(NewLineDiffer().Diff(old, string(far)), 3)
	assert.Len(t, hunks, 2)

	near := []byte(old)
	near[2*4] = 'X' // line 5
	near[2*9] = 'Y' // line 10
	hunks = BuildHunks(NewLineDiffer().Diff(old, string(near)), 3)
	assert.Len(t, hunks, 1)
}

func TestBuildHunks_EmptySide(t *testing.T) {
	lines := NewLineDiffer().Diff("", "a\nb\n")
	hunks := BuildHunks(lines, 3)

	require.Len(t, hunks, 1)
	assert.Equal(t, 0, hunks[0].OldStart)
	assert.Equal(t, 0, hunks[0].OldLines)
	assert.Equal(t, 1, hunks[0].NewStart)
	assert.Equal(t, 2, hunks[0].NewLines)
}
