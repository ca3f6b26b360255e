package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSummary_Add(t *testing.T) {
	summary := NewRunSummary(time.Now())
	for _, s := range AllCheckStates {
		assert.Equal(t, 0, summary.Counts[s])
	}

	summary.Add(CheckResult{Endpoint: "https://example.com/a.js", State: CheckEnrolled})
	summary.Add(CheckResult{Endpoint: "https://example.com/b.js", State: CheckEnrolled})
	summary.Add(CheckResult{Endpoint: "https://example.com/c.js", State: CheckFetchFailed})

	assert.Equal(t, 2, summary.Counts[CheckEnrolled])
	assert.Equal(t, 1, summary.Counts[CheckFetchFailed])
	assert.Equal(t, 3, summary.Total())
	assert.Equal(t, "https://example.com/a.js", summary.Results[0].Endpoint)
}

func TestCheckState_String(t *testing.T) {
	assert.Equal(t, "fetch_failed", CheckFetchFailed.String())
	assert.Equal(t, "skipped", CheckSkipped.String())
	assert.Equal(t, "unknown", CheckState(99).String())
}

func TestCheckResult_ToParquetRecord(t *testing.T) {
	checkedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := CheckResult{
		Endpoint:  "https://example.com/a.js",
		State:     CheckChanged,
		OldDigest: "0123456789",
		NewDigest: "abcdef0123",
		OldSize:   8,
		NewSize:   8,
		Duration:  1500 * time.Millisecond,
		CheckedAt: checkedAt,
	}.ToParquetRecord()

	assert.Equal(t, "changed", rec.State)
	require.NotNil(t, rec.OldDigest)
	assert.Equal(t, "0123456789", *rec.OldDigest)
	assert.Nil(t, rec.ArtifactLink)
	assert.Nil(t, rec.Error)
	assert.Equal(t, int64(1500), rec.DurationMillis)
	assert.Equal(t, checkedAt.UnixMilli(), rec.CheckedAt)
}

func TestDiffArtifact_IsIdentical(t *testing.T) {
	assert.True(t, (&DiffArtifact{}).IsIdentical())
	assert.False(t, (&DiffArtifact{LinesAdded: 1}).IsIdentical())
	assert.False(t, (&DiffArtifact{Skipped: true}).IsIdentical())
}
