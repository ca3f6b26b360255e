package models

import "time"

// CheckState is the outcome of checking one endpoint during a run.
type CheckState int

const (
	CheckInvalid CheckState = iota
	CheckUnchanged
	CheckEnrolled
	CheckChanged
	CheckFetchFailed
	CheckStoreFailed
	CheckDiffFailed
	CheckSkipped
)

// AllCheckStates lists every state in declaration order.
var AllCheckStates = []CheckState{
	CheckInvalid, CheckUnchanged, CheckEnrolled, CheckChanged,
	CheckFetchFailed, CheckStoreFailed, CheckDiffFailed, CheckSkipped,
}

func (s CheckState) String() string {
	switch s {
	case CheckInvalid:
		return "invalid"
	case CheckUnchanged:
		return "unchanged"
	case CheckEnrolled:
		return "enrolled"
	case CheckChanged:
		return "changed"
	case CheckFetchFailed:
		return "fetch_failed"
	case CheckStoreFailed:
		return "store_failed"
	case CheckDiffFailed:
		return "diff_failed"
	case CheckSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// CheckResult records what happened to one endpoint.
type CheckResult struct {
	Endpoint       string
	State          CheckState
	OldDigest      string
	NewDigest      string
	OldSize        int64
	NewSize        int64
	StatusCode     int
	ContentType    string
	LinesAdded     int
	LinesDeleted   int
	ArtifactLink   string
	Error          string
	Duration       time.Duration
	CheckedAt      time.Time
	NotifiedOK     int
	NotifiedFailed int
}

// RunSummary is returned by a monitor pass.
type RunSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Counts     map[CheckState]int
	Results    []CheckResult
}

// NewRunSummary creates an empty summary with every state counted as zero.
func NewRunSummary(startedAt time.Time) *RunSummary {
	counts := make(map[CheckState]int, len(AllCheckStates))
	for _, s := range AllCheckStates {
		counts[s] = 0
	}
	return &RunSummary{StartedAt: startedAt, Counts: counts}
}

// Add appends a result and bumps its state counter.
func (rs *RunSummary) Add(result CheckResult) {
	rs.Results = append(rs.Results, result)
	rs.Counts[result.State]++
}

// Total is the number of endpoints accounted for.
func (rs *RunSummary) Total() int {
	return len(rs.Results)
}
