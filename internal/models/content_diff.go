package models

// DiffOperation defines the type of change.
type DiffOperation int

const (
	// DiffEqual indicates an unchanged line.
	DiffEqual DiffOperation = 0
	// DiffInsert indicates an inserted line.
	DiffInsert DiffOperation = 1
	// DiffDelete indicates a deleted line.
	DiffDelete DiffOperation = -1
)

// DiffLine is one line of a hunk. Line numbers are 1-based; zero means the line has no
// counterpart on that side.
type DiffLine struct {
	Operation DiffOperation
	OldLine   int
	NewLine   int
	Text      string
}

// DiffHunk groups changed lines with their surrounding context.
type DiffHunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []DiffLine
}

// DiffArtifact is the rendered difference between two stored versions of an endpoint.
type DiffArtifact struct {
	OldDigest    string
	NewDigest    string
	OldSize      int64
	NewSize      int64
	ContentType  string
	Beautified   bool
	Skipped      bool
	LinesAdded   int
	LinesDeleted int
	Hunks        []DiffHunk
	Document     []byte
}

// IsIdentical reports whether the normalised contents produced no changed lines.
func (d *DiffArtifact) IsIdentical() bool {
	return !d.Skipped && d.LinesAdded == 0 && d.LinesDeleted == 0
}
