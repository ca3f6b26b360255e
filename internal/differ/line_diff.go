package differ

import (
	"strings"

	"github.com/aleister1102/jsmon/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiffer computes line-level diffs.
type LineDiffer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewLineDiffer creates a line differ.
func NewLineDiffer() *LineDiffer {
	return &LineDiffer{dmp: diffmatchpatch.New()}
}

// Diff returns every line of both texts tagged with its operation and line numbers.
func (ld *LineDiffer) Diff(oldText, newText string) []models.DiffLine {
	a, b, lineArray := ld.dmp.DiffLinesToChars(terminate(oldText), terminate(newText))
	diffs := ld.dmp.DiffMain(a, b, false)
	diffs = ld.dmp.DiffCharsToLines(diffs, lineArray)

	var lines []models.DiffLine
	oldLine, newLine := 0, 0
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
				lines = append(lines, models.DiffLine{Operation: models.DiffEqual, OldLine: oldLine, NewLine: newLine, Text: text})
			case diffmatchpatch.DiffDelete:
				oldLine++
				lines = append(lines, models.DiffLine{Operation: models.DiffDelete, OldLine: oldLine, Text: text})
			case diffmatchpatch.DiffInsert:
				newLine++
				lines = append(lines, models.DiffLine{Operation: models.DiffInsert, NewLine: newLine, Text: text})
			}
		}
	}
	return lines
}

// terminate makes sure a final line without newline compares equal to the same line with one.
func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// CountChanges returns the number of inserted and deleted lines.
func CountChanges(lines []models.DiffLine) (added, deleted int) {
	for _, l := range lines {
		switch l.Operation {
		case models.DiffInsert:
			added++
		case models.DiffDelete:
			deleted++
		}
	}
	return added, deleted
}

// BuildHunks groups changed lines with up to contextLines unchanged lines on each side.
// Hunks whose context would overlap are merged.
func BuildHunks(lines []models.DiffLine, contextLines int) []models.DiffHunk {
	if contextLines < 0 {
		contextLines = 0
	}

	var hunks []models.DiffHunk
	start, end := -1, -1
	for i, l := range lines {
		if l.Operation == models.DiffEqual {
			continue
		}
		lo := max(i-contextLines, 0)
		hi := min(i+contextLines, len(lines)-1)
		if start >= 0 && lo <= end+1 {
			end = max(end, hi)
			continue
		}
		if start >= 0 {
			hunks = append(hunks, newHunk(lines, start, end))
		}
		start, end = lo, hi
	}
	if start >= 0 {
		hunks = append(hunks, newHunk(lines, start, end))
	}
	return hunks
}

func newHunk(lines []models.DiffLine, start, end int) models.DiffHunk {
	h := models.DiffHunk{Lines: append([]models.DiffLine(nil), lines[start:end+1]...)}

	// Position of the hunk on each side is the line number of its first line on that side,
	// or the number of lines preceding it when the side is empty.
	oldBefore, newBefore := 0, 0
	for _, l := range lines[:start] {
		if l.Operation != models.DiffInsert {
			oldBefore++
		}
		if l.Operation != models.DiffDelete {
			newBefore++
		}
	}
	for _, l := range h.Lines {
		if l.Operation != models.DiffInsert {
			h.OldLines++
		}
		if l.Operation != models.DiffDelete {
			h.NewLines++
		}
	}
	h.OldStart, h.NewStart = oldBefore, newBefore
	if h.OldLines > 0 {
		h.OldStart++
	}
	if h.NewLines > 0 {
		h.NewStart++
	}
	return h
}
