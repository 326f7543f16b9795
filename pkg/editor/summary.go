package editor

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// maxDiffLines caps the unified diff carried in a summary so huge edits do
// not flood the response.
const maxDiffLines = 200

// Summary describes what an edit did to a file in terms a caller can relay:
// line and byte deltas plus a bounded unified diff.
type Summary struct {
	Created     bool   `json:"created,omitempty"`
	Unchanged   bool   `json:"unchanged,omitempty"`
	LinesBefore int    `json:"lines_before"`
	LinesAfter  int    `json:"lines_after"`
	BytesBefore int    `json:"bytes_before"`
	BytesAfter  int    `json:"bytes_after"`
	Diff        string `json:"diff,omitempty"`
}

func (s Summary) String() string {
	switch {
	case s.Unchanged:
		return "unchanged"
	case s.Created:
		return fmt.Sprintf("created, %d lines, %d bytes", s.LinesAfter, s.BytesAfter)
	default:
		return fmt.Sprintf("%+d lines (%d -> %d), %+d bytes (%d -> %d)",
			s.LinesAfter-s.LinesBefore, s.LinesBefore, s.LinesAfter,
			s.BytesAfter-s.BytesBefore, s.BytesBefore, s.BytesAfter)
	}
}

// summarize builds a Summary for path going from old to new content.
func summarize(path, old, new string, created bool, diffContext int) Summary {
	s := Summary{
		Created:     created,
		LinesBefore: countLines(old),
		LinesAfter:  countLines(new),
		BytesBefore: len(old),
		BytesAfter:  len(new),
	}
	if created {
		s.LinesBefore = 0
		s.BytesBefore = 0
		return s
	}
	if old == new {
		s.Unchanged = true
		return s
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(new),
		FromFile: path,
		ToFile:   path,
		Context:  diffContext,
	})
	if err == nil {
		s.Diff = truncateLines(diff, maxDiffLines)
	}
	return s
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func truncateLines(s string, limit int) string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "") + fmt.Sprintf("... (%d more diff lines omitted)\n", len(lines)-limit)
}
