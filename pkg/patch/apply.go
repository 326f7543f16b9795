package patch

import (
	"fmt"
	"sort"
	"strings"
)

// span is the half-open byte range a SearchReplace instruction targets in the
// original content.
type span struct {
	start   int
	end     int
	search  string
	replace string
}

// Apply executes instructions against original and returns the edited text.
//
// Every SearchReplace instruction is matched against the untouched original,
// never against intermediate results, so the outcome is independent of
// instruction order. All instructions must locate their target occurrence or
// nothing is applied. Replacements are composed by descending start offset to
// keep earlier offsets valid while splicing.
func Apply(original string, instructions []Instruction) (string, error) {
	if len(instructions) == 1 && instructions[0].Kind == FullRewrite {
		return instructions[0].Content, nil
	}

	spans := make([]span, 0, len(instructions))
	for _, ins := range instructions {
		if ins.Kind == FullRewrite {
			// The parser only ever emits a lone FullRewrite; a mixed batch
			// means the caller assembled instructions by hand.
			return "", &ParseError{Message: "a full rewrite cannot be combined with search/replace blocks"}
		}
		start, ok := findOccurrence(original, ins.Search, ins.Ordinal)
		if !ok {
			return "", &NotFoundError{
				Search:  ins.Search,
				Ordinal: ins.Ordinal,
				Hints:   matchHints(original, ins.Search),
			}
		}
		spans = append(spans, span{
			start:   start,
			end:     start + len(ins.Search),
			search:  ins.Search,
			replace: ins.Replace,
		})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return "", &OverlapError{First: spans[i-1].search, Second: spans[i].search}
		}
	}

	// Splice from the back so offsets into the original stay valid.
	edited := original
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		edited = edited[:s.start] + s.replace + edited[s.end:]
	}
	return edited, nil
}

// findOccurrence locates the byte offset of the ordinal-th (0-based) exact
// occurrence of search in text, counted left to right with no normalization.
func findOccurrence(text, search string, ordinal int) (int, bool) {
	if search == "" {
		return 0, false
	}
	offset := 0
	for n := 0; ; n++ {
		i := strings.Index(text[offset:], search)
		if i < 0 {
			return 0, false
		}
		pos := offset + i
		if n == ordinal {
			return pos, true
		}
		// Overlapping occurrences count, same as scanning byte by byte.
		offset = pos + 1
	}
}

const maxHints = 3

// matchHints produces advisory pointers for a failed match: individual search
// lines that do appear in the content, and a note when only whitespace
// differs. Purely informational, attached to NotFoundError.
func matchHints(content, search string) []string {
	var hints []string

	if stripSpace(content) != "" && strings.Contains(stripSpace(content), stripSpace(search)) {
		hints = append(hints, "the search text appears in the file with different whitespace or line endings")
	}

	searchLines := strings.Split(search, "\n")
	if len(searchLines) > 1 {
		for i, line := range searchLines {
			trimmed := strings.TrimSpace(line)
			if len(trimmed) > 10 && strings.Contains(content, trimmed) {
				hints = append(hints, fmt.Sprintf("search line %d matches on its own: %s", i+1, snippet(trimmed)))
				if len(hints) >= maxHints {
					break
				}
			}
		}
	}
	return hints
}

func stripSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
