// Package patch parses edit payloads into instructions and applies them to
// file content. A payload is either the literal full new content of a file or
// a sequence of search/replace blocks delimited by conflict-style markers:
//
//	<<<<<<< SEARCH
//	exact text to find
//	=======
//	text to replace it with
//	>>>>>>> REPLACE
//
// Application is all-or-nothing: every block must match, and matching always
// runs against the pristine original content, never against intermediate
// results, so block order cannot change the outcome.
package patch

import "fmt"

// Kind discriminates the two instruction forms.
type Kind int

const (
	// FullRewrite replaces the entire file content.
	FullRewrite Kind = iota
	// SearchReplace replaces one exact occurrence of Search with Replace.
	SearchReplace
)

// Instruction is a single parsed edit operation.
type Instruction struct {
	Kind Kind

	// Content is the literal new file content for FullRewrite.
	Content string

	// Search and Replace are the exact texts for SearchReplace. Ordinal is
	// the 0-based position of this instruction among instructions in the
	// same request whose search text is identical, so repeated search text
	// targets the first match, then the second, and so on.
	Search  string
	Replace string
	Ordinal int
}

// ParseError reports a malformed or absent block structure in a payload.
type ParseError struct {
	Message string
	// Line is the 1-based payload line where the problem was found, 0 if
	// the problem is not tied to a line.
	Line int
	// Fragment is the offending payload line, when one exists.
	Fragment string
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Fragment != "" {
		return fmt.Sprintf("patch parse error at line %d (%q): %s", e.Line, e.Fragment, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("patch parse error at line %d: %s", e.Line, e.Message)
	}
	return "patch parse error: " + e.Message
}

// NotFoundError reports a search block whose target occurrence does not exist
// in the original content. Hints carry best-effort pointers at near misses.
type NotFoundError struct {
	Search  string
	Ordinal int
	Hints   []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("search block not found (occurrence %d): %q", e.Ordinal+1, snippet(e.Search))
	for _, h := range e.Hints {
		msg += "\n  " + h
	}
	return msg
}

// OverlapError reports two instructions whose target spans in the original
// content overlap, which makes a combined application ambiguous.
type OverlapError struct {
	First  string
	Second string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("search blocks overlap in the original content: %q and %q",
		snippet(e.First), snippet(e.Second))
}

const snippetLimit = 80

// snippet trims a block to a single displayable line.
func snippet(s string) string {
	for i, r := range s {
		if r == '\n' {
			s = s[:i] + "…"
			break
		}
	}
	if len(s) > snippetLimit {
		return s[:snippetLimit] + "…"
	}
	return s
}
