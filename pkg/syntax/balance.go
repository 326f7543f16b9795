package syntax

import (
	"fmt"
	"strings"
)

// langProfile tells the delimiter scanner how to skip over the parts of a
// language where brackets do not count: comments and string literals.
type langProfile struct {
	lineComment  string
	blockComment [2]string
	quotes       []byte
	// rawQuote marks a quote with no escape handling (Go backticks).
	rawQuote byte
}

type openDelim struct {
	ch   byte
	line int
}

// balanceWarnings scans content for unbalanced (), [] and {} outside strings
// and comments. It reports at most one warning per problem found and tolerates
// anything it cannot understand; this is advisory, not a parser.
func balanceWarnings(content string, profile langProfile) []string {
	var warnings []string
	var stack []openDelim

	line := 1
	i := 0
	for i < len(content) {
		c := content[i]

		if c == '\n' {
			line++
			i++
			continue
		}

		// Line comments run to end of line.
		if profile.lineComment != "" && strings.HasPrefix(content[i:], profile.lineComment) {
			for i < len(content) && content[i] != '\n' {
				i++
			}
			continue
		}

		// Block comments may span lines.
		if profile.blockComment[0] != "" && strings.HasPrefix(content[i:], profile.blockComment[0]) {
			end := strings.Index(content[i:], profile.blockComment[1])
			if end < 0 {
				warnings = append(warnings, fmt.Sprintf("unterminated block comment starting at line %d", line))
				break
			}
			line += strings.Count(content[i:i+end+len(profile.blockComment[1])], "\n")
			i += end + len(profile.blockComment[1])
			continue
		}

		if isQuote(c, profile.quotes) {
			advance, newlines, terminated := skipString(content[i:], c, c == profile.rawQuote)
			if !terminated {
				warnings = append(warnings, fmt.Sprintf("unterminated string starting at line %d", line))
				break
			}
			line += newlines
			i += advance
			continue
		}

		switch c {
		case '(', '[', '{':
			stack = append(stack, openDelim{ch: c, line: line})
		case ')', ']', '}':
			if len(stack) == 0 {
				warnings = append(warnings, fmt.Sprintf("unmatched %q at line %d", string(c), line))
				return warnings
			}
			top := stack[len(stack)-1]
			if closerFor(top.ch) != c {
				warnings = append(warnings, fmt.Sprintf("mismatched %q at line %d, expected %q for %q opened at line %d",
					string(c), line, string(closerFor(top.ch)), string(top.ch), top.line))
				return warnings
			}
			stack = stack[:len(stack)-1]
		}
		i++
	}

	for _, open := range stack {
		warnings = append(warnings, fmt.Sprintf("unclosed %q opened at line %d", string(open.ch), open.line))
	}
	return warnings
}

// skipString consumes a string literal starting at s[0] (the opening quote)
// and returns how many bytes were consumed, how many newlines it crossed,
// and whether a closing quote was found.
func skipString(s string, quote byte, raw bool) (advance, newlines int, terminated bool) {
	// Triple quotes (Python docstrings) close on the same triple.
	if len(s) >= 3 && s[1] == quote && s[2] == quote {
		end := strings.Index(s[3:], strings.Repeat(string(quote), 3))
		if end < 0 {
			return 0, 0, false
		}
		body := s[:3+end+3]
		return len(body), strings.Count(body, "\n"), true
	}

	i := 1
	for i < len(s) {
		c := s[i]
		if c == '\\' && !raw {
			i += 2
			continue
		}
		if c == quote {
			return i + 1, newlines, true
		}
		if c == '\n' {
			if !raw {
				// Single-line string left open; treat the newline as the
				// end of the damage rather than swallowing the rest.
				return 0, 0, false
			}
			newlines++
		}
		i++
	}
	return 0, 0, false
}

func isQuote(c byte, quotes []byte) bool {
	for _, q := range quotes {
		if c == q {
			return true
		}
	}
	return false
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}
