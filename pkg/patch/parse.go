package patch

import (
	"regexp"
	"strings"
)

// Marker lines tolerate runs longer than the canonical seven characters and
// trailing whitespace, matching what editors and models actually emit.
var (
	searchMarker  = regexp.MustCompile(`^<<<<<<+\s*SEARCH\s*$`)
	dividerMarker = regexp.MustCompile(`^======*\s*$`)
	replaceMarker = regexp.MustCompile(`^>>>>>>+\s*REPLACE\s*$`)
)

const blockExample = "blocks must follow this format:\n" +
	"<<<<<<< SEARCH\n" +
	"content to find\n" +
	"=======\n" +
	"content to replace with\n" +
	">>>>>>> REPLACE"

// Parse turns a raw payload into an ordered instruction list.
//
// When changePercent is at or above threshold the payload is the literal new
// file content, even if it happens to contain marker-like text. Below the
// threshold the payload must contain at least one well-formed search/replace
// block. Ordinals are assigned per identical search text, in payload order.
func Parse(payload string, changePercent, threshold int) ([]Instruction, error) {
	if changePercent >= threshold {
		return []Instruction{{Kind: FullRewrite, Content: payload}}, nil
	}

	blocks, err := parseBlocks(payload)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(blocks))
	instructions := make([]Instruction, 0, len(blocks))
	for _, b := range blocks {
		ordinal := seen[b.search]
		seen[b.search] = ordinal + 1
		instructions = append(instructions, Instruction{
			Kind:    SearchReplace,
			Search:  b.search,
			Replace: b.replace,
			Ordinal: ordinal,
		})
	}
	return instructions, nil
}

type rawBlock struct {
	search  string
	replace string
}

func parseBlocks(payload string) ([]rawBlock, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, &ParseError{Message: "no search/replace blocks found in empty payload\n" + blockExample}
	}

	lines := strings.Split(payload, "\n")
	var blocks []rawBlock

	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case searchMarker.MatchString(line):
			block, next, err := parseOneBlock(lines, i)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
			i = next

		case dividerMarker.MatchString(line) || replaceMarker.MatchString(line):
			return nil, &ParseError{
				Message:  "stray marker outside a search/replace block\n" + blockExample,
				Line:     i + 1,
				Fragment: line,
			}

		default:
			// Blank-line padding and free text between blocks is ignored.
			i++
		}
	}

	if len(blocks) == 0 {
		return nil, &ParseError{Message: "no search/replace blocks found\n" + blockExample}
	}
	return blocks, nil
}

// parseOneBlock consumes one block starting at the SEARCH marker on
// lines[start] and returns the block plus the index of the first line after
// its REPLACE marker.
func parseOneBlock(lines []string, start int) (rawBlock, int, error) {
	openLine := start + 1 // 1-based, for error reporting
	i := start + 1

	var searchLines []string
	for i < len(lines) && !dividerMarker.MatchString(lines[i]) {
		if searchMarker.MatchString(lines[i]) || replaceMarker.MatchString(lines[i]) {
			return rawBlock{}, 0, &ParseError{
				Message:  "stray marker inside SEARCH section",
				Line:     i + 1,
				Fragment: lines[i],
			}
		}
		searchLines = append(searchLines, lines[i])
		i++
	}
	if i >= len(lines) {
		return rawBlock{}, 0, &ParseError{
			Message: "unclosed SEARCH section, missing ======= divider",
			Line:    openLine,
		}
	}

	search := strings.Join(searchLines, "\n")
	if strings.TrimSpace(search) == "" {
		return rawBlock{}, 0, &ParseError{
			Message: "SEARCH section is empty, the target is ambiguous",
			Line:    openLine,
		}
	}

	i++ // past the divider
	var replaceLines []string
	for i < len(lines) && !replaceMarker.MatchString(lines[i]) {
		if searchMarker.MatchString(lines[i]) || dividerMarker.MatchString(lines[i]) {
			return rawBlock{}, 0, &ParseError{
				Message:  "stray marker inside REPLACE section",
				Line:     i + 1,
				Fragment: lines[i],
			}
		}
		replaceLines = append(replaceLines, lines[i])
		i++
	}
	if i >= len(lines) {
		return rawBlock{}, 0, &ParseError{
			Message: "unclosed block, missing >>>>>>> REPLACE marker",
			Line:    openLine,
		}
	}

	return rawBlock{
		search:  search,
		replace: strings.Join(replaceLines, "\n"),
	}, i + 1, nil
}
