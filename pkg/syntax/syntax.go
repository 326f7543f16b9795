// Package syntax provides best-effort, advisory structural checks for edited
// file content. Checks dispatch on file extension over a closed registry and
// only ever produce warning strings: a warning never vetoes a write, and an
// unrecognized extension yields no warnings at all.
package syntax

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// checkFunc inspects content and returns zero or more advisory warnings.
type checkFunc func(content string) []string

// checkers is the closed set of per-extension checks. Keys are lowercase
// extensions without the dot.
var checkers = map[string]checkFunc{
	"json": checkJSON,
	"yaml": checkYAML,
	"yml":  checkYAML,
	"toml": checkTOML,
	"go":   checkGo,
	"py":   checkPython,
}

// Check runs the advisory check registered for the path's extension against
// content. It never fails; unknown extensions return nil.
func Check(path, content string) []string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	check, ok := checkers[ext]
	if !ok {
		return nil
	}
	return check(content)
}

// Supported reports whether an advisory check exists for the path's extension.
func Supported(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := checkers[ext]
	return ok
}

func checkJSON(content string) []string {
	var v any
	err := json.Unmarshal([]byte(content), &v)
	if err == nil {
		return nil
	}
	if syntaxErr, ok := err.(*json.SyntaxError); ok {
		line, col := offsetToLineCol(content, int(syntaxErr.Offset))
		return []string{fmt.Sprintf("json: syntax error at line %d, column %d: %v", line, col, syntaxErr)}
	}
	return []string{"json: " + err.Error()}
}

func checkYAML(content string) []string {
	var v any
	if err := yaml.Unmarshal([]byte(content), &v); err != nil {
		return []string{"yaml: " + err.Error()}
	}
	var warnings []string
	for i, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "\t") {
			warnings = append(warnings, fmt.Sprintf("yaml: line %d uses a tab for indentation", i+1))
		}
	}
	return warnings
}

func checkTOML(content string) []string {
	var v map[string]any
	if err := toml.Unmarshal([]byte(content), &v); err != nil {
		return []string{"toml: " + err.Error()}
	}
	return nil
}

func checkGo(content string) []string {
	warnings := balanceWarnings(content, langProfile{
		lineComment:  "//",
		quotes:       []byte{'"', '\'', '`'},
		rawQuote:     '`',
		blockComment: [2]string{"/*", "*/"},
	})
	trimmed := strings.TrimSpace(content)
	if trimmed != "" && !strings.HasPrefix(trimmed, "// ") && !strings.Contains(content, "package ") {
		warnings = append(warnings, "go: missing package clause")
	}
	return warnings
}

func checkPython(content string) []string {
	return balanceWarnings(content, langProfile{
		lineComment: "#",
		quotes:      []byte{'"', '\''},
	})
}

// offsetToLineCol converts a byte offset into 1-based line and column.
func offsetToLineCol(content string, offset int) (int, int) {
	if offset > len(content) {
		offset = len(content)
	}
	line, col := 1, 1
	for _, b := range []byte(content[:offset]) {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
