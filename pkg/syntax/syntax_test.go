package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_UnknownExtension(t *testing.T) {
	assert.Nil(t, Check("notes.txt", "anything at {all ["))
	assert.Nil(t, Check("Makefile", "all:\n\techo hi"))
	assert.False(t, Supported("notes.txt"))
	assert.True(t, Supported("main.go"))
}

func TestCheck_JSON(t *testing.T) {
	assert.Empty(t, Check("config.json", `{"key": "value", "n": [1, 2, 3]}`))

	warnings := Check("config.json", `{"key": value}`)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "json: syntax error at line 1")
}

func TestCheck_YAML(t *testing.T) {
	assert.Empty(t, Check("config.yaml", "key: value\nlist:\n  - one\n  - two\n"))

	warnings := Check("config.yml", "key: [unclosed\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "yaml:")

	warnings = Check("config.yaml", "\tkey: value\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "tab")
}

func TestCheck_TOML(t *testing.T) {
	assert.Empty(t, Check("Cargo.toml", "[package]\nname = \"demo\"\n"))

	warnings := Check("Cargo.toml", "[package\nname = \"demo\"\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "toml:")
}

func TestCheck_Go(t *testing.T) {
	valid := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	assert.Empty(t, Check("main.go", valid))

	warnings := Check("main.go", "package main\n\nfunc main() {\n\tprintln(\"hi\")\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], `unclosed "{"`)

	warnings = Check("main.go", "func main() {}\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "package clause")
}

func TestCheck_GoIgnoresBracketsInStringsAndComments(t *testing.T) {
	content := "package main\n\n// a comment with { and (\nvar s = \"} ] )\"\nvar r = `{ raw\nstring (`\n"
	assert.Empty(t, Check("main.go", content))
}

func TestCheck_Python(t *testing.T) {
	assert.Empty(t, Check("f.py", "def hello():\n    print(\"Hi\")\n"))

	warnings := Check("f.py", "def hello():\n    print(\"Hi\"\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], `unclosed "("`)
}

func TestCheck_PythonTripleQuotes(t *testing.T) {
	content := "def f():\n    \"\"\"doc with { and ( inside\n    spanning lines\"\"\"\n    return []\n"
	assert.Empty(t, Check("f.py", content))

	warnings := Check("f.py", "x = \"\"\"never closed\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "unterminated string")
}

func TestCheck_PythonCommentsSkipped(t *testing.T) {
	assert.Empty(t, Check("f.py", "# don't count this { bracket\nx = 1\n"))
}

func TestCheck_MismatchedDelimiter(t *testing.T) {
	warnings := Check("f.py", "x = [1, 2)\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "mismatched")
}

func TestCheck_UnmatchedCloser(t *testing.T) {
	warnings := Check("f.py", "x = 1)\n")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "unmatched")
}
