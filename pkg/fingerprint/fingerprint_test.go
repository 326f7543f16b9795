package fingerprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf_Deterministic(t *testing.T) {
	a := Of([]byte("hello world\n"))
	b := Of([]byte("hello world\n"))
	assert.Equal(t, a, b)
	assert.Len(t, string(a), 64, "sha256 hex digest is 64 chars")
}

func TestOf_DistinguishesContent(t *testing.T) {
	assert.NotEqual(t, Of([]byte("a")), Of([]byte("b")))
	assert.NotEqual(t, Of([]byte("")), Of([]byte("\x00")))
}

func TestOfFile_MatchesOf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	content := []byte("def hello():\n    print(\"Hi\")\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	fromFile, err := OfFile(path)
	require.NoError(t, err)
	assert.Equal(t, Of(content), fromFile)
}

func TestOfFile_Missing(t *testing.T) {
	_, err := OfFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
