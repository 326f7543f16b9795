package patch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sr(search, replace string, ordinal int) Instruction {
	return Instruction{Kind: SearchReplace, Search: search, Replace: replace, Ordinal: ordinal}
}

func TestApply_FullRewrite(t *testing.T) {
	out, err := Apply("old content", []Instruction{{Kind: FullRewrite, Content: "brand new"}})
	require.NoError(t, err)
	assert.Equal(t, "brand new", out)
}

func TestApply_SingleReplace(t *testing.T) {
	original := "def hello():\n    print(\"Hi\")\n"
	out, err := Apply(original, []Instruction{sr(`print("Hi")`, `print("Hello")`, 0)})
	require.NoError(t, err)
	assert.Equal(t, "def hello():\n    print(\"Hello\")\n", out)
}

func TestApply_OrdinalTargetsNthOccurrence(t *testing.T) {
	original := "a\nx = 1\nb\nx = 1\nc\nx = 1\n"

	out, err := Apply(original, []Instruction{sr("x = 1", "x = 2", 1)})
	require.NoError(t, err)
	assert.Equal(t, "a\nx = 1\nb\nx = 2\nc\nx = 1\n", out, "only the second occurrence changes")

	// First and third in one request, matched against the same original.
	out, err = Apply(original, []Instruction{sr("x = 1", "first", 0), sr("x = 1", "third", 2)})
	require.NoError(t, err)
	assert.Equal(t, "a\nfirst\nb\nx = 1\nc\nthird\n", out)
}

func TestApply_OrderIndependence(t *testing.T) {
	original := "alpha\nbeta\ngamma\n"
	a := sr("alpha", "ALPHA", 0)
	b := sr("gamma", "GAMMA", 0)

	out1, err := Apply(original, []Instruction{a, b})
	require.NoError(t, err)
	out2, err := Apply(original, []Instruction{b, a})
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	assert.Equal(t, "ALPHA\nbeta\nGAMMA\n", out1)
}

func TestApply_MatchesPristineOriginalNotIntermediate(t *testing.T) {
	// The first replacement introduces text the second block searches for.
	// Matching against intermediate results would find it; matching the
	// pristine original must not.
	original := "one\ntwo\n"
	_, err := Apply(original, []Instruction{
		sr("one", "three", 0),
		sr("three", "four", 0),
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "three", notFound.Search)
}

func TestApply_NotFoundIsAllOrNothing(t *testing.T) {
	original := "alpha\nbeta\n"
	_, err := Apply(original, []Instruction{
		sr("alpha", "ALPHA", 0),
		sr("missing", "whatever", 0),
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Search)
	assert.Equal(t, 0, notFound.Ordinal)
}

func TestApply_NotFoundWhenOrdinalExceedsOccurrences(t *testing.T) {
	_, err := Apply("x = 1\n", []Instruction{sr("x = 1", "x = 2", 1)})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 1, notFound.Ordinal)
}

func TestApply_NotFoundHints(t *testing.T) {
	original := "func main() {\n\tstartServer()\n}\n"

	// Same text, different indentation: the whitespace hint should fire.
	_, err := Apply(original, []Instruction{sr("func main() {\n    startServer()\n}", "x", 0)})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.NotEmpty(t, notFound.Hints)
	assert.Contains(t, notFound.Hints[0], "whitespace")
}

func TestApply_Overlap(t *testing.T) {
	original := "abcdefghij"
	_, err := Apply(original, []Instruction{
		sr("abcdef", "x", 0),
		sr("defghi", "y", 0),
	})
	var overlap *OverlapError
	require.ErrorAs(t, err, &overlap)
}

func TestApply_AdjacentSpansDoNotOverlap(t *testing.T) {
	original := "abcdef"
	out, err := Apply(original, []Instruction{
		sr("abc", "X", 0),
		sr("def", "Y", 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "XY", out)
}

func TestApply_MixedFullRewriteRejected(t *testing.T) {
	_, err := Apply("content", []Instruction{
		{Kind: FullRewrite, Content: "new"},
		sr("content", "x", 0),
	})
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestApply_DescendingComposition(t *testing.T) {
	// Replacements of different lengths early in the text must not shift
	// the spans of later ones.
	original := "aa bb cc dd"
	out, err := Apply(original, []Instruction{
		sr("aa", "AAAAAA", 0),
		sr("cc", "", 0),
		sr("dd", "DD", 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "AAAAAA bb  DD", out)
}

func TestFindOccurrence_OverlappingMatches(t *testing.T) {
	// "aaa" contains two overlapping occurrences of "aa".
	pos, ok := findOccurrence("aaa", "aa", 1)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}
