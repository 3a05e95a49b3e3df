package ui

import (
	"strings"
	"testing"

	"sqlcompiler/pkg/lexer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinSegments(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

func TestSegmentsCoverSource(t *testing.T) {
	inputs := []string{
		"SELECT a FROM t;",
		"  INSERT INTO t VALUES (1, 'x') -- trailing",
		"a # block\ncomment # b",
		"5 & 3",
		"x 'open\nstring",
		"y # open comment",
		"é = 'ü'",
		"",
	}

	for _, src := range inputs {
		segs := segments(src, lexer.Tokenize(src))
		assert.Equal(t, src, joinSegments(segs), "segments must reproduce %q", src)
	}
}

func TestSegmentKinds(t *testing.T) {
	src := "SELECT price FROM t WHERE n >= 1.5 AND c = 'x' -- note\n& INT"
	segs := segments(src, lexer.Tokenize(src))

	kinds := map[string]segmentKind{}
	for _, s := range segs {
		kinds[s.text] = s.kind
	}

	assert.Equal(t, segKeyword, kinds["SELECT"])
	assert.Equal(t, segKeyword, kinds["AND"])
	assert.Equal(t, segPlain, kinds["price"])
	assert.Equal(t, segOperator, kinds[">="])
	assert.Equal(t, segNumber, kinds["1.5"])
	assert.Equal(t, segString, kinds["'x'"])
	assert.Equal(t, segComment, kinds["-- note"])
	assert.Equal(t, segError, kinds["&"])
	assert.Equal(t, segType, kinds["INT"])
}

func TestSegmentsUnclosedStringRunsToEnd(t *testing.T) {
	src := "a 'open\nrest"
	segs := segments(src, lexer.Tokenize(src))
	require.NotEmpty(t, segs)

	last := segs[len(segs)-1]
	assert.Equal(t, segError, last.kind)
	assert.Equal(t, "'open\nrest", last.text)
}

func TestHighlightKeepsText(t *testing.T) {
	h := NewSQLHighlighter()
	src := "SELECT a,\n  'multi\nline' FROM t"
	out := h.Highlight(src, lexer.Tokenize(src))

	for _, word := range []string{"SELECT", "a", "'multi", "line'", "FROM", "t"} {
		assert.Contains(t, out, word)
	}
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
}
