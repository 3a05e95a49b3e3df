package lexer

import (
	"sort"
	"strings"
)

// Summary aggregates a token list for status lines and metrics.
type Summary struct {
	Total  int
	Errors int
	ByType map[TokenType]int
	// Halted is set when the scan stopped early on an unclosed string.
	Halted bool
}

func Summarize(tokens []Token) Summary {
	s := Summary{
		Total:  len(tokens),
		ByType: make(map[TokenType]int),
	}
	for _, tok := range tokens {
		s.ByType[tok.Type]++
		if tok.Type == ERROR {
			s.Errors++
		}
	}
	if n := len(tokens); n > 0 && IsUnclosedString(tokens[n-1]) {
		s.Halted = true
	}
	return s
}

// IsUnclosedString reports whether tok is the error emitted for a string
// literal that ran to the end of input.
func IsUnclosedString(tok Token) bool {
	return tok.Type == ERROR && strings.HasPrefix(tok.Lexeme, msgUnclosedString)
}

// IsUnclosedComment reports whether tok is the error emitted for a '#'
// comment that ran to the end of input.
func IsUnclosedComment(tok Token) bool {
	return tok.Type == ERROR && strings.HasPrefix(tok.Lexeme, msgUnclosedComment)
}

// Keywords returns the reserved words in enum order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for t := SELECT; t.IsKeyword(); t++ {
		out = append(out, t.String())
	}
	return out
}

// TypeNames returns the column type names in sorted order.
func TypeNames() []string {
	out := make([]string, 0, len(typeNames))
	for name := range typeNames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
