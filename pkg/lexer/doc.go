// Package lexer implements the tokenizer for the SQL-like language accepted
// by sqlcompiler.
//
// The lexer converts a complete source string into a slice of typed,
// positioned tokens in a single left-to-right scan. It never panics and never
// returns an error for malformed input: problems are reported as ERROR tokens
// embedded in the output.
//
// # Usage
//
//	for _, tok := range lexer.Tokenize("SELECT a FROM t;") {
//	    fmt.Printf("%s %q @%d:%d\n", tok.Type, tok.Lexeme, tok.Line, tok.Column)
//	}
//
// # Token types
//
// Each keyword (SELECT, FROM, WHERE, INSERT, INTO, VALUES, UPDATE, SET, DELETE,
// CREATE, TABLE, AND, OR, NOT) has its own TokenType. INT, FLOAT and TEXT are
// reported as TYPE. Other words are IDENTIFIER. Literals are NUMBER and STRING;
// operators and punctuation have one type each (EQUAL, NOT_EQUAL, COMMA, ...).
//
// # Positions
//
// Line and Column are 1-based and refer to the first character of the token.
// Columns count characters, so a multi-byte rune advances the column by one.
//
// # Keyword case
//
// Keyword matching is case-sensitive by default: "select" is an IDENTIFIER.
// WithCaseInsensitiveKeywords upper-cases each word before lookup.
//
// # Errors
//
// An invalid character and an unclosed '#' comment produce an ERROR token and
// scanning continues. An unclosed string literal produces an ERROR token and
// stops the scan; nothing after it is tokenized.
//
// # Comments
//
// "--" starts a comment that runs to the end of the line. '#' starts a comment
// that runs to the next '#' and may span lines.
package lexer
