package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// keywords maps keyword spellings to their token types. Lookup is exact,
// so "select" is an identifier unless the case-insensitive policy is on.
var keywords = map[string]TokenType{
	"SELECT": SELECT,
	"FROM":   FROM,
	"WHERE":  WHERE,
	"INSERT": INSERT,
	"INTO":   INTO,
	"VALUES": VALUES,
	"UPDATE": UPDATE,
	"SET":    SET,
	"DELETE": DELETE,
	"CREATE": CREATE,
	"TABLE":  TABLE,
	"AND":    AND,
	"OR":     OR,
	"NOT":    NOT,
}

// typeNames are the column type names, all classified as TYPE.
var typeNames = map[string]struct{}{
	"INT":   {},
	"FLOAT": {},
	"TEXT":  {},
}

// delimiters maps single-character punctuation to their token types.
var delimiters = map[rune]TokenType{
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	',': COMMA,
	';': SEMICOLON,
}

const (
	msgInvalidChar     = "Invalid char"
	msgUnclosedComment = "Unclosed comment"
	msgUnclosedString  = "Unclosed string"
)

// Cursor is the scan position: byte offset into the source plus the 1-based
// line and column of the character at that offset.
type Cursor struct {
	Offset int
	Line   int
	Column int
}

func startCursor() Cursor {
	return Cursor{Offset: 0, Line: 1, Column: 1}
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithCaseInsensitiveKeywords upper-cases each word before the keyword and
// type lookup. The emitted lexeme keeps its original spelling.
func WithCaseInsensitiveKeywords() Option {
	return func(l *Lexer) {
		l.caseInsensitive = true
	}
}

// Lexer turns SQL-like source into tokens. A Lexer is not safe for
// concurrent use, but separate Lexers (or calls to Tokenize) share nothing.
type Lexer struct {
	input           string
	cur             Cursor
	caseInsensitive bool
	tokens          []Token
	halted          bool
}

// NewLexer creates a Lexer over input. The input is kept verbatim so that
// positions refer to the text exactly as supplied.
func NewLexer(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input, cur: startCursor()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize scans input with a fresh Lexer and returns every token.
func Tokenize(input string, opts ...Option) []Token {
	return NewLexer(input, opts...).Tokenize()
}

// Tokenize scans the whole input from line 1, column 1 and returns the
// tokens in source order. Calling it again rescans from the start and
// yields the same result.
func (l *Lexer) Tokenize() []Token {
	l.cur = startCursor()
	l.tokens = nil
	l.halted = false

	for !l.halted && !l.atEnd() {
		l.scan()
	}
	return l.tokens
}

// scan consumes exactly one lexical unit (or one whitespace character)
// starting at the cursor. Rules are tried in priority order.
func (l *Lexer) scan() {
	start := l.cur
	ch := l.peek()

	switch {
	case unicode.IsSpace(ch):
		l.advance()
	case ch == '-' && l.peekNext() == '-':
		l.skipLineComment()
	case ch == '#':
		l.skipBlockComment(start)
	case unicode.IsLetter(ch):
		l.readWord(start)
	case unicode.IsDigit(ch):
		l.readNumber(start)
	case ch == '\'':
		l.readString(start)
	case l.readOperator(start, ch):
	case l.readDelimiter(start, ch):
	default:
		l.advance()
		l.emit(ERROR, fmt.Sprintf("%s '%c' at line %d, column %d", msgInvalidChar, ch, start.Line, start.Column), start)
	}
}

func (l *Lexer) atEnd() bool {
	return l.cur.Offset >= len(l.input)
}

// peek returns the character at the cursor, or utf8.RuneError at the end.
func (l *Lexer) peek() rune {
	if l.atEnd() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.cur.Offset:])
	return r
}

// peekNext returns the character after the one at the cursor.
func (l *Lexer) peekNext() rune {
	if l.atEnd() {
		return utf8.RuneError
	}
	_, size := utf8.DecodeRuneInString(l.input[l.cur.Offset:])
	if l.cur.Offset+size >= len(l.input) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.cur.Offset+size:])
	return r
}

// advance consumes one character and moves line/column along with it.
// Invalid UTF-8 is consumed one byte at a time.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.cur.Offset:])
	l.cur.Offset += size
	if r == '\n' {
		l.cur.Line++
		l.cur.Column = 1
	} else {
		l.cur.Column++
	}
	return r
}

func (l *Lexer) emit(t TokenType, lexeme string, start Cursor) {
	l.tokens = append(l.tokens, Token{
		Type:   t,
		Lexeme: lexeme,
		Line:   start.Line,
		Column: start.Column,
		Offset: start.Offset,
	})
}

// text returns the source consumed since start.
func (l *Lexer) text(start Cursor) string {
	return l.input[start.Offset:l.cur.Offset]
}

// skipLineComment consumes "--" up to, but not including, the next newline.
func (l *Lexer) skipLineComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment consumes a #...# comment. Reaching the end of input
// first is reported as an error token at the opening '#'.
func (l *Lexer) skipBlockComment(start Cursor) {
	l.advance()
	for !l.atEnd() && l.peek() != '#' {
		l.advance()
	}
	if l.atEnd() {
		l.emit(ERROR, fmt.Sprintf("%s starting at line %d, column %d", msgUnclosedComment, start.Line, start.Column), start)
		return
	}
	l.advance()
}

// readWord reads an identifier, keyword or type name.
func (l *Lexer) readWord(start Cursor) {
	for !l.atEnd() && isWordChar(l.peek()) {
		l.advance()
	}

	word := l.text(start)
	lookup := word
	if l.caseInsensitive {
		lookup = strings.ToUpper(word)
	}

	if tt, ok := keywords[lookup]; ok {
		l.emit(tt, word, start)
		return
	}
	if _, ok := typeNames[lookup]; ok {
		l.emit(TYPE, word, start)
		return
	}
	l.emit(IDENTIFIER, word, start)
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// readNumber reads a run of digits and dots. "1.2.3" is one NUMBER; the
// lexer does not validate the shape of the literal.
func (l *Lexer) readNumber(start Cursor) {
	for !l.atEnd() {
		r := l.peek()
		if !unicode.IsDigit(r) && r != '.' {
			break
		}
		l.advance()
	}
	l.emit(NUMBER, l.text(start), start)
}

// readString reads a single-quoted literal, newlines included. The lexeme
// keeps both quotes. An unclosed literal halts the scan.
func (l *Lexer) readString(start Cursor) {
	l.advance()
	for !l.atEnd() && l.peek() != '\'' {
		l.advance()
	}
	if l.atEnd() {
		l.emit(ERROR, fmt.Sprintf("%s starting at line %d, column %d", msgUnclosedString, start.Line, start.Column), start)
		l.halted = true
		return
	}
	l.advance()
	l.emit(STRING, l.text(start), start)
}

// readOperator matches an operator at the cursor, preferring the
// two-character forms. It reports false without consuming anything when ch
// starts no operator (including a lone '!').
func (l *Lexer) readOperator(start Cursor, ch rune) bool {
	next := l.peekNext()
	width := 1
	var tt TokenType

	switch ch {
	case '=':
		tt = EQUAL
	case '>':
		tt = GREATER_THAN
		if next == '=' {
			tt, width = GREATER_EQUAL, 2
		}
	case '<':
		tt = LESS_THAN
		switch next {
		case '=':
			tt, width = LESS_EQUAL, 2
		case '>':
			tt, width = NOT_EQUAL, 2
		}
	case '!':
		if next != '=' {
			return false
		}
		tt, width = NOT_EQUAL, 2
	case '+':
		tt = PLUS
	case '-':
		tt = MINUS
	case '*':
		tt = MULTIPLY
	case '/':
		tt = DIVIDE
	default:
		return false
	}

	for i := 0; i < width; i++ {
		l.advance()
	}
	l.emit(tt, l.text(start), start)
	return true
}

func (l *Lexer) readDelimiter(start Cursor, ch rune) bool {
	tt, ok := delimiters[ch]
	if !ok {
		return false
	}
	l.advance()
	l.emit(tt, l.text(start), start)
	return true
}
