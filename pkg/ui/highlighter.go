package ui

import (
	"strings"
	"unicode/utf8"

	"sqlcompiler/pkg/lexer"
	"sqlcompiler/pkg/ui/base"

	"github.com/charmbracelet/lipgloss"
)

type segmentKind int

const (
	segPlain segmentKind = iota
	segKeyword
	segType
	segString
	segNumber
	segOperator
	segComment
	segError
)

// segment is a run of source text sharing one style.
type segment struct {
	text string
	kind segmentKind
}

// SQLHighlighter colours source text using the lexer's own classification,
// so the preview always agrees with the token table.
type SQLHighlighter struct {
	styles map[segmentKind]lipgloss.Style
}

func NewSQLHighlighter() *SQLHighlighter {
	p := base.DraculaSyntax
	return &SQLHighlighter{
		styles: map[segmentKind]lipgloss.Style{
			segKeyword:  lipgloss.NewStyle().Foreground(p.Keyword).Bold(true),
			segType:     lipgloss.NewStyle().Foreground(p.Type).Bold(true),
			segString:   lipgloss.NewStyle().Foreground(p.String),
			segNumber:   lipgloss.NewStyle().Foreground(p.Number),
			segOperator: lipgloss.NewStyle().Foreground(p.Operator),
			segComment:  lipgloss.NewStyle().Foreground(p.Comment).Italic(true),
			segError:    lipgloss.NewStyle().Foreground(p.Error).Underline(true),
		},
	}
}

// Highlight renders src with styles applied to each token. tokens must come
// from tokenizing src.
func (h *SQLHighlighter) Highlight(src string, tokens []lexer.Token) string {
	var b strings.Builder
	for _, seg := range segments(src, tokens) {
		style, ok := h.styles[seg.kind]
		if !ok {
			b.WriteString(seg.text)
			continue
		}
		// Styles are applied per line; lipgloss pads multi-line blocks.
		for i, line := range strings.Split(seg.text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

// segments splits src into styled runs. Text between tokens is whitespace
// or comments; the source span of an ERROR token is the offending character,
// or the rest of the input for an unclosed string or comment.
func segments(src string, tokens []lexer.Token) []segment {
	var out []segment
	pos := 0

	for _, tok := range tokens {
		if tok.Offset > pos {
			out = append(out, gapSegments(src[pos:tok.Offset])...)
		}

		end := tok.Offset + len(tok.Lexeme)
		if tok.Type == lexer.ERROR {
			if lexer.IsUnclosedString(tok) || lexer.IsUnclosedComment(tok) {
				end = len(src)
			} else {
				_, size := utf8.DecodeRuneInString(src[tok.Offset:])
				end = tok.Offset + size
			}
		}
		out = append(out, segment{text: src[tok.Offset:end], kind: kindOf(tok.Type)})
		pos = end
	}

	if pos < len(src) {
		out = append(out, gapSegments(src[pos:])...)
	}
	return out
}

// gapSegments marks the non-whitespace part of a gap as comment text.
func gapSegments(gap string) []segment {
	if strings.TrimSpace(gap) == "" {
		return []segment{{text: gap, kind: segPlain}}
	}
	trimmed := strings.TrimLeft(gap, " \t\r\n")
	lead := gap[:len(gap)-len(trimmed)]
	body := strings.TrimRight(trimmed, " \t\r\n")
	trail := trimmed[len(body):]

	var out []segment
	if lead != "" {
		out = append(out, segment{text: lead, kind: segPlain})
	}
	out = append(out, segment{text: body, kind: segComment})
	if trail != "" {
		out = append(out, segment{text: trail, kind: segPlain})
	}
	return out
}

func kindOf(t lexer.TokenType) segmentKind {
	switch {
	case t.IsKeyword():
		return segKeyword
	case t == lexer.TYPE:
		return segType
	case t == lexer.STRING:
		return segString
	case t == lexer.NUMBER:
		return segNumber
	case t.IsOperator():
		return segOperator
	case t == lexer.ERROR:
		return segError
	default:
		return segPlain
	}
}
