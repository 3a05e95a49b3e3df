package ui

import (
	"strings"
	"testing"

	"sqlcompiler/pkg/lexer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAnalyze presses ctrl+e and feeds the resulting message back.
func runAnalyze(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = next.(Model)
	require.True(t, m.analyzing)
	require.NotNil(t, cmd)

	msg := cmd()
	result, ok := msg.(analyzeResultMsg)
	require.True(t, ok, "expected analyzeResultMsg, got %T", msg)

	next, _ = m.Update(result)
	return next.(Model)
}

func TestAnalyzePopulatesTokens(t *testing.T) {
	m := runAnalyze(t, NewModel(WithSource("SELECT a FROM t;")))

	assert.False(t, m.analyzing)
	assert.True(t, m.analyzed)
	require.Len(t, m.tokens, 5)
	assert.Equal(t, lexer.SELECT, m.tokens[0].Type)
	assert.Equal(t, 5, m.summary.Total)
	assert.Len(t, m.tokenTable.Rows(), 5)
	assert.Equal(t, "IDENTIFIER", m.tokenTable.Rows()[1][1])
	assert.Contains(t, m.View(), "SQL Lexer Playground")
}

func TestAnalyzeBlankDoesNothing(t *testing.T) {
	next, cmd := NewModel(WithSource("   ")).Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m := next.(Model)

	assert.Nil(t, cmd)
	assert.False(t, m.analyzing)
	assert.False(t, m.analyzed)
}

func TestToggleCaseReanalyzes(t *testing.T) {
	m := runAnalyze(t, NewModel(WithSource("select x")))
	assert.Equal(t, lexer.IDENTIFIER, m.tokens[0].Type)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.caseInsensitive)

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, lexer.SELECT, m.tokens[0].Type)
	assert.Contains(t, m.View(), "case-insensitive")
}

func TestErrorsShownInSummary(t *testing.T) {
	m := runAnalyze(t, NewModel(WithSource("5 & 'open")))

	assert.Equal(t, 2, m.summary.Errors)
	assert.True(t, m.summary.Halted)
	assert.Contains(t, m.View(), "unclosed string")
}

func TestClearResetsState(t *testing.T) {
	m := runAnalyze(t, NewModel(WithSource("a = 1")))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)

	assert.Empty(t, m.editor.Value())
	assert.Nil(t, m.tokens)
	assert.False(t, m.analyzed)
	assert.Empty(t, m.tokenTable.Rows())
}

func TestQuit(t *testing.T) {
	_, cmd := NewModel().Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowResize(t *testing.T) {
	next, _ := NewModel(WithCaseInsensitiveKeywords(true)).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := next.(Model)

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 114, m.preview.Width)
	assert.True(t, m.caseInsensitive)
}

func TestLoadedSourceIsNotTruncated(t *testing.T) {
	src := strings.Repeat("a", 5990) + " 'closed'"
	m := NewModel(WithSource(src))
	require.Equal(t, src, m.editor.Value())

	m = runAnalyze(t, m)
	require.Len(t, m.tokens, 2)
	assert.Equal(t, lexer.STRING, m.tokens[1].Type)
	assert.Equal(t, "'closed'", m.tokens[1].Lexeme)
	assert.Zero(t, m.summary.Errors)
}

func TestLoadedSourceKeepsAllLines(t *testing.T) {
	src := strings.Repeat("SELECT a FROM t;\n", 150)
	m := NewModel(WithSource(src))
	require.Equal(t, src, m.editor.Value())

	m = runAnalyze(t, m)
	require.Len(t, m.tokens, 750)
	assert.Equal(t, 150, m.tokens[749].Line)
}

func TestLoadedSourceTokenizedVerbatim(t *testing.T) {
	// The editor shows the tab as spaces; positions still follow the file.
	m := runAnalyze(t, NewModel(WithSource("SELECT\ta")))
	require.Len(t, m.tokens, 2)
	assert.Equal(t, 8, m.tokens[1].Column)

	// Once edited, the editor content is what gets tokenized.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = runAnalyze(t, next.(Model))
	require.Len(t, m.tokens, 2)
	assert.Equal(t, "ax", m.tokens[1].Lexeme)
	assert.Equal(t, 11, m.tokens[1].Column)
}
