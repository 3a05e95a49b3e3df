package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sqlcompiler/pkg/lexer"
	"sqlcompiler/pkg/logging"
	"sqlcompiler/pkg/ui/base"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const lexemeColumnWidth = 40

// Model represents the playground state
type Model struct {
	editor      textarea.Model
	preview     viewport.Model
	tokenTable  table.Model
	spinner     spinner.Model
	help        help.Model
	highlighter *SQLHighlighter

	width           int
	height          int
	analyzing       bool
	analyzed        bool
	showHelp        bool
	caseInsensitive bool
	tokens          []lexer.Token
	summary         lexer.Summary
	lastDuration    time.Duration

	// source is text loaded through WithSource, kept verbatim because the
	// editor rewrites tabs. It is tokenized until the editor content changes.
	source     string
	sourceView string

	keys keyMap
}

// Option configures the initial Model.
type Option func(*Model)

// WithSource pre-fills the editor with src. The whole text is loaded, with
// no character or line cap.
func WithSource(src string) Option {
	return func(m *Model) {
		m.editor.SetValue(src)
		m.source = src
		m.sourceView = m.editor.Value()
	}
}

// WithCaseInsensitiveKeywords starts with case-insensitive keyword matching.
func WithCaseInsensitiveKeywords(on bool) Option {
	return func(m *Model) {
		m.caseInsensitive = on
	}
}

func NewModel(opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = "Enter SQL-like code here..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.SetHeight(6)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(bgLight)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(textMuted)
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(textPrimary)
	ta.FocusedStyle.LineNumber = lipgloss.NewStyle().Foreground(textMuted)

	vp := viewport.New(80, 6)
	vp.Style = previewStyle

	t := table.New(
		table.WithColumns(tokenColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	m := Model{
		editor:      ta,
		preview:     vp,
		tokenTable:  t,
		spinner:     sp,
		help:        help.New(),
		highlighter: NewSQLHighlighter(),
		keys:        keys,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func tokenColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Type", Width: 14},
		{Title: "Lexeme", Width: lexemeColumnWidth},
		{Title: "Line", Width: 6},
		{Title: "Col", Width: 6},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textarea.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		if m.analyzing {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Analyze):
			src := m.currentSource()
			if strings.TrimSpace(src) != "" {
				m.analyzing = true
				return m, m.analyze(src)
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleCase):
			m.caseInsensitive = !m.caseInsensitive
			if m.analyzed {
				m.analyzing = true
				return m, m.analyze(m.currentSource())
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.editor.SetValue("")
			m.source, m.sourceView = "", ""
			m.tokens = nil
			m.summary = lexer.Summary{}
			m.analyzed = false
			m.tokenTable.SetRows([]table.Row{})
			m.preview.SetContent("")
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}

	case analyzeResultMsg:
		m.analyzing = false
		m.analyzed = true
		m.tokens = msg.tokens
		m.summary = lexer.Summarize(msg.tokens)
		m.lastDuration = msg.duration
		m.tokenTable.SetRows(tokenRows(msg.tokens))
		m.preview.SetContent(m.highlighter.Highlight(msg.source, msg.tokens))
		return m, nil

	case spinner.TickMsg:
		if m.analyzing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if !m.analyzing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)

		m.preview, cmd = m.preview.Update(msg)
		cmds = append(cmds, cmd)

		m.tokenTable, cmd = m.tokenTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// currentSource is the text to tokenize: the loaded source while the editor
// still shows it unchanged, otherwise whatever the editor holds.
func (m Model) currentSource() string {
	v := m.editor.Value()
	if m.source != "" && v == m.sourceView {
		return m.source
	}
	return v
}

func tokenRows(tokens []lexer.Token) []table.Row {
	rows := make([]table.Row, len(tokens))
	for i, tok := range tokens {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			tok.Type.String(),
			base.TruncateString(base.SingleLine(tok.Lexeme), lexemeColumnWidth),
			strconv.Itoa(tok.Line),
			strconv.Itoa(tok.Column),
		}
	}
	return rows
}

func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderEditor())

	switch {
	case m.analyzing:
		sections = append(sections, m.renderAnalyzing())
	case m.analyzed && len(m.tokens) == 0:
		sections = append(sections, m.renderEmpty())
	case m.analyzed:
		sections = append(sections, m.renderPreview(), m.renderTokenTable())
	}

	sections = append(sections, m.renderStatusBar())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}

	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHelp() string {
	helpText := m.help.FullHelpView([][]key.Binding{
		{
			m.keys.Analyze,
			m.keys.ToggleCase,
			m.keys.Clear,
			m.keys.Help,
			m.keys.Quit,
		},
	})

	legend := lipgloss.NewStyle().Foreground(textMuted).Render(
		"Keywords: " + strings.Join(lexer.Keywords(), " ") +
			"\nTypes: " + strings.Join(lexer.TypeNames(), " ") +
			"\nComments: -- to end of line, # block #")

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(bgMedium).
		Render(helpText + "\n\n" + legend)
}

func (m Model) policyName() string {
	if m.caseInsensitive {
		return "case-insensitive"
	}
	return "case-sensitive"
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("SQL Lexer Playground")
	badge := policyBadgeStyle.Render("keywords: " + m.policyName())
	counts := lipgloss.NewStyle().
		Foreground(textSecondary).
		Render(fmt.Sprintf("Tokens: %d | Errors: %d", m.summary.Total, m.summary.Errors))

	header := lipgloss.JoinHorizontal(
		lipgloss.Left,
		title,
		"  ",
		badge,
		"  ",
		counts,
	)

	separator := strings.Repeat("─", base.Max(m.width-4, 0))
	sepStyle := lipgloss.NewStyle().
		Foreground(bgLight).
		Render(separator)

	return header + "\n" + sepStyle
}

func (m Model) renderEditor() string {
	label := sectionLabelStyle.Render("Source")
	return fmt.Sprintf("%s\n%s", label, editorStyle.Render(m.editor.View()))
}

func (m Model) renderAnalyzing() string {
	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		m.spinner.View(),
		" Tokenizing...",
	)

	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Padding(1, 0).
		Render(content)
}

func (m Model) renderEmpty() string {
	return lipgloss.NewStyle().
		Foreground(textMuted).
		Padding(1, 0).
		Render("No tokens: the source holds only whitespace and comments.")
}

func (m Model) renderPreview() string {
	label := sectionLabelStyle.Render("Highlighted")
	return fmt.Sprintf("%s\n%s", label, m.preview.View())
}

func (m Model) renderTokenTable() string {
	headerStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	text := fmt.Sprintf("✓ %d tokens in %v", m.summary.Total, m.lastDuration)

	if m.summary.Errors > 0 {
		headerStyle = errorStyle
		text = fmt.Sprintf(" ⚠ %d tokens, %d errors ", m.summary.Total, m.summary.Errors)
	}

	header := headerStyle.Render(text)
	if m.summary.Halted {
		header += " " + haltedStyle.Render("scan stopped at an unclosed string")
	}
	return fmt.Sprintf("%s\n%s", header, m.tokenTable.View())
}

func (m Model) renderStatusBar() string {
	status := "● Ready"
	statusColor := accentColor
	if m.summary.Errors > 0 {
		status = "● Errors"
		statusColor = errorColor
	}

	timer := ""
	if m.lastDuration > 0 {
		timer = fmt.Sprintf(" | Last scan: %v", m.lastDuration)
	}

	helpHint := " | Press Ctrl+H for help"
	content := lipgloss.NewStyle().
		Foreground(statusColor).
		Render(status) +
		lipgloss.NewStyle().
			Foreground(textMuted).
			Render(timer+helpHint)

	return statusBarStyle.
		Width(base.Max(m.width-4, 0)).
		Render(content)
}

// updateLayout adjusts component sizes based on window size
func (m *Model) updateLayout() {
	editorHeight := 6
	previewHeight := 6
	tableHeight := base.Max(m.height-editorHeight-previewHeight-14, 3)

	m.editor.SetWidth(m.width - 6)
	m.preview.Width = m.width - 6
	m.preview.Height = previewHeight
	m.tokenTable.SetHeight(tableHeight)
}

type analyzeResultMsg struct {
	source   string
	tokens   []lexer.Token
	duration time.Duration
}

func (m Model) analyze(src string) tea.Cmd {
	var opts []lexer.Option
	if m.caseInsensitive {
		opts = append(opts, lexer.WithCaseInsensitiveKeywords())
	}

	return func() tea.Msg {
		start := time.Now()
		tokens := lexer.Tokenize(src, opts...)
		duration := time.Since(start)

		logging.WithSource("editor", len(src)).Debug("tokenized",
			"tokens", len(tokens),
			"case_insensitive", len(opts) > 0,
			"duration", duration)

		return analyzeResultMsg{
			source:   src,
			tokens:   tokens,
			duration: duration,
		}
	}
}
