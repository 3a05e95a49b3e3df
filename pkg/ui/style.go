package ui

import (
	"sqlcompiler/pkg/ui/base"

	"github.com/charmbracelet/lipgloss"
)

var palette = base.DarkPalette

var (
	primaryColor   = palette.Primary
	secondaryColor = palette.Secondary
	accentColor    = palette.Accent
	errorColor     = palette.Error

	bgDark   = palette.Background
	bgMedium = palette.Surface
	bgLight  = palette.Border

	textPrimary   = palette.Text
	textSecondary = palette.TextDim
	textMuted     = palette.Muted
)

var (
	appStyle = lipgloss.NewStyle().
			Background(bgDark).
			Foreground(textPrimary).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(textPrimary).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1)

	// policyBadgeStyle shows the active keyword case policy in the header.
	policyBadgeStyle = lipgloss.NewStyle().
				Background(secondaryColor).
				Foreground(bgDark).
				Bold(true).
				Padding(0, 1).
				MarginRight(2)

	sectionLabelStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(bgMedium).
			Foreground(textSecondary).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Background(errorColor).
			Foreground(textPrimary).
			Bold(true).
			Padding(0, 1)

	// haltedStyle marks a scan cut short by an unclosed string.
	haltedStyle = lipgloss.NewStyle().
			Foreground(palette.Warning).
			Italic(true)

	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(bgLight).
			Padding(0, 1)
)
