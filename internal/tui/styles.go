package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/mlogo/foundation/turtle/language"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Canvas box
	CanvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted)

	// Transcript styles
	InputEchoStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	CaretStyle = lipgloss.NewStyle().
			Foreground(colorError)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Italic(true)

	// Status styles
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Input style
	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	// Tab styles
	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorMuted)

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorPrimary).
			Bold(true).
			Underline(true)
)

// Helper functions
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}

// RenderError formats a script error as the description, the failing line
// and a caret run under the offending word. With styled unset the output is
// plain text.
func RenderError(info *language.ErrorInfo, suggestion string, styled bool) string {
	if info == nil {
		return ""
	}

	paint := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder
	b.WriteString(paint(ErrorMessageStyle, "Error: "+info.Description))

	if line := strings.TrimRight(info.Line, "\r\n"); line != "" {
		column, width := caretSpan(info)
		b.WriteString("\n  ")
		b.WriteString(line)
		b.WriteString("\n  ")
		b.WriteString(strings.Repeat(" ", column))
		b.WriteString(paint(CaretStyle, strings.Repeat("^", width)))
	}

	if suggestion != "" {
		b.WriteString("\n")
		b.WriteString(paint(SuggestionStyle, fmt.Sprintf("  did you mean %q?", suggestion)))
	}

	return b.String()
}

// caretSpan returns the caret offset and width in runes
func caretSpan(info *language.ErrorInfo) (column, width int) {
	width = info.Position.End - info.Position.Start + 1
	if width < 1 {
		width = 1
	}
	return max(info.Column+info.Position.Start, 0), width
}
