package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	mdwlog "github.com/msto63/mlogo/foundation/core/log"
	"github.com/msto63/mlogo/foundation/turtle/language"
	"github.com/msto63/mlogo/internal/canvas"
	"github.com/msto63/mlogo/internal/engine"
)

// View represents different views in the TUI
type View int

const (
	ViewCanvas View = iota
	ViewTranscript
	ViewFunctions
)

const viewCount = 3

// ContinuationPrompt replaces the prompt while a statement is unfinished
const ContinuationPrompt = ". "

// Options configures the REPL model
type Options struct {
	Session *engine.Session
	Logger  *mdwlog.Logger

	Prompt string

	// Canvas size in cells; zero follows the window
	CanvasWidth  int
	CanvasHeight int
	Scale        float64

	// Styled renders error output with lipgloss colors
	Styled bool
}

type entryKind int

const (
	entryInput entryKind = iota
	entryInfo
	entryError
)

// entry is one line of the transcript
type entry struct {
	kind entryKind
	text string
}

// Model is the main TUI model
type Model struct {
	// State
	view    View
	width   int
	height  int
	ready   bool
	loading bool

	// Components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	session *engine.Session
	logger  *mdwlog.Logger
	options Options

	// pending holds the lines of a statement that is not complete yet
	pending string

	lastError  *language.ErrorInfo
	suggestion string
	transcript []entry
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	if opts.Scale <= 0 {
		opts.Scale = 0.25
	}

	ta := textarea.New()
	ta.Placeholder = "forward 50 right 90 ..."
	ta.Prompt = opts.Prompt
	ta.Focus()
	ta.CharLimit = 4000
	ta.SetWidth(80)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		view:     ViewCanvas,
		textarea: ta,
		spinner:  sp,
		session:  opts.Session,
		logger:   opts.Logger.WithField("component", "turtle-repl"),
		options:  opts,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.view = (m.view + 1) % viewCount
			m.updateContent()
			return m, nil

		case "enter":
			if m.loading {
				return m, nil
			}
			line := m.textarea.Value()
			input := line
			if m.pending != "" {
				input = m.pending + "\n" + line
			}
			m.textarea.Reset()
			if strings.TrimSpace(input) == "" {
				return m, nil
			}
			m.transcript = append(m.transcript, entry{kind: entryInput, text: m.textarea.Prompt + line})
			m.loading = true
			m.updateContent()
			return m, tea.Batch(m.submit(input), m.spinner.Tick)

		case "ctrl+l":
			m.session.Reset()
			m.pending = ""
			m.lastError = nil
			m.suggestion = ""
			m.transcript = nil
			m.textarea.Prompt = m.options.Prompt
			m.updateContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(1, msg.Height-8))
			m.viewport.YPosition = 3
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(1, msg.Height-8)
		}
		m.textarea.SetWidth(max(10, msg.Width-4))
		m.updateContent()

	case submitResultMsg:
		m.loading = false
		m.applyResult(msg)
		m.updateContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Update components
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) applyResult(msg submitResultMsg) {
	result := msg.result

	if !result.Complete {
		m.pending = msg.input
		m.textarea.Prompt = ContinuationPrompt
		return
	}

	m.pending = ""
	m.textarea.Prompt = m.options.Prompt

	if result.Failed() {
		m.lastError = result.Error
		m.suggestion = result.Suggestion
		m.transcript = append(m.transcript, entry{
			kind: entryError,
			text: RenderError(result.Error, result.Suggestion, m.options.Styled),
		})
		m.logger.Debug("Submission failed", mdwlog.Fields{"error": result.Error.Description})
		return
	}

	m.lastError = nil
	m.suggestion = ""
	if n := len(result.DrawCommands); n > 0 {
		m.transcript = append(m.transcript, entry{kind: entryInfo, text: fmt.Sprintf("%d draw commands", n)})
	}
}

// submit runs a submission off the update loop
func (m *Model) submit(input string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return submitResultMsg{
			input:  input,
			result: session.Submit(context.Background(), input),
		}
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	// Header
	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	if m.lastError != nil && m.view == ViewCanvas {
		s.WriteString(RenderError(m.lastError, m.suggestion, m.options.Styled))
		s.WriteString("\n")
	}

	// Loading indicator
	if m.loading {
		s.WriteString(m.spinner.View())
		s.WriteString(" Running...\n")
	}

	// Input area
	s.WriteString(FocusedInputStyle.Render(m.textarea.View()))

	// Footer
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderHeader() string {
	tabs := []string{"Canvas", "Transcript", "Functions"}
	var renderedTabs []string

	for i, tab := range tabs {
		if View(i) == m.view {
			renderedTabs = append(renderedTabs, ActiveTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, TabStyle.Render(tab))
		}
	}

	title := TitleStyle.Render("mLOGO")
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabLine)
}

func (m *Model) renderFooter() string {
	help := "Tab: Switch • Ctrl+L: Reset • Ctrl+C: Quit"
	t := m.session.State().Turtle
	position := fmt.Sprintf("x %.1f  y %.1f  angle %.0f", t.X, t.Y, t.Angle)
	if m.pending != "" {
		position = "unfinished statement  " + position
	}

	return StatusBarStyle.Width(m.width).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			help,
			strings.Repeat(" ", max(0, m.width-lipgloss.Width(help)-lipgloss.Width(position)-4)),
			position,
		),
	)
}

func (m *Model) updateContent() {
	var content string

	switch m.view {
	case ViewCanvas:
		content = m.renderCanvas()
	case ViewTranscript:
		content = m.renderTranscript()
	case ViewFunctions:
		content = m.renderFunctions()
	}

	m.viewport.SetContent(content)
	if m.view == ViewTranscript {
		m.viewport.GotoBottom()
	}
}

func (m *Model) renderCanvas() string {
	width, height := m.options.CanvasWidth, m.options.CanvasHeight
	if width <= 0 {
		width = max(1, m.viewport.Width-2)
	}
	if height <= 0 {
		height = max(1, m.viewport.Height-2)
	}

	state := m.session.State()
	return CanvasStyle.Render(canvas.Render(width, height, m.options.Scale, state.DrawCommands, &state.Turtle))
}

func (m *Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return SubtitleStyle.Render("Nothing submitted yet.")
	}

	var content strings.Builder
	for _, e := range m.transcript {
		switch e.kind {
		case entryInput:
			content.WriteString(InputEchoStyle.Render(e.text))
		case entryInfo:
			content.WriteString(InfoStyle.Render(e.text))
		case entryError:
			content.WriteString(e.text)
		}
		content.WriteString("\n")
	}
	return content.String()
}

func (m *Model) renderFunctions() string {
	var content strings.Builder

	for _, d := range m.session.Registry().Describe() {
		signature := d.Name
		if len(d.Parameters) > 0 {
			signature += " <" + strings.Join(d.Parameters, "> <") + ">"
		}
		content.WriteString(InputEchoStyle.Render(signature))
		if len(d.Aliases) > 0 {
			content.WriteString(HelpStyle.Render("  (" + strings.Join(d.Aliases, ", ") + ")"))
		}
		content.WriteString("\n  ")
		content.WriteString(d.Description)
		content.WriteString("\n")
	}
	return content.String()
}

// Run starts the turtle REPL
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
