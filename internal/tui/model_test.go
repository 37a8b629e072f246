package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	mdwlog "github.com/msto63/mlogo/foundation/core/log"
	"github.com/msto63/mlogo/internal/engine"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	session, err := engine.New(context.Background(), engine.Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}

	m := NewModel(Options{
		Session:      session,
		Logger:       mdwlog.Discard(),
		CanvasWidth:  20,
		CanvasHeight: 5,
		Scale:        1,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return updated.(Model)
}

// collect runs a command and flattens batches into their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func enter(t *testing.T, m Model, line string) Model {
	t.Helper()

	m.textarea.SetValue(line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.textarea.Value() != "" {
		t.Errorf("prompt not cleared after enter: %q", m.textarea.Value())
	}
	for _, msg := range collect(cmd) {
		if result, ok := msg.(submitResultMsg); ok {
			updated, _ = m.Update(result)
			m = updated.(Model)
		}
	}
	return m
}

func TestModel_SubmitStatement(t *testing.T) {
	m := enter(t, newTestModel(t), "forward 10")

	if got := len(m.session.State().DrawCommands); got != 1 {
		t.Errorf("draw commands = %d, want 1", got)
	}
	if m.loading || m.pending != "" || m.lastError != nil {
		t.Errorf("unexpected model state: loading=%v pending=%q err=%v", m.loading, m.pending, m.lastError)
	}
	if len(m.transcript) != 2 || m.transcript[0].text != "> forward 10" {
		t.Errorf("transcript = %+v", m.transcript)
	}
}

func TestModel_UnfinishedStatementContinues(t *testing.T) {
	m := enter(t, newTestModel(t), "forward")

	if m.pending != "forward" || m.textarea.Prompt != ContinuationPrompt {
		t.Fatalf("pending = %q, prompt = %q", m.pending, m.textarea.Prompt)
	}
	if len(m.session.State().DrawCommands) != 0 {
		t.Error("unfinished statement was performed")
	}

	m = enter(t, m, "10")
	if m.pending != "" || m.textarea.Prompt != "> " {
		t.Errorf("pending = %q, prompt = %q", m.pending, m.textarea.Prompt)
	}
	if got := len(m.session.State().DrawCommands); got != 1 {
		t.Errorf("draw commands = %d, want 1", got)
	}
}

func TestModel_ErrorAndSuggestion(t *testing.T) {
	m := enter(t, newTestModel(t), "forwrd 10")

	if m.lastError == nil {
		t.Fatal("expected error")
	}
	if m.suggestion != "forward" {
		t.Errorf("suggestion = %q, want forward", m.suggestion)
	}
	if !strings.Contains(m.View(), "did you mean") {
		t.Error("view does not show the suggestion")
	}

	m = enter(t, m, "fd 1")
	if m.lastError != nil {
		t.Error("error not cleared by a clean submission")
	}
}

func TestModel_EmptyEnter(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank input produced a command")
	}
	if updated.(Model).loading {
		t.Error("blank input started loading")
	}
}

func TestModel_Reset(t *testing.T) {
	m := enter(t, newTestModel(t), "fd 10 rt 90")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)

	if len(m.session.State().DrawCommands) != 0 || len(m.transcript) != 0 {
		t.Errorf("reset kept state: %d draws, %d transcript entries",
			len(m.session.State().DrawCommands), len(m.transcript))
	}
}

func TestModel_TabCyclesViews(t *testing.T) {
	m := newTestModel(t)

	expected := []View{ViewTranscript, ViewFunctions, ViewCanvas}
	for _, want := range expected {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(Model)
		if m.view != want {
			t.Errorf("view = %d, want %d", m.view, want)
		}
	}
}

func TestModel_FunctionsView(t *testing.T) {
	m := newTestModel(t)
	m.view = ViewFunctions
	m.updateContent()

	if !strings.Contains(m.View(), "repeat <count> <statements>") {
		t.Error("functions view does not list repeat")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v: no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected quit", key)
		}
	}
}

func TestModel_ViewBeforeReady(t *testing.T) {
	m := NewModel(Options{Session: newTestModel(t).session})
	if m.View() != "Loading..." {
		t.Errorf("View() = %q", m.View())
	}
}
