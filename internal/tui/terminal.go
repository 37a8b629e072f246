package tui

import (
	"io"

	"golang.org/x/term"
)

// fdWriter is satisfied by *os.File
type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalSize returns the size of the terminal behind w, or the fallback
// when w is not a terminal
func TerminalSize(w io.Writer, fallbackWidth, fallbackHeight int) (width, height int) {
	f, ok := w.(fdWriter)
	if !ok {
		return fallbackWidth, fallbackHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return width, height
}
