package tui

import "github.com/msto63/mlogo/internal/engine"

// submitResultMsg carries the outcome of one submission back to Update
type submitResultMsg struct {
	input  string
	result *engine.Result
}
