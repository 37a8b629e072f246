// File: state.go
// Title: Interpreter State
// Description: Defines the single value threaded through the interpreter:
//              function table, instruction in progress, parsed history,
//              turtle and pen, the append-only draw log and the last error.
//              State is passed and returned by value; every method that
//              "changes" it returns a new State whose slices never share
//              writable capacity with the receiver.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package language

import (
	"slices"

	"github.com/msto63/mlogo/foundation/turtle/token"
)

// Turtle is the drawing cursor: position and heading in degrees
type Turtle struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Angle float64 `json:"angle" yaml:"angle"`
}

// Pen tracks whether movement draws
type Pen struct {
	Down bool `json:"down" yaml:"down"`
}

// State is the parser state
type State struct {
	AllFunctions       FunctionTable
	NextInstructionID  int
	CurrentInstruction *Instruction
	ParsedTokens       []token.Token
	ParsedStatements   []Instruction
	Turtle             Turtle
	Pen                Pen
	DrawCommands       []DrawCommand
	Error              *ErrorInfo
}

// Update is the partial state returned by a performer. Nil fields are left
// untouched; DrawCommands are appended to the log.
type Update struct {
	Turtle       *Turtle
	Pen          *Pen
	DrawCommands []DrawCommand
}

// NewState returns the initial state for a function table: turtle at the
// origin facing angle 0, pen down, nothing parsed.
func NewState(functions FunctionTable) State {
	return State{
		AllFunctions: functions,
		Pen:          Pen{Down: true},
	}
}

// Apply folds a performer update onto the state
func (s State) Apply(u Update) State {
	if u.Turtle != nil {
		s.Turtle = *u.Turtle
	}
	if u.Pen != nil {
		s.Pen = *u.Pen
	}
	if len(u.DrawCommands) > 0 {
		s.DrawCommands = append(slices.Clip(s.DrawCommands), u.DrawCommands...)
	}
	return s
}

// WithToken returns the state with tok appended to the parsed tokens
func (s State) WithToken(tok token.Token) State {
	s.ParsedTokens = append(slices.Clip(s.ParsedTokens), tok)
	return s
}

// WithStatement archives a completed instruction and returns to idle
func (s State) WithStatement(in Instruction) State {
	s.ParsedStatements = append(slices.Clip(s.ParsedStatements), in)
	s.CurrentInstruction = nil
	return s
}

// WithCurrent replaces the instruction in progress
func (s State) WithCurrent(in Instruction) State {
	s.CurrentInstruction = &in
	return s
}

// IsAssembling reports whether a statement is partially assembled
func (s State) IsAssembling() bool {
	return s.CurrentInstruction != nil
}
