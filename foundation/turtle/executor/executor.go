// File: executor.go
// Title: Instruction Executor
// Description: Dispatches completed instructions to their function's
//              performer and validates the returned update before it is
//              folded into the state.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package executor

import (
	mdwerror "github.com/msto63/mlogo/foundation/core/error"
	"github.com/msto63/mlogo/foundation/turtle/language"
)

// Perform applies one completed instruction and returns its update.
// Instructions without a performer yield an empty update.
func Perform(s language.State, in language.Instruction) (language.Update, error) {
	if in.Definition == nil || in.Definition.Perform == nil {
		return language.Update{}, nil
	}

	update, err := in.Definition.Perform(s, in)
	if err != nil {
		return language.Update{}, err
	}

	for _, cmd := range update.DrawCommands {
		if cmd.ID != in.ID {
			return language.Update{}, mdwerror.Newf("%s produced draw command for instruction %d, expected %d",
				in.Name(), cmd.ID, in.ID).
				WithCode(mdwerror.CodeExecution).
				WithOperation("perform")
		}
	}

	return update, nil
}

// Run performs a sequence of instructions in order, folding each turtle and
// pen update into the state before the next one runs. Draw commands are
// collected into the combined update, not into the state performers see.
func Run(s language.State, instructions []language.Instruction) (language.Update, error) {
	current := s
	var commands []language.DrawCommand

	for _, in := range instructions {
		update, err := Perform(current, in)
		if err != nil {
			return language.Update{}, err
		}
		current = current.Apply(language.Update{Turtle: update.Turtle, Pen: update.Pen})
		commands = append(commands, update.DrawCommands...)
	}

	return language.Update{
		Turtle:       &current.Turtle,
		Pen:          &current.Pen,
		DrawCommands: commands,
	}, nil
}
