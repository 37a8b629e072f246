// File: pen.go
// Title: Pen and Screen Built-ins
// Description: Parameterless commands that set the pen state or clear the
//              screen and send the turtle home.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package builtins

import (
	"github.com/msto63/mlogo/foundation/turtle/language"
)

// PenUp stops movement from drawing
var PenUp = &language.FunctionDefinition{
	Names:       []string{"penup", "pu"},
	Description: "Lift the pen; movement no longer draws",
	Initial:     complete,
	Perform:     setPen(false),
}

// PenDown makes movement draw again
var PenDown = &language.FunctionDefinition{
	Names:       []string{"pendown", "pd"},
	Description: "Lower the pen; movement draws lines",
	Initial:     complete,
	Perform:     setPen(true),
}

// ClearScreen wipes the drawing and returns the turtle to the origin
var ClearScreen = &language.FunctionDefinition{
	Names:       []string{"clearscreen", "cs"},
	Description: "Clear the screen and move the turtle home",
	Initial:     complete,
	Perform: func(_ language.State, in language.Instruction) (language.Update, error) {
		home := language.Turtle{}
		return language.Update{
			Turtle:       &home,
			DrawCommands: []language.DrawCommand{language.Clear(in.ID)},
		}, nil
	},
}

func complete(in language.Instruction) language.Instruction {
	in.IsComplete = true
	return in
}

func setPen(down bool) language.Performer {
	return func(language.State, language.Instruction) (language.Update, error) {
		return language.Update{Pen: &language.Pen{Down: down}}, nil
	}
}
