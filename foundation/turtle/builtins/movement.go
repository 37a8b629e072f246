// File: movement.go
// Title: Movement and Rotation Built-ins
// Description: forward/backward move the turtle along its heading and log a
//              drawLine while the pen is down; left/right change the heading
//              and log a rotate. Arguments must be integers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package builtins

import (
	"math"

	"github.com/msto63/mlogo/foundation/turtle/language"
	"github.com/msto63/mlogo/foundation/turtle/parser"
	"github.com/msto63/mlogo/foundation/turtle/token"
)

// Forward moves the turtle along its heading
var Forward = &language.FunctionDefinition{
	Names:       []string{"forward", "fd"},
	Parameters:  []string{"distance"},
	Description: "Move the turtle forward by distance",
	ParseToken:  parseIntegerCall,
	Perform:     move(1),
}

// Backward moves the turtle against its heading
var Backward = &language.FunctionDefinition{
	Names:       []string{"backward", "bk"},
	Parameters:  []string{"distance"},
	Description: "Move the turtle backward by distance",
	ParseToken:  parseIntegerCall,
	Perform:     move(-1),
}

// Left turns the turtle counter-clockwise
var Left = &language.FunctionDefinition{
	Names:       []string{"left", "lt"},
	Parameters:  []string{"angle"},
	Description: "Turn the turtle left by angle degrees",
	ParseToken:  parseIntegerCall,
	Perform:     rotate(-1),
}

// Right turns the turtle clockwise
var Right = &language.FunctionDefinition{
	Names:       []string{"right", "rt"},
	Parameters:  []string{"angle"},
	Description: "Turn the turtle right by angle degrees",
	ParseToken:  parseIntegerCall,
	Perform:     rotate(1),
}

// parseIntegerCall collects positional arguments, rejecting non-integers
// as they arrive.
func parseIntegerCall(s language.State, in language.Instruction, tok token.Token) (language.Instruction, error) {
	if !tok.IsWhitespace() {
		if _, err := language.ParseInteger(tok.Text); err != nil {
			return in, err
		}
	}
	return parser.ParseCall(s, in, tok)
}

func move(sign float64) language.Performer {
	return func(s language.State, in language.Instruction) (language.Update, error) {
		distance, err := in.CollectedParameters.Int("distance")
		if err != nil {
			return language.Update{}, err
		}

		radians := s.Turtle.Angle * math.Pi / 180
		next := s.Turtle
		next.X = s.Turtle.X + sign*float64(distance)*math.Cos(radians)
		next.Y = s.Turtle.Y + sign*float64(distance)*math.Sin(radians)

		update := language.Update{Turtle: &next}
		if s.Pen.Down {
			update.DrawCommands = []language.DrawCommand{
				language.Line(in.ID, s.Turtle.X, s.Turtle.Y, next.X, next.Y),
			}
		}
		return update, nil
	}
}

func rotate(sign float64) language.Performer {
	return func(s language.State, in language.Instruction) (language.Update, error) {
		angle, err := in.CollectedParameters.Int("angle")
		if err != nil {
			return language.Update{}, err
		}

		next := s.Turtle
		next.Angle = s.Turtle.Angle + sign*float64(angle)

		return language.Update{
			Turtle:       &next,
			DrawCommands: []language.DrawCommand{language.Rotation(in.ID, s.Turtle.Angle, next.Angle)},
		}, nil
	}
}
