// File: repeat.go
// Title: Repeat Built-in
// Description: repeat <count> [ <statements> ] runs a bracketed body count
//              times. The body is assembled with the same state machine as
//              top-level input, so nested repeats close their own brackets
//              and the outer body ends at the first "]" seen while no inner
//              statement is in progress. Body statements share the repeat's
//              instruction id.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package builtins

import (
	"slices"

	"github.com/msto63/mlogo/foundation/turtle/executor"
	"github.com/msto63/mlogo/foundation/turtle/language"
	"github.com/msto63/mlogo/foundation/turtle/parser"
	"github.com/msto63/mlogo/foundation/turtle/token"
)

const (
	openBracket  = "["
	closeBracket = "]"
)

// Repeat runs a bracketed body a number of times
var Repeat = &language.FunctionDefinition{
	Names:       []string{"repeat", "rp"},
	Parameters:  []string{"count", "statements"},
	Description: "Run the bracketed statements count times",
	Initial: func(in language.Instruction) language.Instruction {
		in.Extra = repeatBody{}
		return in
	},
	ParseToken: parseRepeat,
	Perform:    performRepeat,
}

// repeatBody is the assembly state of a repeat instruction
type repeatBody struct {
	opened     bool
	inner      language.State
	tokens     []token.Token
	statements []language.Instruction
}

// BodyStatements returns the completed statements of a repeat body
func BodyStatements(in language.Instruction) []language.Instruction {
	body, _ := in.Extra.(repeatBody)
	return body.statements
}

func parseRepeat(s language.State, in language.Instruction, tok token.Token) (language.Instruction, error) {
	body, _ := in.Extra.(repeatBody)

	if _, ok := in.CollectedParameters.Get("count"); !ok {
		if tok.IsWhitespace() {
			return in, nil
		}
		if _, err := language.ParseInteger(tok.Text); err != nil {
			return in, err
		}
		in.CollectedParameters = in.CollectedParameters.With("count", tok.Text)
		return in, nil
	}

	if !body.opened {
		if tok.IsWhitespace() {
			return in, nil
		}
		if tok.Text != openBracket {
			return in, language.UnexpectedToken(tok.Text, "[ after repeat count")
		}
		body.opened = true
		body.inner = language.State{
			AllFunctions:      s.AllFunctions,
			NextInstructionID: in.ID,
		}
		in.Extra = body
		return in, nil
	}

	if tok.Text == closeBracket && !body.inner.IsAssembling() {
		in.CollectedParameters = in.CollectedParameters.With("statements", token.Join(body.tokens))
		in.IsComplete = true
		return in, nil
	}

	inner, err := parser.NextToken(body.inner, tok)
	if err != nil {
		return in, err
	}
	inner.ParsedTokens = nil
	inner.NextInstructionID = in.ID

	if inner.CurrentInstruction != nil && inner.CurrentInstruction.IsComplete {
		body.statements = append(slices.Clip(body.statements), *inner.CurrentInstruction)
		inner.CurrentInstruction = nil
	}

	body.inner = inner
	body.tokens = append(slices.Clip(body.tokens), tok)
	in.Extra = body
	return in, nil
}

func performRepeat(s language.State, in language.Instruction) (language.Update, error) {
	count, err := in.CollectedParameters.Int("count")
	if err != nil {
		return language.Update{}, err
	}

	body, _ := in.Extra.(repeatBody)
	current := s
	var commands []language.DrawCommand
	for range max(count, 0) {
		update, err := executor.Run(current, body.statements)
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
