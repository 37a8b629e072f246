// File: assembly.go
// Title: Instruction Assembly
// Description: The per-token state machine. While idle, whitespace is
//              recorded and a command word opens a new instruction; while an
//              instruction is assembling, every token is routed to its
//              function's token parser. Completed instructions are performed
//              and archived.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package parser

import (
	"github.com/msto63/mlogo/foundation/turtle/executor"
	"github.com/msto63/mlogo/foundation/turtle/language"
	"github.com/msto63/mlogo/foundation/turtle/token"
)

// NextToken advances instruction assembly by one token without performing
// anything. On error the input state is returned unchanged.
func NextToken(s language.State, tok token.Token) (language.State, error) {
	if s.CurrentInstruction != nil {
		current := *s.CurrentInstruction
		parse := current.Definition.ParseToken
		if parse == nil {
			parse = ParseCall
		}

		updated, err := parse(s, current, tok)
		if err != nil {
			return s, err
		}
		return s.WithCurrent(updated).WithToken(tok.Stamped(updated.ID)), nil
	}

	if tok.IsWhitespace() {
		return s.WithToken(tok), nil
	}

	def, err := s.AllFunctions.Resolve(tok.Text)
	if err != nil {
		return s, err
	}

	in := language.NewInstruction(s.NextInstructionID, def)
	next := s.WithCurrent(in).WithToken(tok.Stamped(in.ID))
	next.NextInstructionID++
	return next, nil
}

// ParseCall is the default token parser: whitespace is ignored and each
// other token fills the next positional parameter. The instruction is
// complete once every parameter is collected.
func ParseCall(_ language.State, in language.Instruction, tok token.Token) (language.Instruction, error) {
	if tok.IsWhitespace() {
		return in, nil
	}

	name, ok := in.NextParameter()
	if !ok {
		in.IsComplete = true
		return in, nil
	}

	in.CollectedParameters = in.CollectedParameters.With(name, tok.Text)
	in.IsComplete = len(in.CollectedParameters) == len(in.Definition.Parameters)
	return in, nil
}

// ParseAndSaveStatement advances assembly by one token and, if that
// completes the current instruction, performs it, folds the update into the
// state and archives the instruction.
func ParseAndSaveStatement(s language.State, tok token.Token) (language.State, error) {
	next, err := NextToken(s, tok)
	if err != nil {
		return s, err
	}

	if next.CurrentInstruction == nil || !next.CurrentInstruction.IsComplete {
		return next, nil
	}

	in := *next.CurrentInstruction
	update, err := executor.Perform(next, in)
	if err != nil {
		return s, err
	}

	return next.Apply(update).WithStatement(in), nil
}
