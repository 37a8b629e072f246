// File: function.go
// Title: Function Definitions and Instructions
// Description: Data-described built-in commands. A FunctionDefinition carries
//              its aliases, positional parameter names and two behaviours:
//              ParseToken consumes tokens while the instruction is assembled,
//              Perform applies the completed instruction. New commands are
//              added by registering a definition, never by changing the
//              parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package language

import (
	"slices"
	"strings"

	"github.com/msto63/mlogo/foundation/turtle/token"
)

// TokenParser consumes one token routed to an instruction in progress and
// returns the updated instruction. Setting IsComplete hands it to Perform.
type TokenParser func(s State, in Instruction, tok token.Token) (Instruction, error)

// Performer applies a completed instruction
type Performer func(s State, in Instruction) (Update, error)

// FunctionDefinition describes one built-in command
type FunctionDefinition struct {
	Names       []string
	Parameters  []string
	Description string

	// Initial seeds a freshly created instruction, e.g. marks a
	// parameterless command complete or installs function-specific Extra.
	Initial    func(in Instruction) Instruction
	ParseToken TokenParser
	Perform    Performer
}

// Name returns the primary name
func (d *FunctionDefinition) Name() string {
	if len(d.Names) == 0 {
		return ""
	}
	return d.Names[0]
}

// Matches reports whether name is one of the aliases, ignoring case
func (d *FunctionDefinition) Matches(name string) bool {
	for _, alias := range d.Names {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// FunctionTable is an ordered collection of definitions
type FunctionTable []*FunctionDefinition

// Lookup finds the first definition with an alias equal to name ignoring
// case; nil means unknown.
func (t FunctionTable) Lookup(name string) *FunctionDefinition {
	for _, def := range t {
		if def.Matches(name) {
			return def
		}
	}
	return nil
}

// Resolve is Lookup that fails with UnknownFunction on a miss
func (t FunctionTable) Resolve(name string) (*FunctionDefinition, error) {
	if def := t.Lookup(name); def != nil {
		return def, nil
	}
	return nil, UnknownFunction(name)
}

// Parameter is one collected positional argument
type Parameter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Parameters keeps collected arguments in assembly order
type Parameters []Parameter

// Get returns the raw text of a collected parameter
func (p Parameters) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Int returns a collected parameter parsed as an integer
func (p Parameters) Int(name string) (int, error) {
	value, ok := p.Get(name)
	if !ok {
		return 0, MissingArgument(name)
	}
	return ParseInteger(value)
}

// With returns a copy with name set to value
func (p Parameters) With(name, value string) Parameters {
	next := slices.Clone(p)
	for i := range next {
		if next[i].Name == name {
			next[i].Value = value
			return next
		}
	}
	return append(next, Parameter{Name: name, Value: value})
}

// Instruction is one invocation of a built-in, in progress or complete
type Instruction struct {
	ID                  int
	Definition          *FunctionDefinition
	CollectedParameters Parameters
	IsComplete          bool

	// Extra holds function-specific assembly state (e.g. a repeat body).
	// Token parsers must replace it, never mutate it in place.
	Extra any
}

// NewInstruction creates an instruction for def seeded by def.Initial
func NewInstruction(id int, def *FunctionDefinition) Instruction {
	in := Instruction{
		ID:                  id,
		Definition:          def,
		CollectedParameters: Parameters{},
	}
	if def.Initial != nil {
		in = def.Initial(in)
	}
	return in
}

// Name returns the primary name of the instruction's function
func (in Instruction) Name() string {
	if in.Definition == nil {
		return ""
	}
	return in.Definition.Name()
}

// NextParameter returns the name of the next unfilled positional parameter
func (in Instruction) NextParameter() (string, bool) {
	if in.Definition == nil || len(in.CollectedParameters) >= len(in.Definition.Parameters) {
		return "", false
	}
	return in.Definition.Parameters[len(in.CollectedParameters)], true
}
