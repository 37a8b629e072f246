// File: parser.go
// Title: Turtle Script Parser
// Description: Whole-script entry points. ParseTokens folds a token
//              sequence through statement assembly and turns the first
//              failure into error data on the returned state. ParseStatement
//              tokenizes a submission, continuing line numbering from the
//              state, and discards the result if it ends mid-statement.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial incremental parser

package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	mdwlog "github.com/msto63/mlogo/foundation/core/log"
	"github.com/msto63/mlogo/foundation/turtle/language"
	"github.com/msto63/mlogo/foundation/turtle/token"
)

// ParseTokens feeds tokens through statement assembly. The returned state
// has its previous error cleared; a new failure stops the fold and yields
// the last good state with no instruction in progress and Error set.
// The result may end with an instruction still assembling.
func ParseTokens(tokens []token.Token, s language.State) language.State {
	current := s
	current.Error = nil

	for i, tok := range tokens {
		next, err := ParseAndSaveStatement(current, tok)
		if err != nil {
			current.CurrentInstruction = nil
			current.Error = language.ErrorInfoFrom(err, token.LineText(tokens, tok.LineNumber))
			current.Error.Column = errorColumn(tokens, i, current.Error.Token)
			return current
		}
		current = next
	}

	return current
}

// errorColumn places the failing word on its line. A repeat body fails on
// the closing bracket but names the body word, so the nearest earlier
// token with that text on the same line wins.
func errorColumn(tokens []token.Token, i int, word string) int {
	if word != "" {
		for j := i; j >= 0 && tokens[j].LineNumber == tokens[i].LineNumber; j-- {
			if strings.EqualFold(tokens[j].Text, word) {
				return token.Column(tokens, j)
			}
		}
	}
	return token.Column(tokens, i)
}

// ParseStatement parses one submission against s. If the submission leaves
// a statement incomplete, s is returned unchanged so the caller can
// resubmit a longer text.
func ParseStatement(text string, s language.State) language.State {
	result, _ := Parse(text, s)
	return result
}

// Parse is ParseStatement that also reports whether the submission ended on
// a statement boundary. Failed submissions count as complete.
func Parse(text string, s language.State) (language.State, bool) {
	tokens := token.Tokenize(text, token.NextLine(s.ParsedTokens))
	result := ParseTokens(tokens, s)
	if result.CurrentInstruction != nil {
		return s, false
	}
	return result, true
}

// Parser wraps ParseStatement with input limits and logging
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
}

// New creates a parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = 64 * 1024
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "turtle-parser"),
		options: opts,
	}
}

// ParseStatement parses a submission; oversized input is reported as a
// script error without being tokenized.
func (p *Parser) ParseStatement(text string, s language.State) language.State {
	result, _ := p.Parse(text, s)
	return result
}

// Parse is the logging counterpart of the package-level Parse
func (p *Parser) Parse(text string, s language.State) (language.State, bool) {
	if len(text) > p.options.MaxInputLength {
		s.Error = &language.ErrorInfo{
			Description: fmt.Sprintf("Input exceeds maximum length: %d > %d", len(text), p.options.MaxInputLength),
			Position:    language.Position{Start: 0, End: utf8.RuneCountInString(text) - 1},
		}
		p.logger.Warn("Rejected oversized submission", mdwlog.Fields{"length": len(text)})
		return s, true
	}

	p.logger.Trace("Parsing submission", mdwlog.Fields{
		"text":       text,
		"start_line": token.NextLine(s.ParsedTokens),
	})
	result, complete := Parse(text, s)

	switch {
	case result.Error != nil:
		p.logger.Debug("Submission failed", mdwlog.Fields{
			"error": result.Error.Description,
			"line":  result.Error.Line,
		})
	case !complete:
		p.logger.Debug("Submission incomplete, state unchanged")
	default:
		p.logger.Debug("Submission parsed", mdwlog.Fields{
			"statements":    len(result.ParsedStatements) - len(s.ParsedStatements),
			"draw_commands": len(result.DrawCommands) - len(s.DrawCommands),
		})
	}

	return result, complete
}
