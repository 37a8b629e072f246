// File: token.go
// Title: Turtle Script Tokenizer
// Description: Splits raw script text into an ordered sequence of typed
//              tokens (token / whitespace) tagged with their 1-based source
//              line. Tokenization never fails; concatenating the texts of the
//              produced tokens yields the input unchanged.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package token

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Type distinguishes command words and arguments from whitespace
type Type string

const (
	TypeToken      Type = "token"
	TypeWhitespace Type = "whitespace"
)

// Token is one lexical unit of a script
type Token struct {
	Type       Type   `json:"type" yaml:"type"`
	Text       string `json:"text" yaml:"text"`
	LineNumber int    `json:"lineNumber" yaml:"lineNumber"`

	// InstructionID is stamped by the parser once the token has been routed
	// to an instruction; nil for whitespace between statements.
	InstructionID *int `json:"instructionId,omitempty" yaml:"instructionId,omitempty"`
}

// IsWhitespace reports whether the token is a whitespace token
func (t Token) IsWhitespace() bool {
	return t.Type == TypeWhitespace
}

// IsNewline reports whether the token is the single-character newline token
func (t Token) IsNewline() bool {
	return t.Type == TypeWhitespace && t.Text == "\n"
}

// Stamped returns a copy of the token tagged with an instruction id
func (t Token) Stamped(id int) Token {
	t.InstructionID = &id
	return t
}

// Brackets are emitted as standalone tokens so bodies like "[fd 10]" split
// without surrounding spaces.
func isBracket(r rune) bool {
	return r == '[' || r == ']'
}

// Lex lazily tokenizes text. startLine is the line number of the first
// token; it increments immediately after every newline token.
func Lex(text string, startLine int) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		line := startLine
		pos := 0
		for pos < len(text) {
			r, size := utf8.DecodeRuneInString(text[pos:])
			start := pos

			switch {
			case r == '\n':
				pos += size
				if !yield(Token{Type: TypeWhitespace, Text: "\n", LineNumber: line}) {
					return
				}
				line++
				continue

			case unicode.IsSpace(r):
				for pos < len(text) {
					r, size = utf8.DecodeRuneInString(text[pos:])
					if r == '\n' || !unicode.IsSpace(r) {
						break
					}
					pos += size
				}
				if !yield(Token{Type: TypeWhitespace, Text: text[start:pos], LineNumber: line}) {
					return
				}

			case isBracket(r):
				pos += size
				if !yield(Token{Type: TypeToken, Text: text[start:pos], LineNumber: line}) {
					return
				}

			default:
				for pos < len(text) {
					r, size = utf8.DecodeRuneInString(text[pos:])
					if unicode.IsSpace(r) || isBracket(r) {
						break
					}
					pos += size
				}
				if !yield(Token{Type: TypeToken, Text: text[start:pos], LineNumber: line}) {
					return
				}
			}
		}
	}
}

// Tokenize returns all tokens of text as a slice
func Tokenize(text string, startLine int) []Token {
	var tokens []Token
	for tok := range Lex(text, startLine) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Join concatenates token texts, reproducing the original source
func Join(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// LineText reconstructs the raw text of one source line, without its
// terminating newline.
func LineText(tokens []Token, line int) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.LineNumber == line && !tok.IsNewline() {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

// Column returns the rune offset of tokens[i] within its source line
func Column(tokens []Token, i int) int {
	column := 0
	for _, tok := range tokens[:i] {
		if tok.LineNumber == tokens[i].LineNumber && !tok.IsNewline() {
			column += utf8.RuneCountInString(tok.Text)
		}
	}
	return column
}

// NextLine returns the line number a continuation of tokens starts on: one
// past the last recorded token, or 1 for an empty history.
func NextLine(tokens []Token) int {
	if len(tokens) == 0 {
		return 1
	}
	return tokens[len(tokens)-1].LineNumber + 1
}
