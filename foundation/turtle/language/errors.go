// File: errors.go
// Title: Script Errors
// Description: Failure constructors raised while assembling or performing
//              instructions, and their conversion into the positioned
//              ErrorInfo attached to a returned State.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package language

import (
	"strconv"
	"strings"
	"unicode/utf8"

	mdwerror "github.com/msto63/mlogo/foundation/core/error"
)

// Position is a character span inside the offending word, end inclusive
type Position struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// ErrorInfo is the data form of a script error
type ErrorInfo struct {
	Description string   `json:"description" yaml:"description"`
	Position    Position `json:"position" yaml:"position"`
	Line        string   `json:"line" yaml:"line"`

	// Token is the offending word, when known, and Column its rune offset
	// in Line. Position is relative to Column.
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	Column int    `json:"column" yaml:"column"`
}

// wordSpan covers a whole word
func wordSpan(word string) (int, int) {
	return 0, utf8.RuneCountInString(word) - 1
}

// UnknownFunction is raised when a command word matches no definition
func UnknownFunction(name string) *mdwerror.Error {
	start, end := wordSpan(name)
	return mdwerror.New("Unknown function: " + strings.ToLower(name)).
		WithCode(mdwerror.CodeUnknownFunction).
		WithDetail(mdwerror.DetailToken, name).
		WithPosition(start, end)
}

// NotAnInteger is raised when a numeric argument does not parse
func NotAnInteger(text string) *mdwerror.Error {
	start, end := wordSpan(text)
	return mdwerror.New("Argument is not an integer").
		WithCode(mdwerror.CodeInvalidArgument).
		WithDetail(mdwerror.DetailToken, text).
		WithPosition(start, end)
}

// MissingArgument is raised when a performer reads an uncollected parameter
func MissingArgument(name string) *mdwerror.Error {
	return mdwerror.New("Missing argument: " + name).
		WithCode(mdwerror.CodeInvalidArgument)
}

// UnexpectedToken is raised when a token does not fit the command's shape
func UnexpectedToken(text, expected string) *mdwerror.Error {
	start, end := wordSpan(text)
	return mdwerror.New("Expected " + expected).
		WithCode(mdwerror.CodeSyntax).
		WithDetail(mdwerror.DetailToken, text).
		WithPosition(start, end)
}

// ParseInteger parses a base-10 integer argument
func ParseInteger(text string) (int, error) {
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, NotAnInteger(text)
	}
	return value, nil
}

// ErrorInfoFrom converts a failure into ErrorInfo for the given source line
func ErrorInfoFrom(err error, line string) *ErrorInfo {
	info := &ErrorInfo{
		Description: mdwerror.MessageOf(err),
		Line:        line,
	}
	if start, end, ok := mdwerror.PositionOf(err); ok {
		info.Position = Position{Start: start, End: end}
	}
	if tok, ok := mdwerror.DetailOf(err, mdwerror.DetailToken); ok {
		info.Token, _ = tok.(string)
	}
	return info
}
