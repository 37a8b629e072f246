// File: error.go
// Title: Core Error Implementation
// Description: Implements the main Error type with code, severity, details and
//              an optional cause. Compatible with the standard error interface
//              and with errors.Is / errors.As through Unwrap.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2026-10-14 v0.2.0: Source positions for script diagnostics, dropped
//                      request/user metadata and stack capture

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Detail keys with a fixed meaning
const (
	DetailPositionStart = "position_start"
	DetailPositionEnd   = "position_end"
	DetailToken         = "token"
)

// Error is a coded failure with optional details and a wrapped cause
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	timestamp time.Time

	details   map[string]interface{}
	operation string
}

// New returns an Error with CodeUnknown and medium severity
func New(message string) *Error {
	return &Error{
		message:   message,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
		details:   make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with additional context. Code, severity and
// details of a wrapped *Error are carried over.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := New(message)
	wrapped.cause = err

	var mdwErr *Error
	if errors.As(err, &mdwErr) {
		wrapped.code = mdwErr.code
		wrapped.severity = mdwErr.severity
		for k, v := range mdwErr.details {
			wrapped.details[k] = v
		}
	}
	return wrapped
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the code and derives the severity unless one was set
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	if e.severity == SeverityMedium {
		e.severity = GetSeverityFromCode(code)
	}
	return e
}

// WithSeverity overrides the derived severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithDetail attaches a detail value
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithPosition records the character span of the offending word
func (e *Error) WithPosition(start, end int) *Error {
	e.details[DetailPositionStart] = start
	e.details[DetailPositionEnd] = end
	return e
}

// WithOperation names the step that failed, e.g. "parse" or "history.record"
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// Message returns the error message without the cause
func (e *Error) Message() string {
	return e.message
}

func (e *Error) Code() Code {
	return e.code
}

func (e *Error) Severity() Severity {
	return e.severity
}

func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// String renders every field on its own line, details sorted by key
func (e *Error) String() string {
	parts := []string{
		fmt.Sprintf("Error: %s", e.message),
		fmt.Sprintf("Code: %s", e.code),
		fmt.Sprintf("Severity: %s", e.severity),
	}

	if e.operation != "" {
		parts = append(parts, fmt.Sprintf("Operation: %s", e.operation))
	}

	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		detailStrs := make([]string, 0, len(keys))
		for _, k := range keys {
			detailStrs = append(detailStrs, fmt.Sprintf("%s=%v", k, e.details[k]))
		}
		parts = append(parts, fmt.Sprintf("Details: {%s}", strings.Join(detailStrs, ", ")))
	}

	if e.cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %s", e.cause.Error()))
	}

	return strings.Join(parts, "\n")
}

// MarshalJSON encodes the error as a flat object for JSON log output
func (e *Error) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{
		"message":   e.message,
		"code":      e.code,
		"severity":  e.severity.String(),
		"timestamp": e.timestamp.Format(time.RFC3339),
		"details":   e.details,
	}
	if e.operation != "" {
		data["operation"] = e.operation
	}
	if e.cause != nil {
		data["cause"] = e.cause.Error()
	}
	return json.Marshal(data)
}

// HasCode checks if an error (or anything it wraps) has a specific code
func HasCode(err error, code Code) bool {
	var mdwErr *Error
	for errors.As(err, &mdwErr) {
		if mdwErr.code == code {
			return true
		}
		err = mdwErr.cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in the chain, or CodeUnknown
func GetCode(err error) Code {
	var mdwErr *Error
	if errors.As(err, &mdwErr) {
		return mdwErr.code
	}
	return CodeUnknown
}

// PositionOf returns the position recorded with WithPosition.
func PositionOf(err error) (start, end int, ok bool) {
	var mdwErr *Error
	if !errors.As(err, &mdwErr) {
		return 0, 0, false
	}
	start, okStart := mdwErr.details[DetailPositionStart].(int)
	end, okEnd := mdwErr.details[DetailPositionEnd].(int)
	return start, end, okStart && okEnd
}

// DetailOf returns a detail value recorded on the outermost *Error in the chain
func DetailOf(err error, key string) (interface{}, bool) {
	var mdwErr *Error
	if !errors.As(err, &mdwErr) {
		return nil, false
	}
	value, ok := mdwErr.details[key]
	return value, ok
}

// MessageOf returns the message without causes appended, or err.Error() for foreign errors
func MessageOf(err error) string {
	var mdwErr *Error
	if errors.As(err, &mdwErr) {
		return mdwErr.message
	}
	return err.Error()
}
