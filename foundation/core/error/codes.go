// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes used across the interpreter,
//              the configuration layer and the history store.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-14 v0.2.0: Replaced service codes with turtle language codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Turtle language
	CodeUnknownFunction Code = "TURTLE_UNKNOWN_FUNCTION"
	CodeInvalidArgument Code = "TURTLE_INVALID_ARGUMENT"
	CodeSyntax          Code = "TURTLE_SYNTAX"
	CodeExecution       Code = "TURTLE_EXECUTION"

	// Storage
	CodeDatabaseError    Code = "DATABASE_ERROR"
	CodeConnectionFailed Code = "CONNECTION_FAILED"

	// Configuration and environment
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeMissingConfig    Code = "MISSING_CONFIG"
	CodeInvalidConfig    Code = "INVALID_CONFIG"
	CodeEnvironmentError Code = "ENVIRONMENT_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeUnknownFunction, CodeInvalidArgument, CodeSyntax, CodeExecution,
		CodeDatabaseError, CodeConnectionFailed,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeUnknownFunction, CodeInvalidArgument, CodeSyntax, CodeExecution:
		return "language"
	case CodeDatabaseError, CodeConnectionFailed:
		return "database"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError:
		return "configuration"
	default:
		return "generic"
	}
}

// GetSeverityFromCode returns the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeUnknownFunction, CodeInvalidArgument, CodeSyntax, CodeInvalidInput:
		return SeverityLow
	case CodeDatabaseError, CodeConnectionFailed, CodeInternal:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
