// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. Script errors are low
//              severity (the user fixes the text and resubmits), storage
//              failures are high.
// Author: msto63
// Version: v0.1.0
// Created: 2025-01-24
// Modified: 2025-01-24

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a recoverable user error such as a bad script
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error, e.g. the history database is unusable
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
