// File: entry.go
// Title: Log Entry Structure
// Description: Defines the log entry and the Fields map used for structured
//              key-value context.
// Author: msto63
// Version: v0.1.0
// Created: 2025-01-24
// Modified: 2025-01-24

package log

import (
	"time"
)

// Entry represents a single log entry with all its metadata
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	Fields    Fields
	Error     error
}

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// Field creates a single field for logging
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an error field
func Err(err error) Fields {
	return Fields{"error": err}
}

// Merge returns a new Fields with the entries of both maps; other wins on conflict
func (f Fields) Merge(other Fields) Fields {
	result := f.Clone()
	if result == nil {
		result = make(Fields, len(other))
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Clone returns a shallow copy of the fields
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	result := make(Fields, len(f))
	for k, v := range f {
		result[k] = v
	}
	return result
}

// NewEntry creates a new log entry with the given level and message
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
