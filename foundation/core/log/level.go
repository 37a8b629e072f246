// File: level.go
// Title: Log Level Definitions
// Description: Log levels with their long and short names, parsing from
//              configuration strings and filtering against a minimum level.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial level set
// - 2026-10-14 v0.2.0: Name table, audit level removed

package log

import (
	"strings"
)

// Level orders log entries by importance
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// DefaultLevel is used by loggers created without a level
const DefaultLevel = LevelInfo

// levelNames is indexed by Level: long name, short name, extra aliases
var levelNames = [...]struct {
	long    string
	short   string
	aliases []string
}{
	LevelTrace: {"trace", "TRC", nil},
	LevelDebug: {"debug", "DBG", nil},
	LevelInfo:  {"info", "INF", []string{"information"}},
	LevelWarn:  {"warn", "WRN", []string{"warning"}},
	LevelError: {"error", "ERR", nil},
	LevelFatal: {"fatal", "FTL", nil},
}

func (l Level) known() bool {
	return l >= LevelTrace && int(l) < len(levelNames)
}

// String returns the lower-case level name used in JSON output and config
func (l Level) String() string {
	if !l.known() {
		return "unknown"
	}
	return levelNames[l].long
}

// ShortString returns the three-letter tag of the text formatter
func (l Level) ShortString() string {
	if !l.known() {
		return "UNK"
	}
	return levelNames[l].short
}

// ShouldLog reports whether l passes the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel accepts long names, short tags and a few aliases, ignoring
// case. Unknown input yields DefaultLevel and a *ParseError.
func ParseLevel(level string) (Level, error) {
	input := strings.ToLower(strings.TrimSpace(level))
	for l, names := range levelNames {
		if input == names.long || input == strings.ToLower(names.short) {
			return Level(l), nil
		}
		for _, alias := range names.aliases {
			if input == alias {
				return Level(l), nil
			}
		}
	}
	return DefaultLevel, &ParseError{Input: level, Type: "level"}
}

// ParseError reports an unrecognized configuration value
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}
