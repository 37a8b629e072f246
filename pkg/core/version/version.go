// ============================================================================
// mLOGO - Incremental turtle graphics interpreter
// ============================================================================
//
// Package:     version
// Description: Central version management for the interpreter and tools
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the mLOGO components
const (
	// Release version
	Platform = "0.1.0"

	// Component versions
	Language = "1.0.0"
	History  = "1.0.0"
	REPL     = "0.1.0"
)

// Commit is set at build time via -ldflags "-X .../version.Commit=..."
var Commit = "dev"

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "language":
		return Language
	case "history":
		return History
	case "repl":
		return REPL
	default:
		return Platform
	}
}

// String returns the version line printed by "mlogo version"
func String() string {
	return fmt.Sprintf("mlogo %s (language %s, commit %s, %s/%s)",
		Platform, Language, Commit, runtime.GOOS, runtime.GOARCH)
}
