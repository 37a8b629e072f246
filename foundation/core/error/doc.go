// Package error provides structured error handling for the mLOGO interpreter.
//
// Package: error
// Title: mLOGO Error Handling Framework
// Description: Structured errors with codes, severity and free-form details.
//              The turtle core raises its two failure kinds (unknown function,
//              invalid argument) as *Error values carrying a "position"
//              detail, so callers can turn them into positioned diagnostics
//              without any panics crossing the package boundary.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-14 v0.2.0: Turtle codes, position details, errors.As based lookups
//
// Usage:
//
//	import mdwerror "github.com/msto63/mlogo/foundation/core/error"
//
//	err := mdwerror.New("Unknown function: spin").
//		WithCode(mdwerror.CodeUnknownFunction).
//		WithPosition(0, 3)
//
//	if mdwerror.HasCode(err, mdwerror.CodeUnknownFunction) {
//		start, end, _ := mdwerror.PositionOf(err)
//		...
//	}
package error
