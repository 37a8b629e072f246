// File: builtins.go
// Title: Built-in Function Table
// Description: Assembles the standard set of turtle commands in lookup
//              order.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package builtins

import (
	"github.com/msto63/mlogo/foundation/turtle/language"
)

// All returns the built-in function table. The slice is fresh on every call;
// the definitions are shared.
func All() language.FunctionTable {
	return language.FunctionTable{
		Forward,
		Backward,
		Left,
		Right,
		PenUp,
		PenDown,
		ClearScreen,
		Comment,
		Repeat,
	}
}
