// File: draw.go
// Title: Draw Commands
// Description: The append-only execution log consumed by renderers. Each
//              command is tagged with its kind and the id of the instruction
//              that produced it.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14

package language

import (
	"encoding/json"
)

// DrawKind tags a draw command variant
type DrawKind string

const (
	DrawLine    DrawKind = "drawLine"
	Rotate      DrawKind = "rotate"
	ClearScreen DrawKind = "clearScreen"
)

// DrawCommand is one logged geometric effect. Only the fields of its kind
// are meaningful: X1..Y2 for drawLine, PreviousAngle/NewAngle for rotate.
type DrawCommand struct {
	Kind          DrawKind
	ID            int
	X1, Y1        float64
	X2, Y2        float64
	PreviousAngle float64
	NewAngle      float64
}

// Line creates a drawLine command
func Line(id int, x1, y1, x2, y2 float64) DrawCommand {
	return DrawCommand{Kind: DrawLine, ID: id, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Rotation creates a rotate command
func Rotation(id int, previousAngle, newAngle float64) DrawCommand {
	return DrawCommand{Kind: Rotate, ID: id, PreviousAngle: previousAngle, NewAngle: newAngle}
}

// Clear creates a clearScreen command
func Clear(id int) DrawCommand {
	return DrawCommand{Kind: ClearScreen, ID: id}
}

// Fields returns the self-describing wire form of the command
func (d DrawCommand) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"drawCommand": string(d.Kind),
		"id":          d.ID,
	}
	switch d.Kind {
	case DrawLine:
		fields["x1"] = d.X1
		fields["y1"] = d.Y1
		fields["x2"] = d.X2
		fields["y2"] = d.Y2
	case Rotate:
		fields["previousAngle"] = d.PreviousAngle
		fields["newAngle"] = d.NewAngle
	}
	return fields
}

// MarshalJSON encodes only the fields of the command's kind
func (d DrawCommand) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Fields())
}

// MarshalYAML encodes only the fields of the command's kind
func (d DrawCommand) MarshalYAML() (interface{}, error) {
	return d.Fields(), nil
}
