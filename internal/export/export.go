// Package export writes a turtle run's draw log in machine-readable or
// printable form.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	mdwerror "github.com/msto63/mlogo/foundation/core/error"
	"github.com/msto63/mlogo/foundation/turtle/language"
	"gopkg.in/yaml.v3"
)

// Format selects an encoder
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
	FormatSVG  Format = "svg"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatSVG}
}

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", mdwerror.Newf("unknown output format %q", name).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("export.ParseFormat")
}

// Document is the exported result of a run
type Document struct {
	Turtle       language.Turtle        `json:"turtle" yaml:"turtle"`
	PenDown      bool                   `json:"penDown" yaml:"penDown"`
	DrawCommands []language.DrawCommand `json:"drawCommands" yaml:"drawCommands"`
	Error        *language.ErrorInfo    `json:"error,omitempty" yaml:"error,omitempty"`
}

// FromState builds a document from an interpreter state
func FromState(s language.State) Document {
	commands := s.DrawCommands
	if commands == nil {
		commands = []language.DrawCommand{}
	}
	return Document{
		Turtle:       s.Turtle,
		PenDown:      s.Pen.Down,
		DrawCommands: commands,
		Error:        s.Error,
	}
}

// Write encodes doc to w in the given format
func Write(w io.Writer, doc Document, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	case FormatText:
		err = writeText(w, doc.DrawCommands)
	case FormatSVG:
		err = writeSVG(w, doc.DrawCommands)
	default:
		return mdwerror.Newf("unknown output format %q", format).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("export.Write")
	}

	if err != nil {
		return mdwerror.Wrap(err, "failed to write "+string(format)+" output").
			WithCode(mdwerror.CodeInternal).
			WithOperation("export.Write")
	}
	return nil
}

// FormatCommand renders one draw command as a text line
func FormatCommand(cmd language.DrawCommand) string {
	switch cmd.Kind {
	case language.DrawLine:
		return fmt.Sprintf("%-11s #%d (%s, %s) -> (%s, %s)", cmd.Kind, cmd.ID,
			number(cmd.X1), number(cmd.Y1), number(cmd.X2), number(cmd.Y2))
	case language.Rotate:
		return fmt.Sprintf("%-11s #%d %s -> %s", cmd.Kind, cmd.ID,
			number(cmd.PreviousAngle), number(cmd.NewAngle))
	default:
		return fmt.Sprintf("%-11s #%d", cmd.Kind, cmd.ID)
	}
}

func writeText(w io.Writer, commands []language.DrawCommand) error {
	for _, cmd := range commands {
		if _, err := fmt.Fprintln(w, FormatCommand(cmd)); err != nil {
			return err
		}
	}
	return nil
}

// svgMargin pads the drawing inside its view box
const svgMargin = 10.0

// writeSVG draws the lines after the last clearScreen
func writeSVG(w io.Writer, commands []language.DrawCommand) error {
	var lines []language.DrawCommand
	for _, cmd := range commands {
		switch cmd.Kind {
		case language.ClearScreen:
			lines = lines[:0]
		case language.DrawLine:
			lines = append(lines, cmd)
		}
	}

	minX, minY, maxX, maxY := 0.0, 0.0, 0.0, 0.0
	for _, l := range lines {
		minX = math.Min(minX, math.Min(l.X1, l.X2))
		minY = math.Min(minY, math.Min(l.Y1, l.Y2))
		maxX = math.Max(maxX, math.Max(l.X1, l.X2))
		maxY = math.Max(maxY, math.Max(l.Y1, l.Y2))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%s %s %s %s\">\n",
		number(minX-svgMargin), number(minY-svgMargin),
		number(maxX-minX+2*svgMargin), number(maxY-minY+2*svgMargin))
	for _, l := range lines {
		fmt.Fprintf(&b, "  <line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" stroke=\"black\" data-id=\"%d\"/>\n",
			number(l.X1), number(l.Y1), number(l.X2), number(l.Y2), l.ID)
	}
	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// number prints a coordinate with at most two decimals
func number(v float64) string {
	if math.Abs(v) < 0.005 {
		return "0"
	}
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
