package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	mdwerror "github.com/msto63/mlogo/foundation/core/error"
	"github.com/msto63/mlogo/foundation/turtle/language"
	"gopkg.in/yaml.v3"
)

func sampleDocument() Document {
	return Document{
		Turtle:  language.Turtle{X: 10, Angle: 90},
		PenDown: true,
		DrawCommands: []language.DrawCommand{
			language.Line(0, 0, 0, 10, 0),
			language.Rotation(1, 0, 90),
			language.Clear(2),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{" text ", FormatText, false},
		{"svg", FormatSVG, false},
		{"png", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
				t.Errorf("error code = %s", mdwerror.GetCode(err))
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(), FormatText); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "drawLine    #0 (0, 0) -> (10, 0)\n" +
		"rotate      #1 0 -> 90\n" +
		"clearScreen #2\n"
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDocument(), FormatJSON); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded struct {
		Turtle       language.Turtle          `json:"turtle"`
		DrawCommands []map[string]interface{} `json:"drawCommands"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if decoded.Turtle.X != 10 || decoded.Turtle.Angle != 90 {
		t.Errorf("turtle = %+v", decoded.Turtle)
	}
	if len(decoded.DrawCommands) != 3 || decoded.DrawCommands[1]["drawCommand"] != "rotate" {
		t.Fatalf("drawCommands = %+v", decoded.DrawCommands)
	}
	if _, ok := decoded.DrawCommands[1]["x1"]; ok {
		t.Error("rotate command carries line fields")
	}
	if strings.Contains(buf.String(), `"error"`) {
		t.Error("clean run exported an error field")
	}
}

func TestWrite_YAML(t *testing.T) {
	doc := sampleDocument()
	doc.Error = &language.ErrorInfo{Description: "Unknown function: jump", Line: "jump", Token: "jump", Position: language.Position{End: 3}}

	var buf bytes.Buffer
	if err := Write(&buf, doc, FormatYAML); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}

	commands, ok := decoded["drawCommands"].([]interface{})
	if !ok || len(commands) != 3 {
		t.Fatalf("drawCommands = %#v", decoded["drawCommands"])
	}
	first := commands[0].(map[string]interface{})
	if first["drawCommand"] != "drawLine" || fmt.Sprint(first["x2"]) != "10" {
		t.Errorf("first command = %#v", first)
	}

	errInfo := decoded["error"].(map[string]interface{})
	if errInfo["description"] != "Unknown function: jump" {
		t.Errorf("error = %#v", errInfo)
	}
}

func TestWrite_SVG(t *testing.T) {
	doc := Document{DrawCommands: []language.DrawCommand{
		language.Line(0, 0, 0, 10, 0),
		language.Clear(1),
		language.Line(2, 0, 0, 0, 20),
	}}

	var buf bytes.Buffer
	if err := Write(&buf, doc, FormatSVG); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `viewBox="-10 -10 20 40"`) {
		t.Errorf("unexpected view box:\n%s", out)
	}
	if strings.Count(out, "<line ") != 1 || !strings.Contains(out, `data-id="2"`) {
		t.Errorf("lines before clearScreen were kept:\n%s", out)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Document{}, Format("png"))
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Write() error = %v, want invalid input", err)
	}
}

func TestFromState(t *testing.T) {
	doc := FromState(language.NewState(nil))

	if doc.DrawCommands == nil || !doc.PenDown {
		t.Errorf("FromState() = %+v", doc)
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, FormatJSON); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"drawCommands": []`) {
		t.Errorf("empty log not encoded as a list:\n%s", buf.String())
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0"},
		{-0.001, "0"},
		{3.1, "3.1"},
		{70.710678, "70.71"},
		{-10, "-10"},
	}

	for _, tt := range tests {
		if got := number(tt.value); got != tt.expected {
			t.Errorf("number(%v) = %q, want %q", tt.value, got, tt.expected)
		}
	}
}
