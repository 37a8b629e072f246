// File: logger_test.go
// Title: Logger Tests
// Description: Tests logger levels, field propagation and formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("entries below minimum level were written: %q", out)
	}
	if !strings.Contains(out, "[WRN] shown") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithConfig(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	child := parent.WithField("component", "turtle-parser")

	parent.Info("from parent")
	child.Info("from child", Fields{"instructionId": 2})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	var first, second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if _, ok := first["component"]; ok {
		t.Error("parent logger picked up child field")
	}
	if second["component"] != "turtle-parser" {
		t.Errorf("component = %v", second["component"])
	}
	if second["instructionId"] != float64(2) {
		t.Errorf("instructionId = %v", second["instructionId"])
	}
	if second["message"] != "from child" || second["level"] != "info" {
		t.Errorf("unexpected entry: %v", second)
	}
}

func TestLogger_ErrorWithErr(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

	logger.ErrorWithErr("store failed", errors.New("disk full"))

	if !strings.Contains(buf.String(), `error="disk full"`) {
		t.Errorf("error not rendered: %q", buf.String())
	}
}

func TestTextFormatter_SortsFields(t *testing.T) {
	f := NewTextFormatter()
	f.DisableTimestamp = true

	entry := NewEntry(LevelInfo, "submitted")
	entry.Fields = Fields{"tokens": 3, "drawCommands": 1}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "[INF] submitted [drawCommands=1 tokens=3]\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevel_Names(t *testing.T) {
	tests := []struct {
		level Level
		long  string
		short string
	}{
		{LevelTrace, "trace", "TRC"},
		{LevelWarn, "warn", "WRN"},
		{LevelFatal, "fatal", "FTL"},
		{LevelFatal + 1, "unknown", "UNK"},
		{Level(-1), "unknown", "UNK"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.long {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.long)
		}
		if got := tt.level.ShortString(); got != tt.short {
			t.Errorf("Level(%d).ShortString() = %q, want %q", tt.level, got, tt.short)
		}
		if tt.long != "unknown" {
			if parsed, err := ParseLevel(tt.short); err != nil || parsed != tt.level {
				t.Errorf("ParseLevel(%q) = %v, %v", tt.short, parsed, err)
			}
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard() logger should not enable any level")
	}
	logger.Error("dropped")
}
