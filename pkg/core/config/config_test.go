package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/mlogo/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{250 * time.Millisecond}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "250ms" {
		t.Errorf("MarshalText() = %v, want 250ms", string(result))
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.Name != "mLOGO" {
		t.Errorf("General.Name = %v, want mLOGO", cfg.General.Name)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if cfg.History.Path != filepath.Join("./data", "history.db") {
		t.Errorf("History.Path = %v", cfg.History.Path)
	}
	if cfg.REPL.Prompt != "> " {
		t.Errorf("REPL.Prompt = %q, want \"> \"", cfg.REPL.Prompt)
	}
	if cfg.REPL.CanvasWidth != 80 || cfg.REPL.CanvasHeight != 24 {
		t.Errorf("canvas = %dx%d, want 80x24", cfg.REPL.CanvasWidth, cfg.REPL.CanvasHeight)
	}
	if cfg.Watch.Debounce.Duration != 100*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 100ms", cfg.Watch.Debounce.Duration)
	}
	if !cfg.Turtle.PenIsDown() {
		t.Error("pen should default to down")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.General.DataDir != "./data" {
		t.Errorf("General.DataDir = %v, want ./data", cfg.General.DataDir)
	}
	if cfg.History.Enabled {
		t.Error("history should be disabled by default")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if !mdwerror.HasCode(err, mdwerror.CodeMissingConfig) {
		t.Errorf("Load() error = %v, want missing config", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[general]
name = "TestLOGO"
log_level = "debug"

[turtle]
start_x = 10
start_angle = 90
pen_down = false

[history]
enabled = true
path = "` + filepath.ToSlash(filepath.Join(tmpDir, "h.db")) + `"

[repl]
canvas_width = 120

[watch]
debounce = "250ms"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "TestLOGO" {
		t.Errorf("General.Name = %v, want TestLOGO", cfg.General.Name)
	}
	if cfg.Turtle.StartX != 10 || cfg.Turtle.StartAngle != 90 {
		t.Errorf("Turtle = %+v", cfg.Turtle)
	}
	if cfg.Turtle.PenIsDown() {
		t.Error("explicit pen_down = false was ignored")
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if cfg.REPL.CanvasWidth != 120 {
		t.Errorf("REPL.CanvasWidth = %v, want 120", cfg.REPL.CanvasWidth)
	}

	// defaults for missing values
	if cfg.REPL.CanvasHeight != 24 {
		t.Errorf("REPL.CanvasHeight = %v, want 24 (default)", cfg.REPL.CanvasHeight)
	}
	if cfg.Watch.Debounce.Duration != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce.Duration)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Malformed TOML", "[general\nname = 1"},
		{"Negative canvas", "[repl]\ncanvas_width = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			_, err := Load(path)
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
				t.Errorf("Load() error = %v, want invalid config", err)
			}
		})
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("MLOGO_TEST_DIR", "/tmp/mlogo")

	cfg := &Config{
		General: GeneralConfig{DataDir: "$MLOGO_TEST_DIR/data"},
		History: HistoryConfig{Path: "${MLOGO_TEST_DIR}/history.db"},
	}

	cfg.expandEnvVars()

	if cfg.General.DataDir != "/tmp/mlogo/data" {
		t.Errorf("DataDir = %v", cfg.General.DataDir)
	}
	if cfg.History.Path != "/tmp/mlogo/history.db" {
		t.Errorf("History.Path = %v", cfg.History.Path)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[general]\nname = \"FromEnv\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("MLOGO_CONFIG", path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "FromEnv" {
		t.Errorf("General.Name = %v, want FromEnv", cfg.General.Name)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv("MLOGO_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "mLOGO" {
		t.Errorf("expected defaults, got %+v", cfg.General)
	}
}
