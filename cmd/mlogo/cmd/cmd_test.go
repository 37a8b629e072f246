package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/mlogo/internal/history"
)

// writeConfig creates a config file with history kept inside the test dir
func writeConfig(t *testing.T, historyEnabled bool) (configPath, historyPath string) {
	t.Helper()

	dir := t.TempDir()
	historyPath = filepath.Join(dir, "history.db")
	configPath = filepath.Join(dir, "mlogo.toml")

	content := fmt.Sprintf(`[general]
data_dir = %q
log_level = "error"

[history]
enabled = %v
path = %q
`, dir, historyEnabled, historyPath)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath, historyPath
}

// execute runs the CLI with fresh flag values
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgFile, logLevel, logFormat = "", "", ""
	runFormat, runCanvas, runWatch = "text", false, false
	tokensFormat, functionsFormat, historyFormat = "text", "text", "text"
	historyLimit = 20

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRun_JSONFromStdin(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, _, err := execute(t, "repeat 4 [fd 10 rt 90]", "run", "--config", configPath, "--format", "json")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	var doc struct {
		DrawCommands []map[string]interface{} `json:"drawCommands"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(doc.DrawCommands) != 8 {
		t.Errorf("draw commands = %d, want 8", len(doc.DrawCommands))
	}
}

func TestRun_TextFromFile(t *testing.T) {
	configPath, _ := writeConfig(t, false)
	script := filepath.Join(t.TempDir(), "line.logo")
	if err := os.WriteFile(script, []byte("fd 10\nrt 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "", "run", "--config", configPath, script)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	want := "drawLine    #0 (0, 0) -> (10, 0)\nrotate      #1 0 -> 90\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestRun_ScriptError(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, stderr, err := execute(t, "fd 10\njump 5", "run", "--config", configPath)
	if !errors.Is(err, errReported) {
		t.Fatalf("run error = %v, want reported failure", err)
	}
	if !strings.Contains(stdout, "drawLine") {
		t.Errorf("draw log before the error was not printed:\n%s", stdout)
	}
	if !strings.Contains(stderr, "Error: Unknown function: jump") || !strings.Contains(stderr, "^^^^") {
		t.Errorf("stderr =\n%s", stderr)
	}
}

func TestRun_UnfinishedStatement(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, stderr, err := execute(t, "fd 10 forward", "run", "--config", configPath)
	if !errors.Is(err, errReported) {
		t.Fatalf("run error = %v, want reported failure", err)
	}
	if stdout != "" || !strings.Contains(stderr, "unfinished statement") {
		t.Errorf("stdout = %q, stderr = %q", stdout, stderr)
	}
}

func TestRun_Canvas(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, _, err := execute(t, "fd 40", "run", "--config", configPath, "--canvas")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(stdout, strings.Repeat("-", 20)+">") {
		t.Errorf("canvas does not show the line:\n%s", stdout)
	}
}

func TestRun_InvalidFlags(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	if _, _, err := execute(t, "fd 1", "run", "--config", configPath, "--format", "png"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, _, err := execute(t, "fd 1", "run", "--config", configPath, "--watch"); err == nil {
		t.Error("expected error for --watch without a file")
	}
	if _, _, err := execute(t, "", "run", "--config", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestFunctions(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, _, err := execute(t, "", "functions", "--config", configPath)
	if err != nil {
		t.Fatalf("functions error = %v", err)
	}
	for _, want := range []string{"forward <distance>", "repeat <count> <statements>", "(fd)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("functions output lacks %q:\n%s", want, stdout)
		}
	}
}

func TestFunctions_Named(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, _, err := execute(t, "", "functions", "rp", "--config", configPath)
	if err != nil {
		t.Fatalf("functions error = %v", err)
	}
	if !strings.Contains(stdout, "repeat <count> <statements>") || strings.Contains(stdout, "forward") {
		t.Errorf("functions rp =\n%s", stdout)
	}

	_, _, err = execute(t, "", "functions", "forwrd", "--config", configPath)
	if err == nil || !strings.Contains(err.Error(), `did you mean "forward"?`) {
		t.Errorf("functions forwrd error = %v", err)
	}
}

func TestTokens(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, _, err := execute(t, "fd 10\nrt", "tokens", "--config", configPath)
	if err != nil {
		t.Fatalf("tokens error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 5 {
		t.Fatalf("tokens = %d lines, want 5:\n%s", len(lines), stdout)
	}
	if !strings.Contains(lines[0], `0  "fd"`) {
		t.Errorf("first token line = %q", lines[0])
	}
	if !strings.Contains(lines[3], `-  "\n"`) {
		t.Errorf("newline between statements should be unstamped: %q", lines[3])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[4]), "2") || !strings.Contains(lines[4], `1  "rt"`) {
		t.Errorf("unfinished statement token = %q", lines[4])
	}
}

func TestTokens_Error(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, stderr, err := execute(t, "fd x", "tokens", "--config", configPath)
	if !errors.Is(err, errReported) {
		t.Fatalf("tokens error = %v, want reported failure", err)
	}
	if strings.Count(stdout, "\n") != 3 || !strings.Contains(stderr, "not an integer") {
		t.Errorf("stdout =\n%s\nstderr =\n%s", stdout, stderr)
	}
}

func TestHistory(t *testing.T) {
	configPath, historyPath := writeConfig(t, true)

	if _, _, err := execute(t, "fd 10 rt 90", "run", "--config", configPath); err != nil {
		t.Fatalf("run error = %v", err)
	}

	store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: historyPath})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	sessions, err := store.ListSessions(context.Background(), 10)
	store.Close()
	if err != nil || len(sessions) != 1 {
		t.Fatalf("ListSessions() = %v, %v", sessions, err)
	}
	id := sessions[0].ID

	stdout, _, err := execute(t, "", "history", "list", "--config", configPath)
	if err != nil || !strings.Contains(stdout, id) || !strings.Contains(stdout, "1 submissions") {
		t.Errorf("history list = %q, %v", stdout, err)
	}

	stdout, _, err = execute(t, "", "history", "show", id, "--config", configPath)
	if err != nil || !strings.Contains(stdout, "OK") || !strings.Contains(stdout, `"fd 10 rt 90"`) {
		t.Errorf("history show = %q, %v", stdout, err)
	}

	stdout, _, err = execute(t, "", "history", "replay", id, "--config", configPath)
	if err != nil || strings.Count(stdout, "\n") != 2 {
		t.Errorf("history replay = %q, %v", stdout, err)
	}

	if _, _, err := execute(t, "", "history", "show", "no-such-session", "--config", configPath); err == nil {
		t.Error("expected error for unknown session")
	}

	stdout, _, err = execute(t, "", "history", "prune", "--older-than", "1h", "--config", configPath)
	if err != nil || stdout != "Removed 0 sessions.\n" {
		t.Errorf("history prune = %q, %v", stdout, err)
	}
}

func TestVersion(t *testing.T) {
	configPath, _ := writeConfig(t, false)

	stdout, _, err := execute(t, "", "version", "--config", configPath)
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(stdout, "mLOGO v") {
		t.Errorf("version output = %q", stdout)
	}
}
