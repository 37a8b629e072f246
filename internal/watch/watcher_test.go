package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwlog "github.com/msto63/mlogo/foundation/core/log"
)

func TestNew_Validation(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "square.logo")
	if err := os.WriteFile(script, []byte("fd 10"), 0o644); err != nil {
		t.Fatal(err)
	}
	noop := func(context.Context, string) {}

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid", Options{Path: script, OnChange: noop}, false},
		{"missing callback", Options{Path: script}, true},
		{"missing file", Options{Path: filepath.Join(dir, "nope.logo"), OnChange: noop}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && w.debounce != DefaultDebounce {
				t.Errorf("debounce = %v, want default", w.debounce)
			}
		})
	}
}

func TestWatcher_RunsOnStartAndChange(t *testing.T) {
	script := filepath.Join(t.TempDir(), "square.logo")
	if err := os.WriteFile(script, []byte("fd 10"), 0o644); err != nil {
		t.Fatal(err)
	}

	runs := make(chan string, 8)
	w, err := New(Options{
		Path:     script,
		Debounce: 20 * time.Millisecond,
		Logger:   mdwlog.Discard(),
		OnChange: func(_ context.Context, text string) { runs <- text },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	expect := func(want string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case got := <-runs:
				if got == want {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for run of %q", want)
			}
		}
	}

	expect("fd 10")

	if err := os.WriteFile(script, []byte("fd 20"), 0o644); err != nil {
		t.Fatal(err)
	}
	expect("fd 20")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
