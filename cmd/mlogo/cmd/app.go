package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/msto63/mlogo/foundation/turtle/language"
	"github.com/msto63/mlogo/internal/engine"
	"github.com/msto63/mlogo/internal/history"
	"github.com/spf13/cobra"
)

// openHistory opens the configured history database
func openHistory() (*history.SQLiteStore, error) {
	store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: cfg.History.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// newSession builds a session with the configured start turtle. A nil store
// disables recording.
func newSession(ctx context.Context, store history.Store, name string) (*engine.Session, error) {
	opts := engine.Options{
		Logger:      logger,
		SessionName: name,
		Start: language.Turtle{
			X:     cfg.Turtle.StartX,
			Y:     cfg.Turtle.StartY,
			Angle: cfg.Turtle.StartAngle,
		},
		PenUp: !cfg.Turtle.PenIsDown(),
		Store: store,
	}
	return engine.New(ctx, opts)
}

// readScript reads the script named by args, or stdin for none or "-"
func readScript(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), args[0], nil
}
