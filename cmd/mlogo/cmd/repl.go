package cmd

import (
	"fmt"
	"os"

	"github.com/msto63/mlogo/internal/history"
	"github.com/msto63/mlogo/internal/tui"
	"github.com/spf13/cobra"
)

var (
	replName   string
	replReplay string
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive prompt",
	Long: `Starts an interactive prompt with a live character canvas.

A line that ends inside a statement is kept and continued on the next
line; the prompt changes to "." while a statement is unfinished.

Navigation:
  Enter     - submit the line
  Tab       - switch between canvas, transcript and functions
  Ctrl+L    - reset the session
  Ctrl+C    - quit`,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().StringVar(&replName, "name", "repl", "session name recorded in the history")
	replCmd.Flags().StringVar(&replReplay, "replay", "", "replay a recorded session before the prompt opens")
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var store history.Store
	if cfg.History.Enabled || replReplay != "" {
		s, err := openHistory()
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	session, err := newSession(ctx, store, replName)
	if err != nil {
		return err
	}
	if replReplay != "" {
		if _, err := session.Replay(ctx, replReplay); err != nil {
			return fmt.Errorf("failed to replay session %s: %w", replReplay, err)
		}
	}

	err = tui.Run(tui.Options{
		Session:      session,
		Logger:       logger,
		Prompt:       cfg.REPL.Prompt,
		CanvasWidth:  cfg.REPL.CanvasWidth,
		CanvasHeight: cfg.REPL.CanvasHeight,
		Scale:        cfg.REPL.Scale,
		Styled:       tui.IsTerminal(os.Stdout),
	})
	if err != nil {
		return fmt.Errorf("REPL failed: %w", err)
	}
	return nil
}
