package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/msto63/mlogo/internal/canvas"
	"github.com/msto63/mlogo/internal/engine"
	"github.com/msto63/mlogo/internal/export"
	"github.com/msto63/mlogo/internal/history"
	"github.com/msto63/mlogo/internal/tui"
	"github.com/msto63/mlogo/internal/watch"
	"github.com/spf13/cobra"
)

var (
	runFormat string
	runCanvas bool
	runWatch  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file|-]",
	Short: "Run a script and print its draw log",
	Long: `Runs a turtle script in a fresh session and prints the resulting
draw log. Without a file, or with "-", the script is read from stdin.

Output formats:
  text  - one draw command per line (default)
  json  - final turtle, pen and draw log as JSON
  yaml  - the same document as YAML
  svg   - the lines drawn since the last clearscreen

With --watch the script is run again every time the file changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScriptCmd,
}

func init() {
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "text", "output format (text, json, yaml, svg)")
	runCmd.Flags().BoolVar(&runCanvas, "canvas", false, "draw the result as a character canvas")
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "re-run the script whenever the file changes")
	rootCmd.AddCommand(runCmd)
}

func runScriptCmd(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(runFormat)
	if err != nil {
		return err
	}

	var store history.Store
	if cfg.History.Enabled {
		s, err := openHistory()
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	if runWatch {
		if len(args) == 0 || args[0] == "-" {
			return fmt.Errorf("--watch needs a script file")
		}
		return watchScript(cmd, args[0], store, format)
	}

	script, name, err := readScript(cmd, args)
	if err != nil {
		return err
	}
	return runScript(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), store, name, script, format)
}

// runScript performs script in a fresh session and writes the result
func runScript(ctx context.Context, out, errOut io.Writer, store history.Store, name, script string, format export.Format) error {
	session, err := newSession(ctx, store, filepath.Base(name))
	if err != nil {
		return err
	}

	result := session.Submit(ctx, script)
	if !result.Complete {
		fmt.Fprintln(errOut, "Error: script ends inside an unfinished statement")
		return errReported
	}

	if err := writeResult(out, result, format); err != nil {
		return err
	}

	if result.Failed() {
		fmt.Fprintln(errOut, tui.RenderError(result.Error, result.Suggestion, tui.IsTerminal(errOut)))
		return errReported
	}
	return nil
}

func writeResult(out io.Writer, result *engine.Result, format export.Format) error {
	if runCanvas {
		width, height := tui.TerminalSize(out, cfg.REPL.CanvasWidth, cfg.REPL.CanvasHeight)
		width = min(width, cfg.REPL.CanvasWidth)
		height = min(height, cfg.REPL.CanvasHeight)
		state := result.State
		_, err := fmt.Fprintln(out, canvas.Render(width, height, cfg.REPL.Scale, state.DrawCommands, &state.Turtle))
		return err
	}
	return export.Write(out, export.FromState(result.State), format)
}

func watchScript(cmd *cobra.Command, path string, store history.Store, format export.Format) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	w, err := watch.New(watch.Options{
		Path:     path,
		Debounce: cfg.Watch.Debounce.Duration,
		Logger:   logger,
		OnChange: func(ctx context.Context, script string) {
			fmt.Fprintln(out, tui.RenderHelp(fmt.Sprintf("--- %s  %s", filepath.Base(path), time.Now().Format("15:04:05"))))
			if err := runScript(ctx, out, errOut, store, path, script, format); err != nil && err != errReported {
				printError(err)
			}
		},
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
