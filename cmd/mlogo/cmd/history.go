package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	mdwstringx "github.com/msto63/mlogo/foundation/utils/stringx"
	"github.com/msto63/mlogo/internal/export"
	"github.com/msto63/mlogo/internal/history"
	"github.com/msto63/mlogo/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	historyLimit     int
	historyFormat    string
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and replay recorded sessions",
	Long: `Works with the submission history recorded when [history] is
enabled in the configuration.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the submissions of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyReplayCmd = &cobra.Command{
	Use:   "replay <session-id>",
	Short: "Replay the successful submissions of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryReplay,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete sessions older than a duration",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of sessions")
	historyShowCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "output format (text, json, yaml)")
	historyReplayCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "output format (text, json, yaml, svg)")
	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 30*24*time.Hour, "age of the sessions to delete")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyReplayCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.ListSessions(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No recorded sessions.")
		return nil
	}
	for _, s := range sessions {
		name := mdwstringx.PadRight(mdwstringx.Truncate(s.Name, 16, "..."), 16, ' ')
		fmt.Fprintf(out, "%s  %s  %s %d submissions\n",
			s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), name, s.Submissions)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(historyFormat)
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	submissions, err := store.Submissions(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeSubmissions(cmd.OutOrStdout(), submissions, format)
}

func writeSubmissions(out io.Writer, submissions []*history.Submission, format export.Format) error {
	switch format {
	case export.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(submissions)
	case export.FormatYAML:
		return yaml.NewEncoder(out).Encode(submissions)
	case export.FormatText:
		for _, sub := range submissions {
			fmt.Fprintf(out, "#%d %s %-10s %d draw commands\n",
				sub.ID, sub.Timestamp.Local().Format("15:04:05"), sub.Outcome, len(sub.DrawCommands))
			fmt.Fprintf(out, "    %s\n", mdwstringx.Truncate(fmt.Sprintf("%q", sub.Script), 72, "..."))
			if sub.Error != nil {
				fmt.Fprintln(out, tui.RenderError(sub.Error, "", false))
			}
		}
		return nil
	default:
		return fmt.Errorf("format %s is not supported for history", format)
	}
}

func runHistoryReplay(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(historyFormat)
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	// the replay itself is not recorded
	session, err := newSession(cmd.Context(), nil, "replay")
	if err != nil {
		return err
	}
	result, err := session.ReplayFrom(cmd.Context(), store, args[0])
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), export.FromState(result.State), format)
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(cmd.Context(), historyOlderThan)
	if err != nil {
		return err
	}
	if removed > 0 {
		if err := store.Vacuum(cmd.Context()); err != nil {
			logger.WarnWithErr("Vacuum after prune failed", err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d sessions.\n", removed)
	return nil
}
