package cmd

import (
	"fmt"
	"runtime"

	"github.com/msto63/mlogo/pkg/core/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mLOGO v%s\n", version.Platform)
		fmt.Fprintf(out, "  Language:   %s\n", version.ComponentVersion("language"))
		fmt.Fprintf(out, "  History:    %s\n", version.ComponentVersion("history"))
		fmt.Fprintf(out, "  REPL:       %s\n", version.ComponentVersion("repl"))
		fmt.Fprintf(out, "  Git Commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
