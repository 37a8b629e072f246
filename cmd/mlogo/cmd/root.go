package cmd

import (
	"errors"
	"fmt"
	"os"

	mdwlog "github.com/msto63/mlogo/foundation/core/log"
	"github.com/msto63/mlogo/pkg/core/config"
	"github.com/msto63/mlogo/pkg/core/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	// loaded by the root pre-run hook
	cfg    *config.Config
	logger *mdwlog.Logger
)

// errReported marks a failure whose details were already printed
var errReported = errors.New("script failed")

var rootCmd = &cobra.Command{
	Use:   "mlogo",
	Short: "mLOGO - incremental turtle graphics interpreter",
	Long: `mLOGO interprets turtle graphics scripts incrementally.

Scripts are sequences of commands such as "forward 50", "right 90",
"penup" or "repeat 4 [fd 10 rt 90]". Every completed statement is
performed at once and appended to a draw log.

Commands:
  run        - run a script file and print its draw log
  repl       - interactive prompt with a live canvas
  tokens     - show how a script is tokenized
  functions  - list the available functions
  history    - inspect and replay recorded sessions`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MLOGO_CONFIG or ./mlogo.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format override (text, json)")

	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// setup loads the configuration and installs the default logger
func setup() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.General.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.General.LogFormat = logFormat
	}

	level, err := mdwlog.ParseLevel(cfg.General.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	format, err := mdwlog.ParseFormat(cfg.General.LogFormat)
	if err != nil {
		return fmt.Errorf("invalid log format: %w", err)
	}

	logger = mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
		Name:   "mlogo",
	})
	mdwlog.SetDefault(logger)
	return nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
