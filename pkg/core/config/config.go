package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	mdwerror "github.com/msto63/mlogo/foundation/core/error"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Turtle  TurtleConfig  `toml:"turtle"`
	History HistoryConfig `toml:"history"`
	REPL    REPLConfig    `toml:"repl"`
	Watch   WatchConfig   `toml:"watch"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// TurtleConfig holds the starting turtle of a new session. PenDown is a
// pointer so an explicit false differs from unset.
type TurtleConfig struct {
	StartX     float64 `toml:"start_x"`
	StartY     float64 `toml:"start_y"`
	StartAngle float64 `toml:"start_angle"`
	PenDown    *bool   `toml:"pen_down"`
}

// HistoryConfig holds submission history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// REPLConfig holds interactive prompt settings
type REPLConfig struct {
	Prompt       string  `toml:"prompt"`
	CanvasWidth  int     `toml:"canvas_width"`
	CanvasHeight int     `toml:"canvas_height"`

	// Scale maps turtle units to canvas cells
	Scale float64 `toml:"scale"`
}

// WatchConfig holds script watcher settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
			WithCode(mdwerror.CodeMissingConfig).
			WithDetail("path", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from the MLOGO_CONFIG environment variable,
// falling back to the default locations and finally to Default().
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("MLOGO_CONFIG")
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// DefaultPaths lists the locations searched when MLOGO_CONFIG is unset
func DefaultPaths() []string {
	paths := []string{
		"./configs/mlogo.toml",
		"./mlogo.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mlogo", "config.toml"))
	}
	return paths
}

// Validate checks value ranges that defaults cannot repair
func (c *Config) Validate() error {
	if c.REPL.CanvasWidth < 0 || c.REPL.CanvasHeight < 0 {
		return mdwerror.New("canvas size must not be negative").
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("canvas_width", c.REPL.CanvasWidth).
			WithDetail("canvas_height", c.REPL.CanvasHeight)
	}
	if c.REPL.Scale < 0 {
		return mdwerror.New("canvas scale must not be negative").
			WithCode(mdwerror.CodeInvalidConfig)
	}
	return nil
}

// PenIsDown reports the configured starting pen state; unset means down
func (t TurtleConfig) PenIsDown() bool {
	return t.PenDown == nil || *t.PenDown
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "mLOGO"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "> "
	}
	if c.REPL.CanvasWidth == 0 {
		c.REPL.CanvasWidth = 80
	}
	if c.REPL.CanvasHeight == 0 {
		c.REPL.CanvasHeight = 24
	}
	if c.REPL.Scale == 0 {
		c.REPL.Scale = 0.25
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 100 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.History.Path = os.ExpandEnv(c.History.Path)
}
