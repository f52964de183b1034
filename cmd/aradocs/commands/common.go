// Package commands implements the aradocs subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sage-code/ara-docs/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"aradocs.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text or json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Check the documentation and write the configured outputs"`
	Check   CheckCmd   `cmd:"" help:"Validate the site configuration, sidebar and pages"`
	Show    ShowCmd    `cmd:"" help:"Print the resolved sidebar"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild whenever the content or configuration changes"`
	Presets PresetsCmd `cmd:"" help:"List the built-in site presets"`

	// stdout is replaced in tests.
	stdout io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(os.Stderr, level, config.NormalizeLogFormat(c.LogFormat)))
	return nil
}

// Stdout returns where command output is written.
func (c *CLI) Stdout() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}
	return c.stdout
}

// ExitError carries an exit code for results that were already reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads the configuration file (or the defaults when it does not
// exist) and applies its logging settings. Flags win over the file.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level.SlogLevel()
	if root.Verbose {
		level = slog.LevelDebug
	}
	format := cfg.Logging.Format
	if root.LogFormat != "" {
		format = config.NormalizeLogFormat(root.LogFormat)
	}
	slog.SetDefault(newLogger(os.Stderr, level, format))
	return cfg, nil
}
