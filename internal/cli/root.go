// Package cli provides the Cobra command structure for revu.
package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cornish/revu/config"
	"github.com/cornish/revu/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	debug      bool
	configPath string
	color      string
	logFile    string
}

// NewRootCommand creates the root revu command with all subcommands.
// Without a subcommand it behaves like "open".
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "revu [dir] [route]",
		Short: "A terminal viewer for reviewing browser extension versions",
		Long: `revu shows the source of an extension version next to its linter
messages and a clickable overview of the file, and switches between versions
of the extension under review.

A review directory holds a review.toml (or review.yaml) manifest listing the
versions, their source trees and their validation reports.`,
		Args: cobra.MaximumNArgs(2),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "",
		"write logs to this file while the viewer owns the terminal")

	// Add subcommands.
	rootCmd.AddCommand(newOpenCommand(opts))
	rootCmd.AddCommand(newLintCommand(opts))
	rootCmd.AddCommand(newOverviewCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadConfig reads .env, the config file and the environment overrides.
// A config file that fails to parse is reported in loadErr while cfg still
// holds usable defaults.
func (o *globalOptions) loadConfig(logger *log.Logger) (cfg *config.Config, loadErr error) {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", logging.FieldError, err)
	}

	if o.configPath != "" {
		cfg, loadErr = config.LoadFrom(o.configPath)
	} else {
		cfg, loadErr = config.Load()
	}

	var cle *config.ConfigLoadError
	if loadErr != nil && !errors.As(loadErr, &cle) {
		return cfg, loadErr
	}

	cfg.ApplyEnv()
	if o.debug {
		cfg.LogLevel = "debug"
	}
	return cfg, loadErr
}

// viewerLogger returns the logger used while the TUI runs: the log file
// when one is given, otherwise nothing.
func (o *globalOptions) viewerLogger(level string) (*log.Logger, io.Closer, error) {
	if o.logFile == "" {
		return logging.NewWithWriter(io.Discard, level), io.NopCloser(nil), nil
	}
	return logging.OpenFile(o.logFile, level)
}
