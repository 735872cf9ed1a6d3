// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the tfocus CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"tfocus/internal/config"
	"tfocus/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg holds the loaded configuration for the lifetime of the process
	cfg *config.Config

	// rootCmd is the whole CLI: tfocus is a single-command tool
	rootCmd = &cobra.Command{
		Use:   "tfocus [path]",
		Short: "Interactively pick and run targeted terraform operations",
		Long: TitleStyle.Render("tfocus") + SubtitleStyle.Render(" - targeted terraform plan/apply") + `

tfocus scans a Terraform project for resource and module declarations,
lets you pick a scope (a file, a module, or a single resource) with a
fuzzy-filterable list, and runs terraform restricted to exactly that
scope via -target flags.

` + SubtitleStyle.Render("Examples:") + `
  tfocus                    Focus the current directory
  tfocus ./infrastructure   Focus a specific project directory
  tfocus -v                 Show the generated terraform command line`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFocus,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/tfocus/config.toml)")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads the config file and installs the log handler.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	cfg = loaded

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.Verbose
	}

	setupLogging(verbose)
}

// setupLogging routes slog through a charmbracelet handler. Debug tracing is
// only visible with --verbose.
func setupLogging(verbose bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	slog.SetDefault(slog.New(handler))
}

// currentConfig returns the loaded config, falling back to defaults when the
// initializer has not run (e.g. in tests).
func currentConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// include their suggestions; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
