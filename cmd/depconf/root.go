// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for depconf.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/depconf/depconf/internal/report"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the depconf command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "depconf",
		Short: "Configure optional external packages for a build",
		Long: report.TitleStyle.Render("depconf") + report.SubtitleStyle.Render(" - configure optional external packages for a build") + `

depconf decides whether each optional helper package takes part in a build,
reuses an installation that is already in place, or compiles it from an
extracted source tree and installs it under <root>/<arch>. The resulting
paths are exported as build variables for the rest of the build.

` + report.SubtitleStyle.Render("Examples:") + `
  depconf configure --with lgrind        Build lgrind if it is not installed
  depconf configure --with-batch         Soft-fail optional packages
  depconf packages                       List known packages
  depconf config show                    Show current configuration`,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/depconf/config.cue)")

	rootCmd.AddCommand(newConfigureCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))
	rootCmd.AddCommand(newPackagesCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, report.ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(handleError),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// handleError prints errors the command handlers did not render themselves.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
