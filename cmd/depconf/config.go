// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/depconf/depconf/internal/config"
	"github.com/depconf/depconf/internal/report"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `depconf config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage depconf configuration",
		Long: `Manage depconf configuration.

Configuration is read from the first of:
  - the file given with --config
  - Linux: ~/.config/depconf/config.cue
    macOS: ~/Library/Application Support/depconf/config.cue
    Windows: %APPDATA%\depconf\config.cue
  - ./depconf.cue

DEPCONF_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, app, rootFlags)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, rootFlags *rootFlagValues) error {
	cfg, path, err := config.LoadWithPath(cmd.Context(), config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return app.fail(cmd, err, rootFlags.verbose)
	}

	source := report.SubtitleStyle.Render("(using defaults)")
	if path != "" {
		source = report.PathStyle.Render(path)
	}
	fmt.Fprintf(app.stdout, "// %s %s\n", "config file:", source)
	fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	return nil
}

func initConfig(cmd *cobra.Command, app *App, rootFlags *rootFlagValues) error {
	path, err := config.CreateDefaultConfig()
	if err != nil {
		return app.fail(cmd, err, rootFlags.verbose)
	}
	fmt.Fprintf(app.stdout, "%s %s\n", report.SuccessStyle.Render("Configuration file:"), report.PathStyle.Render(path))
	return nil
}
