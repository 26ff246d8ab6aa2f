// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/depconf/depconf/internal/buildvars"
	"github.com/depconf/depconf/internal/catalog"
	"github.com/depconf/depconf/internal/config"
	"github.com/depconf/depconf/internal/envctx"
	"github.com/depconf/depconf/internal/pkginstall"
	"github.com/depconf/depconf/internal/report"

	"github.com/spf13/cobra"
)

func newPackagesCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List known packages",
		Long: `List the built-in packages and those declared in configuration,
with whether each is enabled and required, and the outcome of the last
configure run when its record exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackages(cmd, app, rootFlags)
		},
	}
}

func runPackages(cmd *cobra.Command, app *App, rootFlags *rootFlagValues) error {
	cfg, err := app.loadConfig(cmd.Context(), rootFlags)
	if err != nil {
		return app.fail(cmd, err, rootFlags.verbose)
	}
	env, err := envctx.New(cfg)
	if err != nil {
		return app.fail(cmd, err, rootFlags.verbose)
	}

	_, recordPath := outputPaths(env.RootDir(), env.ArchTag(), cfg.Output)
	last, err := lastRun(recordPath)
	if err != nil {
		// A broken record must not hide the catalog.
		report.NewLogger(app.stderr, rootFlags.verbose).Warn("ignoring run record", "path", recordPath, "err", err)
	}

	listPackages(app.stdout, cfg, catalog.Resolve(cfg), last)
	return nil
}

// lastRun indexes the package outcomes of the record at path by name.
// A missing record yields an empty index.
func lastRun(path string) (map[string]buildvars.PackageRecord, error) {
	rec, err := buildvars.ReadRecord(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[string]buildvars.PackageRecord, len(rec.Packages))
	for _, pr := range rec.Packages {
		out[pr.Name] = pr
	}
	return out, nil
}

func listPackages(w io.Writer, cfg *config.Config, pkgs []*pkginstall.Package, last map[string]buildvars.PackageRecord) {
	fmt.Fprintln(w, report.TitleStyle.Render("Packages"))
	for _, pkg := range pkgs {
		opts := cfg.Package(pkg.Name)

		var flags []string
		if opts.Enabled {
			flags = append(flags, report.SuccessStyle.Render("enabled"))
		} else {
			flags = append(flags, report.SubtitleStyle.Render("disabled"))
		}
		if pkg.Required {
			flags = append(flags, report.WarningStyle.Render("required"))
		}

		fmt.Fprintf(w, "  %-12s %s\n", pkg.Name, strings.Join(flags, ", "))
		fmt.Fprintf(w, "    %s %s (%s)\n", report.SubtitleStyle.Render("artifact:"), pkg.Artifact, pkg.Language)
		if opts.Dir != "" {
			fmt.Fprintf(w, "    %s %s\n", report.SubtitleStyle.Render("dir:"), report.PathStyle.Render(opts.Dir))
		}
		for _, url := range pkg.Download {
			fmt.Fprintf(w, "    %s %s\n", report.SubtitleStyle.Render("download:"), report.PathStyle.Render(url))
		}
		if pr, ok := last[pkg.Name]; ok {
			detail := pr.Artifact
			if detail == "" {
				detail = pr.Reason
			}
			fmt.Fprintf(w, "    %s %s %s\n", report.SubtitleStyle.Render("last run:"), pr.State, detail)
		}
	}
}
