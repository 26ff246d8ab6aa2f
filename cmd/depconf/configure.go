// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/depconf/depconf/internal/buildvars"
	"github.com/depconf/depconf/internal/catalog"
	"github.com/depconf/depconf/internal/config"
	"github.com/depconf/depconf/internal/envctx"
	"github.com/depconf/depconf/internal/issue"
	"github.com/depconf/depconf/internal/pkginstall"
	"github.com/depconf/depconf/internal/report"
	"github.com/depconf/depconf/internal/shellrun"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// confDir holds generated files under <root>/<arch>.
	confDir = "conf"
	// defaultVariablesFile is the make-include file written by configure.
	defaultVariablesFile = "depconfvariables"
	// defaultRecordFile is the TOML run record written by configure.
	defaultRecordFile = "depconf-record.toml"
)

// ErrInvalidPackageDir is returned for a --package-dir value that is not name=path.
var ErrInvalidPackageDir = errors.New("invalid --package-dir value")

type (
	// configureFlags are the command-line overrides of the configure command.
	configureFlags struct {
		root         string
		arch         string
		batch        bool
		clone        string
		runner       string
		with         []string
		without      []string
		packageDirs  []string
		variablesOut string
		recordOut    string
	}

	// configureRun is everything one configure invocation produced.
	configureRun struct {
		env     *envctx.Context
		sink    *buildvars.Registry
		results []pkginstall.Result
	}
)

func newConfigureCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &configureFlags{}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure the enabled packages",
		Long: `Configure the enabled packages.

Each package goes through the same lifecycle: the enablement gate, a probe
for an existing installation under <root>/<arch>/bin, and otherwise a build
from its extracted source tree followed by an install into <root>/<arch>/bin.
Installed packages export build variables (LGRIND, LGRIND_DIR, ...).

In batch mode a failed compile of an optional package prints a warning and
the run continues; interactively it stops the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, app, rootFlags, flags)
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func runConfigure(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *configureFlags) error {
	ctx := cmd.Context()
	verbose := rootFlags.verbose

	cfg, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return app.fail(cmd, err, verbose)
	}
	if err := flags.apply(cfg, cmd.Flags()); err != nil {
		return app.fail(cmd, err, verbose)
	}
	verbose = verbose || cfg.UI.Verbose

	env, err := envctx.New(cfg)
	if err != nil {
		return app.fail(cmd, err, verbose)
	}
	runner, err := shellrun.New(cfg.Runner, shellrun.Options{Dir: env.RootDir()})
	if err != nil {
		return app.fail(cmd, err, verbose)
	}

	logger := report.NewLogger(app.stderr, verbose)
	logger.Debug("configuring", "root", env.RootDir(), "arch", env.ArchTag(), "clone", env.IsClone(), "batch", env.IsBatch(), "runner", cfg.Runner)

	run := &configureRun{env: env, sink: buildvars.NewRegistry()}
	installer := pkginstall.New(env, runner, run.sink, pkginstall.Options{
		Logger:   logger,
		Out:      app.stdout,
		Timeouts: pkginstall.TimeoutsFromConfig(cfg.Timeouts),
	})

	results, runErr := installer.ConfigureAll(ctx, catalog.Resolve(cfg))
	run.results = results
	printSummary(app.stdout, results)

	if runErr != nil {
		return app.fail(cmd, runErr, verbose)
	}

	if err := run.writeOutputs(app.stdout, logger, cfg.Output); err != nil {
		return app.fail(cmd, err, verbose)
	}
	return nil
}

// register binds the configure flags to fs.
func (f *configureFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.root, "root", "", "umbrella project directory (default is the working directory)")
	fs.StringVar(&f.arch, "arch", "", "architecture tag naming the install tree (default is <os>-<arch>)")
	fs.BoolVar(&f.batch, "with-batch", false, "non-interactive run: optional packages soft-fail")
	fs.StringVar(&f.clone, "clone", "", "development clone detection (auto, yes, no)")
	fs.StringVar(&f.runner, "runner", "", "process runner (virtual, native)")
	fs.StringArrayVar(&f.with, "with", nil, "enable a package (repeatable)")
	fs.StringArrayVar(&f.without, "without", nil, "disable a package (repeatable)")
	fs.StringArrayVar(&f.packageDirs, "package-dir", nil, "extracted source tree of a package, as name=path (repeatable)")
	fs.StringVar(&f.variablesOut, "variables-file", "", "make-include output (default is <root>/<arch>/conf/depconfvariables)")
	fs.StringVar(&f.recordOut, "record-file", "", "TOML run record (default is <root>/<arch>/conf/depconf-record.toml)")
}

// apply layers the command-line overrides on top of cfg and revalidates it.
func (f *configureFlags) apply(cfg *config.Config, fs *pflag.FlagSet) error {
	if fs.Changed("root") {
		cfg.Root = f.root
	}
	if fs.Changed("arch") {
		cfg.Arch = f.arch
	}
	if fs.Changed("with-batch") {
		cfg.Batch = f.batch
	}
	if fs.Changed("clone") {
		cfg.Clone = config.CloneMode(f.clone)
	}
	if fs.Changed("runner") {
		cfg.Runner = config.RunnerMode(f.runner)
	}
	if f.variablesOut != "" {
		cfg.Output.Variables = f.variablesOut
	}
	if f.recordOut != "" {
		cfg.Output.Record = f.recordOut
	}

	known := catalog.Resolve(cfg)
	setEnabled := func(name string, enabled bool) error {
		if _, ok := catalog.Find(known, name); !ok {
			return unknownPackage(name, known)
		}
		opts := cfg.Package(name)
		opts.Enabled = enabled
		cfg.SetPackage(name, opts)
		return nil
	}
	for _, name := range f.with {
		if err := setEnabled(name, true); err != nil {
			return err
		}
	}
	for _, name := range f.without {
		if err := setEnabled(name, false); err != nil {
			return err
		}
	}

	for _, raw := range f.packageDirs {
		name, dir, ok := strings.Cut(raw, "=")
		if !ok || name == "" || dir == "" {
			return issue.NewErrorContext().
				WithOperation("parse command-line options").
				WithResource(raw).
				WithSuggestion("Use --package-dir <name>=<path>, for example --package-dir lgrind=./lgrind-dev").
				Wrap(ErrInvalidPackageDir).
				BuildError()
		}
		if _, found := catalog.Find(known, name); !found {
			return unknownPackage(name, known)
		}
		opts := cfg.Package(name)
		opts.Dir = dir
		cfg.SetPackage(name, opts)
	}

	if err := cfg.Validate(); err != nil {
		return issue.NewErrorContext().
			WithOperation("apply command-line options").
			WithSuggestion("Valid values: --clone auto|yes|no, --runner virtual|native").
			Wrap(err).
			BuildError()
	}
	return nil
}

func unknownPackage(name string, known []*pkginstall.Package) error {
	names := make([]string, 0, len(known))
	for _, pkg := range known {
		names = append(names, pkg.Name)
	}
	return issue.NewErrorContext().
		WithOperation("select packages").
		WithResource(name).
		WithSuggestion("Known packages: " + strings.Join(names, ", ")).
		WithSuggestion("Declare new packages under 'packages' in the configuration file").
		Wrap(fmt.Errorf("unknown package %q", name)).
		BuildError()
}

// outputPaths resolves the generated file locations; empty paths land in <root>/<arch>/conf.
func outputPaths(root, arch string, out config.OutputConfig) (variables, record string) {
	base := filepath.Join(root, arch, confDir)
	variables, record = out.Variables, out.Record
	if variables == "" {
		variables = filepath.Join(base, defaultVariablesFile)
	}
	if record == "" {
		record = filepath.Join(base, defaultRecordFile)
	}
	return variables, record
}

// writeOutputs writes the make-include variables file and the TOML run record.
func (r *configureRun) writeOutputs(w io.Writer, logger *log.Logger, out config.OutputConfig) error {
	variablesPath, recordPath := outputPaths(r.env.RootDir(), r.env.ArchTag(), out)

	if err := r.sink.WriteMakefileTo(variablesPath); err != nil {
		return issue.WrapWithContext(err, "write build variables", variablesPath)
	}

	rec := r.sink.NewRecord(r.env.RootDir(), r.env.ArchTag())
	for _, res := range r.results {
		pr := buildvars.PackageRecord{
			Name:     res.Package.Name,
			State:    res.Outcome.State.String(),
			Artifact: res.Outcome.Artifact,
			Reason:   res.Outcome.Reason,
		}
		if res.Outcome.State == pkginstall.Installed && res.Outcome.Artifact != "" {
			digest, err := buildvars.Digest(res.Outcome.Artifact)
			if err != nil {
				logger.Warn("could not fingerprint artifact", "package", res.Package.Name, "artifact", res.Outcome.Artifact, "err", err)
			} else {
				pr.Digest = digest
			}
		}
		rec.Packages = append(rec.Packages, pr)
	}
	if err := buildvars.WriteRecord(recordPath, rec); err != nil {
		return issue.WrapWithContext(err, "write run record", recordPath)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", report.SubtitleStyle.Render("Wrote"), report.PathStyle.Render(variablesPath))
	fmt.Fprintf(w, "%s %s\n", report.SubtitleStyle.Render("Wrote"), report.PathStyle.Render(recordPath))
	return nil
}

// printSummary writes one line per configured package.
func printSummary(w io.Writer, results []pkginstall.Result) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintln(w, report.TitleStyle.Render("Packages"))
	for _, res := range results {
		fmt.Fprintf(w, "  %s %-12s %s\n", stateMarker(res.Outcome.State), res.Package.Name, stateDetail(res.Outcome))
	}
}

func stateMarker(s pkginstall.State) string {
	switch s {
	case pkginstall.Installed:
		return report.SuccessStyle.Render("✓")
	case pkginstall.SoftFailed:
		return report.WarningStyle.Render("!")
	case pkginstall.FatalFailed:
		return report.ErrorStyle.Render("✗")
	default:
		return report.SubtitleStyle.Render("-")
	}
}

func stateDetail(o pkginstall.Outcome) string {
	switch o.State {
	case pkginstall.Installed:
		return report.SuccessStyle.Render(o.State.String()) + " " + report.PathStyle.Render(o.Artifact)
	case pkginstall.SoftFailed:
		return report.WarningStyle.Render(o.State.String()) + " " + report.SubtitleStyle.Render(o.Reason)
	case pkginstall.FatalFailed:
		return report.ErrorStyle.Render(o.State.String())
	default:
		detail := report.SubtitleStyle.Render(o.State.String())
		if o.Reason != "" {
			detail += " " + report.SubtitleStyle.Render("("+o.Reason+")")
		}
		return detail
	}
}
