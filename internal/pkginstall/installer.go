// SPDX-License-Identifier: MPL-2.0

package pkginstall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/depconf/depconf/internal/config"
	"github.com/depconf/depconf/internal/envctx"
	"github.com/depconf/depconf/internal/issue"
	"github.com/depconf/depconf/internal/report"
	"github.com/depconf/depconf/internal/shellrun"

	"github.com/charmbracelet/log"
)

var (
	// ErrBuildFailed marks a failed compile in an interactive run.
	ErrBuildFailed = errors.New("build failed")
	// ErrInstallFailed marks a failure to move the built artifact into place.
	ErrInstallFailed = errors.New("install failed")
)

type (
	// Environment is the view of the run the installer needs.
	Environment interface {
		IsClone() bool
		IsBatch() bool
		PackageOptions(name string) config.PackageOptions
		RootDir() string
		ArchTag() string
		SelectLanguage(lang string) (*envctx.Selection, error)
	}

	// Sink receives build variables and provenance notes.
	Sink interface {
		SetVariable(name, value string)
		NoteAction(category, phase, message string)
	}

	// Timeouts bounds each external command.
	Timeouts struct {
		Build   time.Duration
		Install time.Duration
		Clean   time.Duration
	}

	// Options configures an Installer.
	Options struct {
		// Logger receives lifecycle logging. Nil discards it.
		Logger *log.Logger
		// Out receives boxed warnings. Nil discards them.
		Out io.Writer
		// Timeouts bounds external commands. Zero fields take the defaults.
		Timeouts Timeouts
	}

	// Installer configures packages against one environment.
	Installer struct {
		env      Environment
		runner   shellrun.Runner
		sink     Sink
		logger   *log.Logger
		out      io.Writer
		timeouts Timeouts
	}
)

// DefaultTimeouts returns the stock limits: a long build, short install and clean.
func DefaultTimeouts() Timeouts {
	return TimeoutsFromConfig(config.TimeoutConfig{
		Build:   config.DefaultBuildTimeout,
		Install: config.DefaultInstallTimeout,
		Clean:   config.DefaultCleanTimeout,
	})
}

// TimeoutsFromConfig converts configured seconds into durations.
func TimeoutsFromConfig(tc config.TimeoutConfig) Timeouts {
	return Timeouts{
		Build:   time.Duration(tc.Build) * time.Second,
		Install: time.Duration(tc.Install) * time.Second,
		Clean:   time.Duration(tc.Clean) * time.Second,
	}
}

// New creates an Installer.
func New(env Environment, runner shellrun.Runner, sink Sink, opts Options) *Installer {
	defaults := DefaultTimeouts()
	t := opts.Timeouts
	if t.Build <= 0 {
		t.Build = defaults.Build
	}
	if t.Install <= 0 {
		t.Install = defaults.Install
	}
	if t.Clean <= 0 {
		t.Clean = defaults.Clean
	}

	logger := opts.Logger
	if logger == nil {
		logger = report.Discard()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	return &Installer{
		env:      env,
		runner:   runner,
		sink:     sink,
		logger:   logger,
		out:      out,
		timeouts: t,
	}
}

// Configure runs the lifecycle for pkg. The returned error is non-nil only
// when the outcome is FatalFailed, and is then also stored in Outcome.Err.
func (i *Installer) Configure(ctx context.Context, pkg *Package) (Outcome, error) {
	state, opts := i.gate(pkg)
	switch state {
	case NotApplicable:
		return Outcome{State: NotApplicable, Reason: "not a development clone"}, nil
	case Disabled:
		return Outcome{State: Disabled, Reason: "not enabled"}, nil
	}

	pkg.InstallDir = filepath.Join(i.env.RootDir(), i.env.ArchTag())

	dir, err := Locate(pkg, i.env.RootDir(), i.env.ArchTag(), opts.Dir)
	if err != nil {
		return fatal(issue.NewErrorContext().
			WithIssue(issue.PackageDirNotFoundId).
			WithOperation("locate "+pkg.Name).
			WithSuggestions(downloadHints(pkg)...).
			Wrap(err).
			BuildError())
	}
	pkg.PackageDir = dir

	if artifact, ok := ResolveExecutable(filepath.Join(pkg.InstallDir, "bin"), pkg.Artifact); ok {
		i.logger.Info("found executable; skipping compile", "package", pkg.Name, "artifact", artifact)
		i.record(pkg, artifact)
		return Outcome{State: Installed, Artifact: artifact}, nil
	}

	i.logger.Info("did not find executable; compiling", "package", pkg.Name, "dir", pkg.PackageDir)

	res := i.build(ctx, pkg)
	switch res.kind {
	case buildFailed:
		return i.buildFailure(pkg, res)
	case installFailed:
		return fatal(issue.NewErrorContext().
			WithIssue(issue.InstallFailedId).
			WithOperation("install "+pkg.Name).
			WithResource(res.command).
			WithSuggestion("Check that "+filepath.Join(pkg.InstallDir, "bin")+" is writable").
			Wrap(fmt.Errorf("%w: %w", ErrInstallFailed, res.err)).
			BuildError())
	}

	i.record(pkg, res.artifact)
	return Outcome{State: Installed, Artifact: res.artifact}, nil
}

// gate decides from the environment alone, with no I/O, whether the
// lifecycle runs. It logs exactly one line describing the decision.
func (i *Installer) gate(pkg *Package) (State, config.PackageOptions) {
	if !i.env.IsClone() {
		i.logger.Info("not a development clone, package not needed", "package", pkg.Name)
		return NotApplicable, config.PackageOptions{}
	}
	opts := i.env.PackageOptions(pkg.Name)
	if !opts.Enabled {
		i.logger.Info("package disabled", "package", pkg.Name)
		return Disabled, opts
	}
	i.logger.Info("development clone, checking for package", "package", pkg.Name)
	return Enabled, opts
}

// buildFailure applies the batch policy to a failed compile.
func (i *Installer) buildFailure(pkg *Package, res buildResult) (Outcome, error) {
	if i.env.IsBatch() {
		msg := fmt.Sprintf("Batch build that could not generate %s, you will not be able to build documentation", pkg.Name)
		fmt.Fprintln(i.out, report.Box(msg))
		i.logger.Warn("build failed in batch mode; continuing without package", "package", pkg.Name, "err", res.err)
		return Outcome{State: SoftFailed, Reason: msg}, nil
	}

	id := issue.BuildFailedId
	var cfe *shellrun.CommandFailedError
	if errors.As(res.err, &cfe) && cfe.TimedOut {
		id = issue.CommandTimedOutId
	}
	return fatal(issue.NewErrorContext().
		WithIssue(id).
		WithOperation("run make on "+pkg.Name).
		WithResource(res.command).
		WithSuggestion("Run with --with-batch to continue without "+pkg.Name).
		WithSuggestion("Run with --without "+pkg.Name+" to skip it").
		Wrap(fmt.Errorf("%w: %w", ErrBuildFailed, res.err)).
		BuildError())
}

// record publishes an installed artifact: one provenance note, the artifact
// path on the package, and the artifact and directory macros.
func (i *Installer) record(pkg *Package, artifact string) {
	pkg.ArtifactPath = artifact
	pkg.Variables = map[string]string{
		pkg.ArtifactMacro: artifact,
		pkg.DirMacro:      pkg.PackageDir,
	}

	i.sink.NoteAction(pkg.Name, "Install", "Installed "+pkg.Name+" into "+pkg.InstallDir)
	i.sink.SetVariable(pkg.ArtifactMacro, artifact)
	i.sink.SetVariable(pkg.DirMacro, pkg.PackageDir)
}

func fatal(err error) (Outcome, error) {
	return Outcome{State: FatalFailed, Err: err}, err
}

func downloadHints(pkg *Package) []string {
	hints := make([]string, 0, len(pkg.Download)+1)
	for _, url := range pkg.Download {
		hints = append(hints, "Download and extract "+url+" into "+ExternalPackagesDir+"/")
	}
	return append(hints, "Or pass --package-dir "+pkg.Name+"=<path>")
}
