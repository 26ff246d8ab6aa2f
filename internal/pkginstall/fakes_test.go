// SPDX-License-Identifier: MPL-2.0

package pkginstall

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/depconf/depconf/internal/buildvars"
	"github.com/depconf/depconf/internal/config"
	"github.com/depconf/depconf/internal/envctx"
	"github.com/depconf/depconf/internal/report"
	"github.com/depconf/depconf/internal/shellrun"
)

// fakeEnv is an Environment that counts language pushes and pops and how
// often the install tree was asked for.
type fakeEnv struct {
	clone     bool
	batch     bool
	root      string
	arch      string
	compiler  string
	options   map[string]config.PackageOptions
	pushes    int
	pops      int
	rootCalls int
}

func (e *fakeEnv) IsClone() bool { return e.clone }
func (e *fakeEnv) IsBatch() bool { return e.batch }

func (e *fakeEnv) PackageOptions(name string) config.PackageOptions {
	return e.options[name]
}

func (e *fakeEnv) RootDir() string {
	e.rootCalls++
	return e.root
}

func (e *fakeEnv) ArchTag() string { return e.arch }

func (e *fakeEnv) SelectLanguage(lang string) (*envctx.Selection, error) {
	if lang != envctx.LangC {
		return nil, envctx.ErrUnknownLanguage
	}
	e.pushes++
	return envctx.NewSelection(lang, e.compiler, func() { e.pops++ }), nil
}

// fakeRunner records every command. Builds are delegated to onBuild, cleans
// to onClean, and moves run through the real virtual shell so the files
// actually move.
type fakeRunner struct {
	commands []string
	timeouts []time.Duration
	onBuild  func() (string, error)
	onMove   func() (string, error)
	onClean  func() (string, error)
	shell    shellrun.Runner
}

func (r *fakeRunner) Run(ctx context.Context, command string, timeout time.Duration) (string, error) {
	r.commands = append(r.commands, command)
	r.timeouts = append(r.timeouts, timeout)

	switch {
	case strings.Contains(command, "make CC="):
		if r.onBuild != nil {
			return r.onBuild()
		}
	case strings.HasPrefix(command, "mv "):
		if r.onMove != nil {
			return r.onMove()
		}
		return r.shell.Run(ctx, command, timeout)
	case strings.HasSuffix(command, "make clean"):
		if r.onClean != nil {
			return r.onClean()
		}
	}
	return "", nil
}

func (r *fakeRunner) count(prefix string) int {
	n := 0
	for _, c := range r.commands {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// fixture is a project tree with one extracted lgrind package.
type fixture struct {
	env        *fakeEnv
	runner     *fakeRunner
	sink       *buildvars.Registry
	logs       *bytes.Buffer
	out        *bytes.Buffer
	installer  *Installer
	pkg        *Package
	packageDir string
	sourceDir  string
	installDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	packageDir := filepath.Join(root, ExternalPackagesDir, "lgrind-dev")
	sourceDir := filepath.Join(packageDir, "source")
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatal(err)
	}

	env := &fakeEnv{
		clone:    true,
		root:     root,
		arch:     "x",
		compiler: "cc",
		options:  map[string]config.PackageOptions{"lgrind": {Enabled: true}},
	}
	runner := &fakeRunner{shell: shellrun.NewVirtualRunner(shellrun.Options{Dir: root})}
	runner.onBuild = func() (string, error) {
		return "cc -o lgrind lgrind.c\n", os.WriteFile(filepath.Join(sourceDir, "lgrind"), []byte("#!/bin/sh\n"), 0o755)
	}

	f := &fixture{
		env:        env,
		runner:     runner,
		sink:       buildvars.NewRegistry(),
		logs:       &bytes.Buffer{},
		out:        &bytes.Buffer{},
		packageDir: packageDir,
		sourceDir:  sourceDir,
		installDir: filepath.Join(root, "x"),
	}
	f.installer = New(env, runner, f.sink, Options{
		Logger: report.NewLogger(f.logs, false),
		Out:    f.out,
	})
	f.pkg = NewPackage("lgrind")
	f.pkg.Download = []string{"ftp://example.org/lgrind-dev.tar.gz"}
	return f
}

func (f *fixture) logLines() int {
	return len(strings.Split(strings.TrimSpace(f.logs.String()), "\n"))
}

func (f *fixture) writeInstalled(t *testing.T, name string) string {
	t.Helper()
	bin := filepath.Join(f.installDir, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(bin, name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return p
}
