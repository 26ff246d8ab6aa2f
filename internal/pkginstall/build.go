// SPDX-License-Identifier: MPL-2.0

package pkginstall

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/depconf/depconf/internal/shellrun"
)

type buildKind int

const (
	built buildKind = iota
	buildFailed
	installFailed
)

// buildResult is what the build step hands back to Configure, which owns the
// batch policy. command is the command line that failed, if any.
type buildResult struct {
	kind     buildKind
	artifact string
	command  string
	err      error
}

// build compiles the source tree, moves the executable into <installDir>/bin
// and cleans the tree. The clean runs after every compile that succeeded,
// whatever happened to the move.
func (i *Installer) build(ctx context.Context, pkg *Package) buildResult {
	srcDir := filepath.Join(pkg.PackageDir, pkg.sourceSubdir())

	buildCmd, err := i.compile(ctx, pkg, srcDir)
	if err != nil {
		return buildResult{kind: buildFailed, command: buildCmd, err: err}
	}

	res := i.install(ctx, pkg, srcDir)
	i.clean(ctx, pkg, srcDir)
	return res
}

// compile runs the clean-then-build command with the package language
// selected. The selection is restored before compile returns, on every path.
func (i *Installer) compile(ctx context.Context, pkg *Package, srcDir string) (string, error) {
	sel, err := i.env.SelectLanguage(pkg.Language)
	if err != nil {
		return "", err
	}
	defer sel.Restore()

	cmd := fmt.Sprintf("cd %s; make clean; make CC=%s", shellrun.Quote(srcDir), singleQuote(sel.Compiler()))
	i.logger.Debug("running build", "package", pkg.Name, "command", cmd)

	out, err := i.runner.Run(ctx, cmd, i.timeouts.Build)
	if err != nil {
		return cmd, err
	}
	i.logger.Debug("build output", "package", pkg.Name, "output", strings.TrimSpace(out))
	return cmd, nil
}

// install moves the built executable into <installDir>/bin and checks it arrived.
func (i *Installer) install(ctx context.Context, pkg *Package, srcDir string) buildResult {
	exe, ok := ResolveExecutable(srcDir, pkg.Artifact)
	if !ok {
		return buildResult{
			kind: installFailed,
			err:  fmt.Errorf("build did not produce %s in %s", pkg.Artifact, srcDir),
		}
	}

	binDir := filepath.Join(pkg.InstallDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return buildResult{kind: installFailed, err: fmt.Errorf("failed to create %s: %w", binDir, err)}
	}

	cmd := "mv " + shellrun.Quote(exe) + " " + shellrun.Quote(binDir)
	if _, err := i.runner.Run(ctx, cmd, i.timeouts.Install); err != nil {
		return buildResult{kind: installFailed, command: cmd, err: err}
	}

	target := filepath.Join(binDir, filepath.Base(exe))
	if info, err := os.Stat(target); err != nil || !info.Mode().IsRegular() {
		return buildResult{
			kind:    installFailed,
			command: cmd,
			err:     fmt.Errorf("%s missing after move", target),
		}
	}
	return buildResult{kind: built, artifact: target}
}

// clean is best effort; its failure never changes the outcome.
func (i *Installer) clean(ctx context.Context, pkg *Package, srcDir string) {
	cmd := "cd " + shellrun.Quote(srcDir) + "; make clean"
	if _, err := i.runner.Run(ctx, cmd, i.timeouts.Clean); err != nil {
		i.logger.Debug("clean failed", "package", pkg.Name, "err", err)
	}
}

func (p *Package) sourceSubdir() string {
	if p.SourceSubdir == "" {
		return DefaultSourceSubdir
	}
	return p.SourceSubdir
}

// singleQuote wraps s in single quotes for a POSIX shell.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
