// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// DefaultArch is the architecture tag used by NewProject.
const DefaultArch = "test-arch"

// Project is a throwaway project tree:
//
//	<Root>/.git/                       (only when Clone)
//	<Root>/externalpackages/<dir>/source/
//	<Root>/<Arch>/bin/
type Project struct {
	Root       string
	Arch       string
	PackageDir string
	SourceDir  string
}

// ProjectOptions shapes NewProject.
type ProjectOptions struct {
	// Package names the extracted source tree, e.g. "lgrind-dev". Empty skips it.
	Package string
	// Clone adds a .git directory so the root is a development clone.
	Clone bool
}

// NewProject creates a project tree under t.TempDir().
func NewProject(t testing.TB, opts ProjectOptions) *Project {
	t.Helper()

	p := &Project{Root: t.TempDir(), Arch: DefaultArch}
	if opts.Clone {
		MustMkdirAll(t, filepath.Join(p.Root, ".git"), 0o755)
	}
	if opts.Package != "" {
		p.PackageDir = filepath.Join(p.Root, "externalpackages", opts.Package)
		p.SourceDir = filepath.Join(p.PackageDir, "source")
		MustMkdirAll(t, p.SourceDir, 0o755)
	}
	return p
}

// BinDir is <Root>/<Arch>/bin.
func (p *Project) BinDir() string {
	return filepath.Join(p.Root, p.Arch, "bin")
}

// ConfDir is <Root>/<Arch>/conf.
func (p *Project) ConfDir() string {
	return filepath.Join(p.Root, p.Arch, "conf")
}

// InstallArtifact places an executable named name into BinDir and returns its path.
func (p *Project) InstallArtifact(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(p.BinDir(), name)
	MustWriteFile(t, path, "#!/bin/sh\n", 0o755)
	return path
}

// WriteMakefile writes the package Makefile into SourceDir.
func (p *Project) WriteMakefile(t testing.TB, content string) {
	t.Helper()
	if p.SourceDir == "" {
		t.Fatal("project has no package source tree")
	}
	MustWriteFile(t, filepath.Join(p.SourceDir, "Makefile"), content, 0o644)
}
