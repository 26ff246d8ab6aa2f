// SPDX-License-Identifier: MPL-2.0

package pkginstall

import (
	"strconv"
	"strings"
)

// DefaultSourceSubdir is the directory under the package directory holding the makefile.
const DefaultSourceSubdir = "source"

// State is a lifecycle state of a package within one configuration run.
type State int

const (
	Unvisited State = iota
	Disabled
	NotApplicable
	Enabled
	FoundExisting
	NeedsBuild
	BuildSucceeded
	BuildFailed
	Installed
	SoftFailed
	FatalFailed
)

var stateNames = [...]string{
	Unvisited:      "Unvisited",
	Disabled:       "Disabled",
	NotApplicable:  "NotApplicable",
	Enabled:        "Enabled",
	FoundExisting:  "FoundExisting",
	NeedsBuild:     "NeedsBuild",
	BuildSucceeded: "BuildSucceeded",
	BuildFailed:    "BuildFailed",
	Installed:      "Installed",
	SoftFailed:     "SoftFailed",
	FatalFailed:    "FatalFailed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Terminal reports whether s ends the lifecycle for this run.
func (s State) Terminal() bool {
	switch s {
	case Disabled, NotApplicable, Installed, SoftFailed, FatalFailed:
		return true
	default:
		return false
	}
}

type (
	// Package is one optional external dependency. A Package belongs to the
	// run that created it and is not reused.
	Package struct {
		// Name identifies the package and keys its options.
		Name string
		// Required makes any outcome other than Installed fail the run.
		Required bool
		// Download lists the retrieval URLs, first successful wins.
		Download []string
		// Artifact is the base name of the executable the build produces.
		Artifact string
		// Language selects the compiler for the build.
		Language string
		// SourceSubdir is the makefile directory relative to PackageDir.
		SourceSubdir string
		// ArtifactMacro receives the installed executable path.
		ArtifactMacro string
		// DirMacro receives the package directory.
		DirMacro string

		// PackageDir is the extracted source tree. Set by Configure.
		PackageDir string
		// InstallDir is <root>/<arch>. Set by Configure.
		InstallDir string
		// ArtifactPath is the absolute installed executable. Set only on Installed.
		ArtifactPath string
		// Variables holds the macros recorded for this package. Set only on Installed.
		Variables map[string]string
	}

	// Outcome is the result of configuring one package.
	Outcome struct {
		State State
		// Artifact is the installed executable path when State is Installed.
		Artifact string
		// Reason explains a SoftFailed, Disabled or NotApplicable outcome.
		Reason string
		// Err is the fatal condition when State is FatalFailed.
		Err error
	}
)

// NewPackage returns a package with the conventional defaults: artifact named
// after the package, C language, "source" subdirectory, and NAME / NAME_DIR macros.
func NewPackage(name string) *Package {
	macro := MacroName(name)
	return &Package{
		Name:          name,
		Artifact:      name,
		Language:      "C",
		SourceSubdir:  DefaultSourceSubdir,
		ArtifactMacro: macro,
		DirMacro:      macro + "_DIR",
	}
}

// MacroName derives a build variable name from a package name.
func MacroName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
