// SPDX-License-Identifier: MPL-2.0

package envctx

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/depconf/depconf/internal/config"
)

// cloneMarkers are paths whose presence under the root marks a development clone.
var cloneMarkers = []string{".git", ".hg", filepath.Join("bin", "maint")}

// Context is the Environment Context of one configuration run.
type Context struct {
	root      string
	arch      string
	clone     bool
	batch     bool
	packages  map[string]config.PackageOptions
	compilers map[string]string
	langs     LanguageStack
}

// New builds a Context from a loaded configuration. The root is made absolute;
// an empty root means the working directory and an empty arch means GOOS-GOARCH.
func New(cfg *config.Config) (*Context, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	root := cfg.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", cfg.Root, err)
	}

	arch := cfg.Arch
	if arch == "" {
		arch = DefaultArch()
	}

	clone, err := detectClone(root, cfg.Clone)
	if err != nil {
		return nil, err
	}

	compilers := defaultCompilers()
	for lang, cc := range cfg.Compilers {
		if canonical, ok := canonicalLanguage(lang); ok {
			compilers[canonical] = cc
		}
	}

	packages := make(map[string]config.PackageOptions, len(cfg.Packages))
	for name, opts := range cfg.Packages {
		packages[strings.ToLower(name)] = opts
	}

	return &Context{
		root:      root,
		arch:      arch,
		clone:     clone,
		batch:     cfg.Batch,
		packages:  packages,
		compilers: compilers,
	}, nil
}

// DefaultArch returns the architecture tag used when none is configured.
func DefaultArch() string {
	return runtime.GOOS + "-" + runtime.GOARCH
}

// IsClone reports whether the root is a development clone.
func (c *Context) IsClone() bool { return c.clone }

// IsBatch reports whether the run is non-interactive.
func (c *Context) IsBatch() bool { return c.batch }

// RootDir returns the absolute project root.
func (c *Context) RootDir() string { return c.root }

// ArchTag returns the architecture tag naming the install tree.
func (c *Context) ArchTag() string { return c.arch }

// PackageOptions returns the typed options for name. Unknown packages get the
// zero value, which is disabled.
func (c *Context) PackageOptions(name string) config.PackageOptions {
	return c.packages[strings.ToLower(name)]
}

// Compiler returns the compiler for the currently selected language, or ""
// when no language is selected.
func (c *Context) Compiler() string {
	return c.compilers[c.langs.Current()]
}

// Language returns the currently selected language.
func (c *Context) Language() string { return c.langs.Current() }

// SelectLanguage pushes lang onto the language stack. The caller must Restore
// the returned Selection; deferring it is the usual pattern.
func (c *Context) SelectLanguage(lang string) (*Selection, error) {
	canonical, ok := canonicalLanguage(lang)
	if !ok {
		return nil, unknownLanguage(lang)
	}
	depth := c.langs.Push(canonical)
	return NewSelection(canonical, c.compilers[canonical], func() {
		c.langs.RestoreTo(depth)
	}), nil
}

// canonicalLanguage maps case-insensitive language names (and the C++ alias)
// to the stack's spelling.
func canonicalLanguage(lang string) (string, bool) {
	switch strings.ToLower(lang) {
	case "c":
		return LangC, true
	case "cxx", "c++":
		return LangCxx, true
	case "fc", "fortran":
		return LangFC, true
	default:
		return "", false
	}
}

// detectClone applies the clone mode. In auto mode the root is a clone when
// any clone marker exists under it.
func detectClone(root string, mode config.CloneMode) (bool, error) {
	switch mode {
	case config.CloneYes:
		return true, nil
	case config.CloneNo:
		return false, nil
	case config.CloneAuto, "":
		for _, marker := range cloneMarkers {
			if _, err := os.Stat(filepath.Join(root, marker)); err == nil {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, &config.InvalidCloneModeError{Value: mode}
	}
}
