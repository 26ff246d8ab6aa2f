// SPDX-License-Identifier: MPL-2.0

// Package catalog lists the packages a configure run knows about: the
// built-in descriptors and the packages declared in configuration.
package catalog

import (
	"slices"
	"strings"

	"github.com/depconf/depconf/internal/config"
	"github.com/depconf/depconf/internal/pkginstall"

	"golang.org/x/exp/maps"
)

// LgrindDownload is where the lgrind source tarball is published.
const LgrindDownload = "ftp://ftp.mcs.anl.gov/pub/petsc/externalpackages/lgrind-dev.tar.gz"

// Lgrind returns the descriptor of the lgrind source pretty-printer, a
// maintainer-only tool used to typeset source listings in the documentation.
func Lgrind() *pkginstall.Package {
	p := pkginstall.NewPackage("lgrind")
	p.Download = []string{LgrindDownload}
	p.Required = false
	return p
}

// Builtin returns fresh copies of the built-in descriptors in catalog order.
func Builtin() []*pkginstall.Package {
	return []*pkginstall.Package{Lgrind()}
}

// Resolve returns the packages of a run: built-ins first, then packages only
// declared in configuration, in name order. Configuration may mark a built-in
// required or add download URLs; artifact, language and macro overrides only
// apply to declared packages.
func Resolve(cfg *config.Config) []*pkginstall.Package {
	pkgs := Builtin()
	known := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		known[p.Name] = true
		if cfg == nil {
			continue
		}
		opts := cfg.Package(p.Name)
		if opts.Required {
			p.Required = true
		}
		if len(opts.Download) > 0 {
			p.Download = slices.Clone(opts.Download)
		}
	}
	if cfg == nil {
		return pkgs
	}

	names := maps.Keys(cfg.Packages)
	slices.Sort(names)
	for _, name := range names {
		name = strings.ToLower(name)
		if known[name] {
			continue
		}
		known[name] = true
		pkgs = append(pkgs, declared(name, cfg.Package(name)))
	}
	return pkgs
}

func declared(name string, opts config.PackageOptions) *pkginstall.Package {
	p := pkginstall.NewPackage(name)
	p.Required = opts.Required
	p.Download = slices.Clone(opts.Download)
	if opts.Artifact != "" {
		p.Artifact = opts.Artifact
	}
	if opts.Language != "" {
		p.Language = opts.Language
	}
	if opts.Macro != "" {
		p.ArtifactMacro = opts.Macro
		p.DirMacro = opts.Macro + "_DIR"
	}
	return p
}

// Find returns the package called name from pkgs.
func Find(pkgs []*pkginstall.Package, name string) (*pkginstall.Package, bool) {
	for _, p := range pkgs {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}
