// SPDX-License-Identifier: MPL-2.0

package pkginstall

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPackageDirNotFound is returned when no extracted source tree exists for an enabled package.
var ErrPackageDirNotFound = errors.New("package directory not found")

// ExternalPackagesDir is the directory name searched for extracted packages.
const ExternalPackagesDir = "externalpackages"

// SearchDirs returns the directories Locate scans, in order.
func SearchDirs(root, arch string) []string {
	return []string{
		filepath.Join(root, arch, ExternalPackagesDir),
		filepath.Join(root, ExternalPackagesDir),
	}
}

// Locate finds the extracted source tree of pkg. An explicit directory wins and
// must exist. Otherwise the search directories are scanned for an entry named
// after the package, exactly or followed by "-<version>", ignoring case.
func Locate(pkg *Package, root, arch, explicit string) (string, error) {
	if explicit != "" {
		dir := explicit
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrPackageDirNotFound, dir)
		}
		return dir, nil
	}

	for _, base := range SearchDirs(root, arch) {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		// ReadDir returns entries sorted by name.
		for _, e := range entries {
			if e.IsDir() && matchesPackage(e.Name(), pkg.Name) {
				return filepath.Join(base, e.Name()), nil
			}
		}
	}

	return "", fmt.Errorf("%w: no %s* directory under %s",
		ErrPackageDirNotFound, pkg.Name, strings.Join(SearchDirs(root, arch), " or "))
}

func matchesPackage(entry, name string) bool {
	entry = strings.ToLower(entry)
	name = strings.ToLower(name)
	return entry == name || strings.HasPrefix(entry, name+"-")
}
