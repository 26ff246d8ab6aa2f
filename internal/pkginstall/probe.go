// SPDX-License-Identifier: MPL-2.0

package pkginstall

import (
	"os"
	"path/filepath"

	"github.com/depconf/depconf/pkg/platform"
)

// ResolveExecutable looks for base in dir with and without the executable
// suffix. The suffixed name is tried first so a Windows build is not shadowed
// by a stray extensionless file. Only regular files count.
func ResolveExecutable(dir, base string) (string, bool) {
	for _, name := range platform.ExecutableNames(base) {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
