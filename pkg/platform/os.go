// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ExeSuffix is the optional suffix carried by executables on Windows-style hosts.
// Toolchains such as Cygwin and MinGW produce it even when the host is not Windows,
// so probes check for it on every platform.
const ExeSuffix = ".exe"

// ExecutableNames returns the candidate file names for an executable base name.
// The suffixed form comes first.
func ExecutableNames(base string) []string {
	if base == "" {
		return nil
	}
	return []string{base + ExeSuffix, base}
}

// IsWindows reports whether the current process runs on Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}
