// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform naming conventions.
//
// It centralizes the OS name literals and the executable-suffix rule used when
// probing for build artifacts, so callers never scatter ".exe" checks.
package platform
