// SPDX-License-Identifier: MPL-2.0

// Package pkginstall drives one optional external package through its
// configuration lifecycle: the enablement gate, the probe for an existing
// installation, the build from source with its batch or interactive failure
// policy, and the recording of the resulting build variables.
//
// The Installer never decides policy by panicking or by returning sentinel
// states through errors. Configure always returns an Outcome; a non-nil error
// accompanies it only for FatalFailed.
package pkginstall
