// SPDX-License-Identifier: MPL-2.0

// Package buildvars is the build variable sink of a configuration run.
//
// A Registry collects name/value build variables (last write wins) and
// human-readable provenance notes. The collected variables are written as a
// make include file for the downstream build, and a TOML record captures each
// package outcome together with a BLAKE3 digest of every installed artifact.
package buildvars
