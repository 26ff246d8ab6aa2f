// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides the Must* file helpers it builds throwaway project trees shaped like
// the ones depconf configures: a root with an extracted package source tree
// and, optionally, an already installed artifact.
package testutil
