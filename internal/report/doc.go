// SPDX-License-Identifier: MPL-2.0

// Package report holds the terminal presentation shared by depconf commands:
// the colour palette, boxed warnings, and logger construction.
package report
