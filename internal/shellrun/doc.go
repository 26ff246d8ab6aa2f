// SPDX-License-Identifier: MPL-2.0

// Package shellrun runs shell command lines with a timeout and captures their
// combined output.
//
// Two runners are provided. The virtual runner interprets commands in-process
// with mvdan.cc/sh and only spawns processes for external programs; mv is served
// in-process by u-root so installs work the same on every host. The native
// runner hands the command line to the host shell (sh -c, or cmd /C on Windows).
package shellrun
