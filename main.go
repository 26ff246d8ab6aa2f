// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/depconf/depconf/cmd/depconf"

func main() {
	cmd.Execute()
}
