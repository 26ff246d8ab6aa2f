// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"context"
	"fmt"

	"github.com/u-root/u-root/pkg/core/mv"
	"mvdan.cc/sh/v3/interp"
)

// runMove serves "mv SOURCE... DEST" through the u-root mv implementation,
// bound to the interpreter's stdio, working directory and environment.
// A failure is reported on stderr with exit status 1, like the host mv.
func runMove(ctx context.Context, args []string) error {
	hc := interp.HandlerCtx(ctx)

	cmd := mv.New()
	cmd.SetIO(hc.Stdin, hc.Stdout, hc.Stderr)
	cmd.SetWorkingDir(hc.Dir)
	cmd.SetLookupEnv(func(name string) (string, bool) {
		v := hc.Env.Get(name)
		return v.Str, v.Set
	})

	if err := cmd.RunContext(ctx, args...); err != nil {
		fmt.Fprintf(hc.Stderr, "mv: %v\n", err)
		return interp.ExitStatus(1)
	}
	return nil
}
