// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner interprets command lines with mvdan/sh.
type VirtualRunner struct {
	dir string
	env []string
}

// NewVirtualRunner creates a virtual runner.
func NewVirtualRunner(opts Options) *VirtualRunner {
	return &VirtualRunner{dir: opts.Dir, env: opts.Env}
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string {
	return "virtual"
}

// Run parses and interprets command. Each call starts from a fresh interpreter,
// so a leading "cd" only affects the command line it appears in.
func (r *VirtualRunner) Run(ctx context.Context, command string, timeout time.Duration) (string, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return "", &CommandFailedError{Command: command, Err: fmt.Errorf("failed to parse command: %w", err)}
	}

	var out bytes.Buffer
	var env expand.Environ
	if r.env != nil {
		env = expand.ListEnviron(r.env...)
	}

	runner, err := interp.New(
		interp.Dir(r.dir),
		interp.Env(env),
		interp.StdIO(nil, &out, &out),
		interp.ExecHandlers(builtinHandler),
	)
	if err != nil {
		return "", &CommandFailedError{Command: command, Err: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	runCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	err = runner.Run(runCtx, prog)
	output := out.String()
	if err == nil {
		return output, nil
	}

	failure := &CommandFailedError{Command: command, Output: output}
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		failure.TimedOut = true
		failure.Err = runCtx.Err()
	default:
		var status interp.ExitStatus
		if errors.As(err, &status) {
			failure.ExitCode = int(status)
		} else {
			failure.Err = err
		}
	}
	return output, failure
}

// builtinHandler serves the commands the interpreter handles without spawning
// a process, and passes everything else on.
func builtinHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) > 0 && args[0] == "mv" {
			return runMove(ctx, args[1:])
		}
		return next(ctx, args)
	}
}
