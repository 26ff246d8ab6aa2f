// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/depconf/depconf/pkg/platform"
)

// waitDelay bounds how long Run waits for output pipes after the shell is killed.
const waitDelay = 2 * time.Second

// NativeRunner passes command lines to the host shell.
type NativeRunner struct {
	dir string
	env []string
}

// NewNativeRunner creates a native runner.
func NewNativeRunner(opts Options) *NativeRunner {
	return &NativeRunner{dir: opts.Dir, env: opts.Env}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return "native"
}

// Run executes command with sh -c (cmd /C on Windows).
func (r *NativeRunner) Run(ctx context.Context, command string, timeout time.Duration) (string, error) {
	runCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	shell, flag := "sh", "-c"
	if platform.IsWindows() {
		shell, flag = "cmd", "/C"
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(runCtx, shell, flag, command)
	cmd.Dir = r.dir
	if r.env != nil {
		cmd.Env = r.env
	}
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	output := out.String()
	if err == nil {
		return output, nil
	}

	failure := &CommandFailedError{Command: command, Output: output}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		failure.TimedOut = true
		failure.Err = runCtx.Err()
		return output, failure
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		failure.ExitCode = exitErr.ExitCode()
	} else {
		failure.Err = err
	}
	return output, failure
}
