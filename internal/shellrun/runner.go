// SPDX-License-Identifier: MPL-2.0

package shellrun

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/depconf/depconf/internal/config"

	"mvdan.cc/sh/v3/syntax"
)

// ErrCommandFailed is the sentinel matched by every CommandFailedError.
var ErrCommandFailed = errors.New("command failed")

type (
	// Runner executes a shell command line and returns its combined output.
	// A nil error means the command exited with status zero.
	Runner interface {
		Run(ctx context.Context, command string, timeout time.Duration) (string, error)
	}

	// CommandFailedError reports a command that exited non-zero, timed out,
	// or could not be started.
	CommandFailedError struct {
		Command  string
		Output   string
		ExitCode int
		TimedOut bool
		Err      error
	}

	// Options configures a runner.
	Options struct {
		// Dir is the working directory commands start in. Empty means the
		// current directory.
		Dir string
		// Env is the environment in KEY=VALUE form. Nil inherits the process environment.
		Env []string
	}
)

// Error implements the error interface. The captured output is included so the
// failure is diagnosable from the message alone.
func (e *CommandFailedError) Error() string {
	var b strings.Builder
	switch {
	case e.TimedOut:
		fmt.Fprintf(&b, "command timed out: %s", e.Command)
	case e.Err != nil && e.ExitCode == 0:
		fmt.Fprintf(&b, "command could not run: %s: %v", e.Command, e.Err)
	default:
		fmt.Fprintf(&b, "command exited with status %d: %s", e.ExitCode, e.Command)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrCommandFailed) true for any CommandFailedError.
func (e *CommandFailedError) Is(target error) bool {
	return target == ErrCommandFailed
}

// Unwrap returns the underlying cause, if any.
func (e *CommandFailedError) Unwrap() error {
	return e.Err
}

// New returns the runner selected by mode.
func New(mode config.RunnerMode, opts Options) (Runner, error) {
	switch mode {
	case config.RunnerVirtual, "":
		return NewVirtualRunner(opts), nil
	case config.RunnerNative:
		return NewNativeRunner(opts), nil
	default:
		return nil, &config.InvalidRunnerModeError{Value: mode}
	}
}

// Quote returns s quoted for a POSIX shell command line. Both runners parse
// the same syntax, so quoting is runner independent.
func Quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// NUL bytes and non-printable runes have no POSIX quoting.
		return "'" + strings.ReplaceAll(s, "\x00", "") + "'"
	}
	return q
}

// withTimeout bounds ctx by timeout when it is positive.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
