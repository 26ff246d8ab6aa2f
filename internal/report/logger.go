// SPDX-License-Identifier: MPL-2.0

package report

import (
	"io"

	"github.com/charmbracelet/log"
)

// LogPrefix prefixes every depconf log line.
const LogPrefix = "depconf"

// NewLogger creates the run logger. Verbose runs log at debug level.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: LogPrefix,
		Level:  level,
	})
}

// Discard returns a logger that drops everything. Useful as a default.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
