// SPDX-License-Identifier: MPL-2.0

package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestBox(t *testing.T) {
	t.Parallel()

	out := Box("Batch build that could not generate lgrind")
	if !strings.Contains(out, "Batch build that could not generate lgrind") {
		t.Errorf("Box() lost its message: %q", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) < 3 {
		t.Errorf("Box() should frame the message, got %d lines", len(lines))
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	var quiet, verbose bytes.Buffer

	NewLogger(&quiet, false).Debug("hidden detail")
	NewLogger(&verbose, true).Debug("shown detail")

	if strings.Contains(quiet.String(), "hidden detail") {
		t.Error("debug output should be suppressed when not verbose")
	}
	if !strings.Contains(verbose.String(), "shown detail") {
		t.Error("debug output should be shown when verbose")
	}
	if !strings.Contains(verbose.String(), LogPrefix) {
		t.Errorf("log line should carry the %q prefix: %q", LogPrefix, verbose.String())
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	// Must not panic and must not write anywhere visible.
	Discard().Info("nothing")
}
