// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/depconf/depconf/internal/issue"
	"github.com/depconf/depconf/internal/report"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// guideStyle is the glamour style used for issue guides.
const guideStyle = "dark"

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose mode adds the error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderError writes err and, when it links one, its issue guide to w.
func renderError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, report.ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	guide := ae.Guide()
	if guide == nil {
		return
	}
	rendered, renderErr := guide.Render(guideStyle)
	if renderErr != nil {
		log.Warn("failed to render issue guide", "issue", ae.Issue, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// fail renders err to the app's stderr and returns an already-rendered ExitError.
func (a *App) fail(cmd *cobra.Command, err error, verbose bool) error {
	renderError(a.stderr, err, verbose)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: 1}
}
