// SPDX-License-Identifier: MPL-2.0

package pkginstall

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/depconf/depconf/internal/issue"
)

// ErrRequiredPackageMissing is returned when a required package did not end up installed.
var ErrRequiredPackageMissing = errors.New("required package not installed")

// Result pairs a package with its outcome.
type Result struct {
	Package *Package
	Outcome Outcome
}

// ConfigureAll configures pkgs one after another. It stops at the first fatal
// outcome. Once every package has run, any required package that is not
// Installed fails the run. The results gathered so far are always returned.
func (i *Installer) ConfigureAll(ctx context.Context, pkgs []*Package) ([]Result, error) {
	results := make([]Result, 0, len(pkgs))
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("configure canceled: %w", err)
		}
		outcome, err := i.Configure(ctx, pkg)
		results = append(results, Result{Package: pkg, Outcome: outcome})
		if err != nil {
			return results, err
		}
	}

	var missing []string
	for _, r := range results {
		if r.Package.Required && r.Outcome.State != Installed {
			missing = append(missing, fmt.Sprintf("%s (%s)", r.Package.Name, r.Outcome.State))
		}
	}
	if len(missing) > 0 {
		return results, issue.NewErrorContext().
			WithIssue(issue.RequiredPackageMissingId).
			WithOperation("configure required packages").
			WithResource(strings.Join(missing, ", ")).
			Wrap(ErrRequiredPackageMissing).
			BuildError()
	}
	return results, nil
}
