// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "configure required packages"},
			want: "failed to configure required packages",
		},
		{
			name: "resource and cause",
			err: &ActionableError{
				Operation: "run make on lgrind",
				Resource:  "cd /p/source; make clean; make CC='cc'",
				Cause:     errors.New("exit status 2"),
			},
			want: "failed to run make on lgrind: cd /p/source; make clean; make CC='cc': exit status 2",
		},
		{
			name: "cause without resource",
			err: &ActionableError{
				Operation: "locate lgrind",
				Cause:     errors.New("package directory not found"),
			},
			want: "failed to locate lgrind: package directory not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("build failed")
	err := &ActionableError{
		Operation:   "run make on lgrind",
		Suggestions: []string{"Run with --with-batch", "Run with --without lgrind"},
		Cause:       fmt.Errorf("%w: exit status 2", sentinel),
	}

	plain := err.Format(false)
	for _, want := range []string{"failed to run make on lgrind", "  • Run with --with-batch", "  • Run with --without lgrind"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Error chain") {
		t.Errorf("Format(false) should not show the chain:\n%s", plain)
	}

	verbose := err.Format(true)
	for _, want := range []string{"Error chain:", "1. build failed: exit status 2", "2. build failed"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the wrapped sentinel")
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %+v, want nil", got)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want untyped nil", err)
	}

	ctx := NewErrorContext().
		WithIssue(PackageDirNotFoundId).
		WithOperation("locate lgrind").
		WithSuggestions("Download lgrind", "Or pass --package-dir")
	first := ctx.Build()
	second := ctx.WithSuggestion("Disable it").Build()

	if first.Issue != PackageDirNotFoundId || first.Guide() == nil {
		t.Errorf("Issue = %d, guide = %v", first.Issue, first.Guide())
	}
	if len(first.Suggestions) != 2 {
		t.Errorf("first build should keep its own suggestions, got %v", first.Suggestions)
	}
	if len(second.Suggestions) != 3 {
		t.Errorf("second build suggestions = %v", second.Suggestions)
	}
}

func TestErrorContext_PermissionDenied(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("install failed: %w", &fs.PathError{Op: "mkdir", Path: "/opt/x/bin", Err: fs.ErrPermission})
	ae := NewErrorContext().
		WithIssue(InstallFailedId).
		WithOperation("install lgrind").
		Wrap(cause).
		Build()

	if ae.Issue != PermissionDeniedId {
		t.Errorf("Issue = %d, want PermissionDeniedId", ae.Issue)
	}
	if ae.Guide() == nil || !strings.Contains(ae.Guide().mdMsg, "Permission denied") {
		t.Errorf("Guide() = %+v", ae.Guide())
	}
	if got := ae.Suggestions; len(got) != 1 || got[0] != permissionHint {
		t.Errorf("Suggestions = %v", got)
	}

	other := NewErrorContext().WithIssue(InstallFailedId).WithOperation("install lgrind").Wrap(errors.New("boom")).Build()
	if other.Issue != InstallFailedId {
		t.Errorf("unrelated cause changed the guide to %d", other.Issue)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if err := WrapWithContext(nil, "write run record", "/x"); err != nil {
		t.Errorf("WrapWithContext(nil) = %v, want nil", err)
	}

	path := filepath.Join(t.TempDir(), "missing", "record.toml")
	_, cause := os.ReadFile(path)
	err := WrapWithContext(cause, "write run record", path)

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *ActionableError", err)
	}
	if ae.Operation != "write run record" || ae.Resource != path || ae.Issue != 0 {
		t.Errorf("ActionableError = %+v", ae)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should reach fs.ErrNotExist")
	}

	denied := WrapWithContext(&fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}, "write build variables", path)
	if !errors.As(denied, &ae) || ae.Issue != PermissionDeniedId {
		t.Errorf("permission failure = %+v, want PermissionDeniedId", ae)
	}
}
