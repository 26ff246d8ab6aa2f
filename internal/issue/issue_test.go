// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

// stubRender replaces the glamour renderer with an identity function.
func stubRender(t *testing.T) {
	t.Helper()
	original := render
	render = func(in string, _ string) (string, error) {
		return in, nil
	}
	t.Cleanup(func() { render = original })
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		contains string
	}{
		{ConfigLoadFailedId, "Failed to load configuration"},
		{PackageDirNotFoundId, "Package source not found"},
		{BuildFailedId, "Package build failed"},
		{InstallFailedId, "Package install failed"},
		{CommandTimedOutId, "Command timed out"},
		{RequiredPackageMissingId, "Required package not installed"},
		{PermissionDeniedId, "Permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			got := Get(tt.id)
			if got == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if got.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", got.Id(), tt.id)
			}
			if !strings.Contains(got.mdMsg, tt.contains) {
				t.Errorf("guide %d should contain %q", tt.id, tt.contains)
			}
		})
	}

	if Get(0) != nil {
		t.Error("Get(0) should return nil; zero means no guide")
	}
	if len(issues) != len(tests) {
		t.Errorf("catalog holds %d guides, table covers %d", len(issues), len(tests))
	}
}

func TestIssue_Render(t *testing.T) {
	stubRender(t)

	rendered, err := Get(PackageDirNotFoundId).Render(guideStyleForTest)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "externalpackages") {
		t.Errorf("Render() = %q, want the search locations", rendered)
	}
}

func TestIssue_RenderGlamour(t *testing.T) {
	for id, guide := range issues {
		rendered, err := guide.Render(guideStyleForTest)
		if err != nil {
			t.Errorf("guide %d failed to render: %v", id, err)
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("guide %d rendered empty", id)
		}
	}
}

const guideStyleForTest = "notty"
