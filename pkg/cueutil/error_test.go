// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		if err := FormatError(nil, "depconf.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with file path", func(t *testing.T) {
		t.Parallel()
		original := errors.New("boom")
		err := FormatError(original, "depconf.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.HasPrefix(err.Error(), "depconf.cue: ") {
			t.Errorf("error should start with the file path, got: %v", err)
		}
		if !errors.Is(err, original) {
			t.Error("error should wrap the original error")
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path []string
		want string
	}{
		{name: "empty", path: nil, want: ""},
		{name: "single", path: []string{"batch"}, want: "batch"},
		{name: "nested", path: []string{"packages", "lgrind", "enabled"}, want: "packages.lgrind.enabled"},
		{name: "list index", path: []string{"packages", "lgrind", "download", "1"}, want: "packages.lgrind.download[1]"},
		{name: "leading digits stay a field", path: []string{"0", "x"}, want: "0.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 100), 100, "depconf.cue"); err != nil {
		t.Errorf("data at the limit should pass, got %v", err)
	}

	err := CheckFileSize(make([]byte, 101), 100, "depconf.cue")
	if err == nil {
		t.Fatal("expected error for oversized data")
	}
	for _, want := range []string{"depconf.cue", "101", "100"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err, want)
		}
	}
}
