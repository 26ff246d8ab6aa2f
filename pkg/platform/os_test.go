// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"slices"
	"testing"
)

func TestExecutableNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		want []string
	}{
		{name: "plain", base: "lgrind", want: []string{"lgrind.exe", "lgrind"}},
		{name: "dotted", base: "tool.v2", want: []string{"tool.v2.exe", "tool.v2"}},
		{name: "empty", base: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExecutableNames(tt.base); !slices.Equal(got, tt.want) {
				t.Errorf("ExecutableNames(%q) = %v, want %v", tt.base, got, tt.want)
			}
		})
	}
}
