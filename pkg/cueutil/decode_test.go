// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Config: {
	batch?: bool
	timeouts?: {
		build?: int & >0
	}
	packages?: [string]: {
		enabled?: bool
	}
}
`

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	t.Run("valid data decodes", func(t *testing.T) {
		t.Parallel()
		data := []byte(`
batch: true
packages: lgrind: enabled: true
`)
		got, err := DecodeMap([]byte(testSchema), data, "#Config", "depconf.cue")
		if err != nil {
			t.Fatalf("DecodeMap() error = %v", err)
		}
		if got["batch"] != true {
			t.Errorf("batch = %v, want true", got["batch"])
		}
		pkgs, ok := got["packages"].(map[string]any)
		if !ok {
			t.Fatalf("packages has type %T", got["packages"])
		}
		lgrind, ok := pkgs["lgrind"].(map[string]any)
		if !ok || lgrind["enabled"] != true {
			t.Errorf("packages.lgrind = %v", pkgs["lgrind"])
		}
	})

	t.Run("schema violation reports path", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeMap([]byte(testSchema), []byte(`timeouts: build: 0`), "#Config", "depconf.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "timeouts.build") {
			t.Errorf("error should name the field path, got: %v", err)
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeMap([]byte(testSchema), []byte(`bogus: 1`), "#Config", "depconf.cue")
		if err == nil {
			t.Fatal("expected error for field not allowed by a closed definition")
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeMap([]byte(testSchema), []byte(`batch: {`), "#Config", "depconf.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "depconf.cue") {
			t.Errorf("error should name the file, got: %v", err)
		}
	})
}
