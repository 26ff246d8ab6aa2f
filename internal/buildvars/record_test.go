// SPDX-License-Identifier: MPL-2.0

package buildvars

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecord_WriteRead(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.SetVariable("LGRIND", "/opt/x/bin/lgrind")
	r.NoteAction("lgrind", "Install", "Installed lgrind into /opt/x")

	rec := r.NewRecord("/opt", "x")
	rec.Packages = []PackageRecord{
		{Name: "lgrind", State: "Installed", Artifact: "/opt/x/bin/lgrind", Digest: "abc"},
		{Name: "other", State: "SoftFailed", Reason: "build failed"},
	}

	path := filepath.Join(t.TempDir(), "conf", "depconf-record.toml")
	if err := WriteRecord(path, rec); err != nil {
		t.Fatalf("WriteRecord() error = %v", err)
	}

	got, err := ReadRecord(path)
	if err != nil {
		t.Fatalf("ReadRecord() error = %v", err)
	}

	if got.Root != "/opt" || got.Arch != "x" {
		t.Errorf("Root/Arch = %q/%q", got.Root, got.Arch)
	}
	if !got.GeneratedAt.Equal(rec.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, rec.GeneratedAt)
	}
	if len(got.Packages) != 2 || got.Packages[1].Reason != "build failed" || got.Packages[0].Digest != "abc" {
		t.Errorf("Packages = %+v", got.Packages)
	}
	if len(got.Actions) != 1 || got.Variables["LGRIND"] != "/opt/x/bin/lgrind" {
		t.Errorf("Actions/Variables = %+v / %+v", got.Actions, got.Variables)
	}
}

func TestReadRecord_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := ReadRecord(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("ReadRecord() should fail for a missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("packages = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRecord(bad); err == nil {
		t.Error("ReadRecord() should fail for malformed TOML")
	}
}

func TestDigest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		content string
		want    string
	}{
		{"", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
		{"abc", "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85"},
	}

	for i, tt := range tests {
		path := filepath.Join(dir, "f"+string(rune('0'+i)))
		if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := Digest(path)
		if err != nil {
			t.Fatalf("Digest() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("Digest(%q) = %s, want %s", tt.content, got, tt.want)
		}
	}

	if _, err := Digest(filepath.Join(dir, "missing")); err == nil {
		t.Error("Digest() should fail for a missing file")
	}
}
