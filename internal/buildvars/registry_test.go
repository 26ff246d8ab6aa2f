// SPDX-License-Identifier: MPL-2.0

package buildvars

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestRegistry_LastWriteWins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.SetVariable("LGRIND", "/first")
	r.SetVariable("LGRIND", "/second")

	if v, ok := r.Variable("LGRIND"); !ok || v != "/second" {
		t.Errorf("Variable(LGRIND) = %q, %v; want /second", v, ok)
	}
	if _, ok := r.Variable("MISSING"); ok {
		t.Error("Variable(MISSING) should not be found")
	}
}

func TestRegistry_CopiesAreIndependent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.SetVariable("A", "1")
	r.NoteAction("a", "Install", "Installed a")

	vars := r.Variables()
	vars["A"] = "changed"
	actions := r.Actions()
	actions[0].Message = "changed"

	if v, _ := r.Variable("A"); v != "1" {
		t.Error("Variables() should return a copy")
	}
	if r.Actions()[0].Message != "Installed a" {
		t.Error("Actions() should return a copy")
	}
}

func TestRegistry_WriteMakefile(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.SetVariable("LGRIND_DIR", "/pkg")
	r.SetVariable("LGRIND", "/opt/x/bin/lgrind")
	r.SetVariable("ODD", "a$b#c")

	var buf bytes.Buffer
	if err := r.WriteMakefile(&buf); err != nil {
		t.Fatalf("WriteMakefile() error = %v", err)
	}

	want := "LGRIND = /opt/x/bin/lgrind\nLGRIND_DIR = /pkg\nODD = a$$b\\#c\n"
	if buf.String() != want {
		t.Errorf("WriteMakefile() =\n%s\nwant\n%s", buf.String(), want)
	}

	if names := r.Names(); !slices.IsSorted(names) {
		t.Errorf("Names() = %v, want sorted", names)
	}
}

func TestRegistry_WriteMakefileTo(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.SetVariable("X", "1")

	path := filepath.Join(t.TempDir(), "conf", "depconfvariables")
	if err := r.WriteMakefileTo(path); err != nil {
		t.Fatalf("WriteMakefileTo() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "X = 1\n" {
		t.Errorf("file = %q", data)
	}
}
