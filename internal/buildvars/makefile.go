// SPDX-License-Identifier: MPL-2.0

package buildvars

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteMakefile writes the variables as make assignments, one per line and
// sorted by name.
func (r *Registry) WriteMakefile(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, name := range r.Names() {
		if _, err := fmt.Fprintf(bw, "%s = %s\n", name, escapeMake(r.vars[name])); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteMakefileTo writes the make include file to path, creating parent
// directories as needed.
func (r *Registry) WriteMakefileTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.WriteMakefile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// escapeMake protects characters make would otherwise interpret in a value.
func escapeMake(v string) string {
	v = strings.ReplaceAll(v, "$", "$$")
	v = strings.ReplaceAll(v, "#", `\#`)
	return strings.ReplaceAll(v, "\n", " ")
}
