// SPDX-License-Identifier: MPL-2.0

package buildvars

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"lukechampine.com/blake3"
)

// digestSize is the BLAKE3 output length in bytes.
const digestSize = 32

type (
	// Record is the persisted summary of one configuration run.
	Record struct {
		GeneratedAt time.Time         `toml:"generated_at"`
		Root        string            `toml:"root"`
		Arch        string            `toml:"arch"`
		Packages    []PackageRecord   `toml:"packages"`
		Actions     []Action          `toml:"actions"`
		Variables   map[string]string `toml:"variables"`
	}

	// PackageRecord is the outcome of one package.
	PackageRecord struct {
		Name     string `toml:"name"`
		State    string `toml:"state"`
		Artifact string `toml:"artifact,omitempty"`
		Digest   string `toml:"digest,omitempty"`
		Reason   string `toml:"reason,omitempty"`
	}
)

// NewRecord starts a record holding the registry's current variables and notes.
func (r *Registry) NewRecord(root, arch string) *Record {
	return &Record{
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Root:        root,
		Arch:        arch,
		Actions:     r.Actions(),
		Variables:   r.Variables(),
	}
}

// WriteRecord marshals rec as TOML into path, creating parent directories.
func WriteRecord(path string, rec *Record) error {
	data, err := toml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// ReadRecord loads a record written by WriteRecord.
func ReadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	var rec Record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing record TOML: %w", err)
	}
	return &rec, nil
}

// Digest returns the hex BLAKE3-256 digest of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New(digestSize, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
