// Package fs provides file system adapters for hashing and copying trees.
package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content digests of declared source files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash reads every path relative to baseDir and returns the per-file digest
// set. Any missing or unreadable source aborts the whole evaluation with
// domain.ErrSourceMissing; partial hash sets are never returned.
func (h *Hasher) Hash(paths []string, baseDir string) (domain.SourceHashSet, error) {
	set := make(domain.SourceHashSet, len(paths))
	for _, p := range paths {
		sum, err := h.hashFile(filepath.Join(baseDir, p))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrSourceMissing, err.Error()), "path", p)
		}
		set[p] = sum
	}
	return set, nil
}

func (h *Hasher) hashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
