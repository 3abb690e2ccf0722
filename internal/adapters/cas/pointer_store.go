// Package cas implements the content-addressed pointer and output stores.
package cas

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/collector/internal/core/domain"
	"go.trai.ch/collector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PointerStore = (*PointerStore)(nil)

// PointerStore persists pointer records as JSON files under
// {root}/hashes/{namespace}/{key}/{fingerprint}.json. The namespace owns its
// subtree exclusively, so keys can never collide across namespaces.
type PointerStore struct {
	root string
}

// NewPointerStore creates a PointerStore rooted at the given cache directory.
func NewPointerStore(root string) *PointerStore {
	return &PointerStore{root: filepath.Clean(root)}
}

func (s *PointerStore) recordPath(namespace, key string, fp domain.Fingerprint) string {
	return filepath.Join(s.root, "hashes", namespace, key, fp.String()+".json")
}

// Load returns the pointer for the given coordinates. Both a missing file
// and an unparsable one yield domain.ErrPointerNotFound: corruption degrades
// to a cache miss, never to a crash.
func (s *PointerStore) Load(namespace, key string, fp domain.Fingerprint) (*domain.Pointer, error) {
	path := s.recordPath(namespace, key, fp)

	//nolint:gosec // Path is derived from the store root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrPointerNotFound, "no record on disk"), "path", path)
	}

	var ptr domain.Pointer
	if err := json.Unmarshal(data, &ptr); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrPointerNotFound, "record unparsable"), "path", path)
	}
	return &ptr, nil
}

// Save writes the pointer record, creating intermediate directories as
// needed. Writing the same fingerprint twice overwrites with identical
// content.
func (s *PointerStore) Save(namespace, key string, fp domain.Fingerprint, ptr domain.Pointer) error {
	path := s.recordPath(namespace, key, fp)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create pointer directory"), "path", path)
	}

	data, err := json.MarshalIndent(ptr, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal pointer")
	}

	//nolint:gosec // Path is derived from the store root
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write pointer record"), "path", path)
	}
	return nil
}
