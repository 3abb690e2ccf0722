package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// SourceHashSet maps a source path to the hex digest of its content.
// It is rebuilt from the live tree on every evaluation and never trusted
// from disk alone.
type SourceHashSet map[string]string

// Fingerprint is a single digest identifying one state of a unit's sources.
// It doubles as the output location id under content addressing.
type Fingerprint string

// String returns the hex form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// FingerprintOf derives the canonical fingerprint for a hash set.
// Entries are folded in lexicographic path order, so two sets with the same
// (path, hash) pairs produce the same fingerprint regardless of how they
// were assembled. Adding, removing, or changing any entry changes the result.
func FingerprintOf(hashes SourceHashSet) Fingerprint {
	paths := make([]string, 0, len(hashes))
	for p := range hashes {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	h := sha256.New()
	for _, p := range paths {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(hashes[p]))
		_, _ = h.Write([]byte{0})
	}
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
