package ports

import "go.trai.ch/collector/internal/core/domain"

// PointerStore persists pointer records keyed by (namespace, key, fingerprint).
//
//go:generate go run go.uber.org/mock/mockgen -source=pointer_store.go -destination=mocks/mock_pointer_store.go -package=mocks
type PointerStore interface {
	// Load returns the pointer for the given coordinates. A missing or
	// unparsable record yields domain.ErrPointerNotFound; corruption must
	// degrade to a cache miss, never propagate as a distinct failure.
	Load(namespace, key string, fp domain.Fingerprint) (*domain.Pointer, error)

	// Save writes the pointer record, creating intermediate directories as
	// needed. Saving the same fingerprint twice overwrites with identical
	// content.
	Save(namespace, key string, fp domain.Fingerprint, ptr domain.Pointer) error
}
