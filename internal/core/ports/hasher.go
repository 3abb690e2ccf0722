// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/collector/internal/core/domain"

// Hasher defines the interface for computing source content hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Hash reads every path relative to baseDir and returns its content
	// digest. It fails with domain.ErrSourceMissing if any declared source
	// is absent or unreadable; a partial set is never returned.
	Hash(paths []string, baseDir string) (domain.SourceHashSet, error)
}
