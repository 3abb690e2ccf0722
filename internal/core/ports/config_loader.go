package ports

import "go.trai.ch/collector/internal/core/domain"

// ConfigLoader defines the interface for loading the collector descriptor.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the descriptor from the given working directory and
	// returns the normalized manifest. Invalid entries are skipped with a
	// warning; only an unreadable or unparsable descriptor is an error.
	Load(cwd string) (*domain.Manifest, error)
}
