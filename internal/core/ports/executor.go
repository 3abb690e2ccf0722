package ports

import (
	"context"

	"go.trai.ch/collector/internal/core/domain"
)

// Executor runs a unit's opaque command. The cache never interprets the
// command; it only needs the executor to report success or failure.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the unit's command with workDir as the working
	// directory and returns an error if the command fails.
	Execute(ctx context.Context, unit *domain.WorkUnit, workDir string) error
}
