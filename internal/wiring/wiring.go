// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/collector/internal/adapters/config"
	_ "go.trai.ch/collector/internal/adapters/fs"
	_ "go.trai.ch/collector/internal/adapters/logger"
	_ "go.trai.ch/collector/internal/adapters/shell"
	_ "go.trai.ch/collector/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/collector/internal/app"
)
