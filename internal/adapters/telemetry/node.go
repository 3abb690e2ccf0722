package telemetry

import (
	"context"
	"os"
	"strconv"

	"github.com/grindlemire/graft"
	"go.trai.ch/collector/internal/adapters/telemetry/progrock"
	"go.trai.ch/collector/internal/core/ports"
)

// NodeID is the unique identifier for the Telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

// progressEnv opts into the progrock tape renderer. The default stays quiet
// so log output remains the single stream in CI.
const progressEnv = "COLLECTOR_PROGRESS"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if on, _ := strconv.ParseBool(os.Getenv(progressEnv)); on {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
