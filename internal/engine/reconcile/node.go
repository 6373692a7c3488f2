package reconcile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unify/internal/adapters/buildtool" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/core/ports"
)

// NodeID is the unique identifier for the reconciler Graft node.
const NodeID graft.ID = "engine.reconcile"

func init() {
	graft.Register(graft.Node[*Reconciler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			buildtool.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Reconciler, error) {
			build, err := graft.Dep[ports.BuildTool](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(build, log, tracer), nil
		},
	})
}
