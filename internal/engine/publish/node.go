package publish

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unify/internal/adapters/buildtool" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/engine/workspace"
)

// NodeID is the unique identifier for the publish workflow Graft node.
const NodeID graft.ID = "engine.publish"

func init() {
	graft.Register(graft.Node[*Workflow]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			workspace.NodeID,
			buildtool.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Workflow, error) {
			orchestrator, err := graft.Dep[*workspace.Orchestrator](ctx)
			if err != nil {
				return nil, err
			}

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

			return New(orchestrator.Applier(), build, log, tracer), nil
		},
	})
}
