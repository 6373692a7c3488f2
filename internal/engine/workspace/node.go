package workspace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unify/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/adapters/manifest"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/adapters/prompt"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/unify/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.workspace"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			prompt.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			editor, err := graft.Dep[ports.ManifestEditor](ctx)
			if err != nil {
				return nil, err
			}

			confirmer, err := graft.Dep[ports.Confirmer](ctx)
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

			return NewOrchestrator(NewApplier(editor), confirmer, log, tracer), nil
		},
	})
}
