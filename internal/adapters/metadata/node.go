package metadata

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unify/internal/adapters/buildtool"
	"go.trai.ch/unify/internal/adapters/shell"
	"go.trai.ch/unify/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the graph loader Graft node.
	NodeID graft.ID = "adapter.graph_loader"
	// ResolverNodeID is the unique identifier for the feature resolver Graft node.
	ResolverNodeID graft.ID = "adapter.feature_resolver"
)

func init() {
	graft.Register(graft.Node[ports.GraphLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.GraphLoader, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(executor, buildtool.Binary()), nil
		},
	})

	graft.Register(graft.Node[ports.FeatureResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FeatureResolver, error) {
			return NewResolver(), nil
		},
	})
}
