package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unify/internal/core/ports"
)

// NodeID is the unique identifier for the summary store Graft node.
const NodeID graft.ID = "adapter.summary_store"

func init() {
	graft.Register(graft.Node[ports.SummaryStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SummaryStore, error) {
			return NewStore(), nil
		},
	})
}
