package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unify/internal/core/ports"
)

// NodeID is the unique identifier for the section generator Graft node.
const NodeID graft.ID = "adapter.section_generator"

func init() {
	graft.Register(graft.Node[ports.SectionGenerator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SectionGenerator, error) {
			return New(), nil
		},
	})
}
