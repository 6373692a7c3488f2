package app

import (
	"context"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/engine/workspace"
)

// Apply exposes apply for testing.
func (a *App) Apply(ctx context.Context, s *Session, set *domain.OperationSet, mode workspace.Mode) (domain.Outcome, error) {
	return a.apply(ctx, s, set, mode)
}
