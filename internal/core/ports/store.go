package ports

import "go.trai.ch/unify/internal/core/domain"

// SummaryStore defines the interface for storing and retrieving named build summaries.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SummaryStore interface {
	// Get retrieves the summary stored under name in the workspace at root.
	// Returns nil, nil if not found.
	Get(root, name string) (*domain.BuildSummary, error)

	// Put stores the summary under name in the workspace at root.
	// It reports whether the stored contents changed.
	Put(root, name string, summary *domain.BuildSummary) (bool, error)
}
