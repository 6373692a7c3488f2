package ports

import "go.trai.ch/unify/internal/core/domain"

// ConfigLoader defines the interface for loading the unify configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration of the workspace rooted at root.
	Load(root string) (*domain.Config, error)
}
