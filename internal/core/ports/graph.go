package ports

import (
	"context"

	"go.trai.ch/unify/internal/core/domain"
)

// GraphLoader builds the package graph of a workspace.
//
//go:generate go run go.uber.org/mock/mockgen -source=graph.go -destination=mocks/mock_graph.go -package=mocks
type GraphLoader interface {
	// Load runs the build tool's metadata command in dir and returns the resulting graph.
	Load(ctx context.Context, dir string) (*domain.PackageGraph, error)
}

// FeatureResolver computes which packages and features belong to a build.
type FeatureResolver interface {
	// Resolve resolves the initial packages for the target and host platforms.
	// Packages in featuresOnly contribute their features but not their dependencies.
	Resolve(g *domain.PackageGraph, initials, featuresOnly domain.PackageSet, opts domain.ResolutionOptions) (*domain.ResolvedSet, error)
}
