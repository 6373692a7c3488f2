package ports

import (
	"context"

	"go.trai.ch/unify/internal/core/domain"
)

// ManifestEditor edits package manifests in place.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestEditor interface {
	// AddDependency adds the unification package to the member's dependencies.
	// It is a no-op if the dependency is already present.
	AddDependency(ec domain.EditContext, member *domain.PackageMetadata) error

	// RemoveDependency removes the unification package from the member's dependencies.
	// It is a no-op if the dependency is absent.
	RemoveDependency(ec domain.EditContext, member *domain.PackageMetadata) error

	// Dependents reports, per member name, whether its manifest currently depends on dep.
	Dependents(ctx context.Context, members []*domain.PackageMetadata, dep string) (map[string]bool, error)

	// CreatePackage writes a new package below the workspace root.
	CreatePackage(root string, op domain.CreatePackage) error

	// WriteConfig writes a file below the workspace root.
	WriteConfig(root string, op domain.WriteConfig) error
}

// ManagedFile is a manifest whose managed section is regenerated by unify.
type ManagedFile interface {
	// Path is the absolute path of the file.
	Path() string
	// Section returns the current contents of the managed section.
	Section() string
	// WriteSection replaces the managed section and writes the file.
	WriteSection(contents string) error
}

// SectionGenerator renders and reads the managed section of the unification manifest.
type SectionGenerator interface {
	// Render returns the managed section contents for a resolution.
	Render(g *domain.PackageGraph, set *domain.ResolvedSet, cfg *domain.Config) (string, error)
	// Open reads the manifest of the unification package.
	Open(manifestPath string) (ManagedFile, error)
}
