// Package domaintest provides package graph fixtures for tests.
package domaintest

import (
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/core/domain"
)

// Builder assembles a PackageGraph for tests.
type Builder struct {
	t    testing.TB
	root string
	g    *domain.PackageGraph
}

// NewBuilder creates a builder for a workspace rooted at root.
func NewBuilder(t testing.TB, root string) *Builder {
	t.Helper()
	return &Builder{t: t, root: root, g: domain.NewPackageGraph(root)}
}

// Member adds a workspace member at a workspace-relative path.
func (b *Builder) Member(name, version, path string, features ...string) domain.PackageID {
	b.t.Helper()
	return b.add(name, version, domain.PackageSource{Kind: domain.SourceWorkspace, Path: path},
		filepath.Join(b.root, path, domain.ManifestFileName), features)
}

// Registry adds a package from the public registry.
func (b *Builder) Registry(name, version string, features ...string) domain.PackageID {
	b.t.Helper()
	return b.add(name, version, domain.PackageSource{Kind: domain.SourceExternal, Repr: domain.PublicRegistryURL},
		filepath.Join("/registry", name+"-"+version, domain.ManifestFileName), features)
}

// External adds a package from a non-public source such as a git repository.
func (b *Builder) External(name, version, repr string) domain.PackageID {
	b.t.Helper()
	return b.add(name, version, domain.PackageSource{Kind: domain.SourceExternal, Repr: repr},
		filepath.Join("/git", name, domain.ManifestFileName), nil)
}

// Path adds a non-workspace package on the local filesystem.
func (b *Builder) Path(name, version, path string) domain.PackageID {
	b.t.Helper()
	return b.add(name, version, domain.PackageSource{Kind: domain.SourcePath, Path: path},
		filepath.Join(b.root, path, domain.ManifestFileName), nil)
}

// ProcMacro marks a package as a procedural macro.
func (b *Builder) ProcMacro(id domain.PackageID) {
	b.t.Helper()
	p, err := b.g.Metadata(id)
	require.NoError(b.t, err)
	p.ProcMacro = true
}

// Link adds a normal dependency edge.
func (b *Builder) Link(from, to domain.PackageID, kinds ...domain.EdgeKind) {
	b.t.Helper()
	if len(kinds) == 0 {
		kinds = []domain.EdgeKind{{Kind: domain.DepNormal}}
	}
	p, err := b.g.Metadata(to)
	require.NoError(b.t, err)
	require.NoError(b.t, b.g.AddLink(from, to, p.Name.String(), kinds))
}

// Graph returns the assembled graph.
func (b *Builder) Graph() *domain.PackageGraph {
	return b.g
}

// Index returns the graph index of id.
func (b *Builder) Index(id domain.PackageID) int {
	b.t.Helper()
	p, err := b.g.Metadata(id)
	require.NoError(b.t, err)
	return p.Index
}

func (b *Builder) add(name, version string, src domain.PackageSource, manifest string, features []string) domain.PackageID {
	b.t.Helper()
	id := domain.PackageID(name + " " + version + " (" + src.Path + src.Repr + ")")
	_, err := b.g.AddPackage(domain.PackageMetadata{
		ID:              id,
		Name:            domain.NewInternedString(name),
		Version:         semver.MustParse(version),
		Source:          src,
		ManifestPath:    manifest,
		EnabledFeatures: domain.NewInternedStrings(features),
	})
	require.NoError(b.t, err)
	return id
}
