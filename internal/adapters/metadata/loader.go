// Package metadata builds the package graph from the build tool's metadata output.
package metadata

import (
	"context"
	"encoding/json"
	"path/filepath"
	"slices"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphLoader = (*Loader)(nil)

// Loader implements ports.GraphLoader by running `<tool> metadata`.
type Loader struct {
	executor ports.Executor
	binary   string
}

// NewLoader creates a new Loader invoking binary through executor.
func NewLoader(executor ports.Executor, binary string) *Loader {
	return &Loader{executor: executor, binary: binary}
}

// Load runs the metadata command in dir and builds the package graph.
func (l *Loader) Load(ctx context.Context, dir string) (*domain.PackageGraph, error) {
	out, err := l.executor.Output(ctx, ports.Command{
		Dir:  dir,
		Name: l.binary,
		Args: []string{"metadata", "--format-version", "1"},
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrMetadataFailed.Error())
	}
	return Parse(out)
}

// Parse builds a package graph from metadata JSON.
func Parse(data []byte) (*domain.PackageGraph, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrMetadataFailed.Error())
	}
	if doc.Resolve == nil {
		return nil, zerr.Wrap(domain.ErrMetadataFailed, "metadata has no resolved dependency graph")
	}

	nodes := make(map[string]*nodeDTO, len(doc.Resolve.Nodes))
	for i := range doc.Resolve.Nodes {
		nodes[doc.Resolve.Nodes[i].ID] = &doc.Resolve.Nodes[i]
	}

	g := domain.NewPackageGraph(doc.WorkspaceRoot)
	for _, p := range doc.Packages {
		meta, err := toMetadata(doc.WorkspaceRoot, p, slices.Contains(doc.WorkspaceMembers, p.ID), nodes[p.ID])
		if err != nil {
			return nil, err
		}
		if _, err := g.AddPackage(meta); err != nil {
			return nil, err
		}
	}

	for _, n := range doc.Resolve.Nodes {
		for _, dep := range n.Deps {
			if err := g.AddLink(domain.PackageID(n.ID), domain.PackageID(dep.Pkg), dep.Name, edgeKinds(dep.DepKinds)); err != nil {
				return nil, zerr.Wrap(err, domain.ErrMetadataFailed.Error())
			}
		}
	}
	return g, nil
}

func toMetadata(root string, p packageDTO, member bool, node *nodeDTO) (domain.PackageMetadata, error) {
	version, err := semver.StrictNewVersion(p.Version)
	if err != nil {
		return domain.PackageMetadata{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidVersion.Error()), "package", p.Name)
	}

	meta := domain.PackageMetadata{
		ID:           domain.PackageID(p.ID),
		Name:         domain.NewInternedString(p.Name),
		Version:      version,
		Source:       packageSource(root, p, member),
		ManifestPath: p.ManifestPath,
		ProcMacro:    isProcMacro(p.Targets),
	}
	if node != nil {
		meta.EnabledFeatures = domain.NewInternedStrings(node.Features)
	}
	return meta, nil
}

func packageSource(root string, p packageDTO, member bool) domain.PackageSource {
	if p.Source != nil {
		return domain.PackageSource{Kind: domain.SourceExternal, Repr: *p.Source}
	}

	dir := filepath.Dir(p.ManifestPath)
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		rel = dir
	}
	rel = filepath.ToSlash(rel)

	if member {
		return domain.PackageSource{Kind: domain.SourceWorkspace, Path: rel}
	}
	return domain.PackageSource{Kind: domain.SourcePath, Path: rel}
}

func isProcMacro(targets []targetDTO) bool {
	for _, t := range targets {
		if slices.Contains(t.Kind, "proc-macro") {
			return true
		}
	}
	return false
}

func edgeKinds(kinds []depKindDTO) []domain.EdgeKind {
	out := make([]domain.EdgeKind, 0, len(kinds))
	for _, k := range kinds {
		ek := domain.EdgeKind{Kind: domain.DepNormal}
		if k.Kind != nil {
			switch *k.Kind {
			case "dev":
				ek.Kind = domain.DepDev
			case "build":
				ek.Kind = domain.DepBuild
			}
		}
		if k.Target != nil {
			ek.Target = *k.Target
		}
		out = append(out, ek)
	}
	return out
}
