// Package workspace computes and applies workspace operation sets.
package workspace

import (
	"slices"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/zerr"
)

// Target is the unification package and the context needed to edit manifests against it.
type Target struct {
	Package *domain.PackageMetadata
	Context domain.EditContext
}

// ResolveTarget finds the configured unification package in g.
func ResolveTarget(g *domain.PackageGraph, cfg *domain.Config) (*Target, error) {
	p, err := g.MemberByName(cfg.UnificationPackage)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrUnificationPackageMissing.Error()), "package", cfg.UnificationPackage)
	}
	return &Target{
		Package: p,
		Context: domain.EditContext{
			Root:           g.Root(),
			UnifierName:    p.Name.String(),
			UnifierDir:     p.Dir(),
			UnifierVersion: p.Version.String(),
			DepFormat:      cfg.DepFormat,
		},
	}, nil
}

// ManageDeps computes the operations that bring members in line with the exclude list.
// Selected members that are not excluded gain an edge if they lack one; every
// excluded member loses its edge if it has one. Members already in the right
// state contribute nothing.
func (t *Target) ManageDeps(g *domain.PackageGraph, selection, excludes domain.PackageSet) *domain.OperationSet {
	set := &domain.OperationSet{Context: t.Context}
	to := t.Package.Index
	for _, p := range g.Members() {
		if p.Index == to {
			continue
		}
		linked := g.DependsOn(p.Index, to)
		switch {
		case excludes.Contains(p.Index):
			if linked {
				set.Ops = append(set.Ops, domain.RemoveEdge{From: p})
			}
		case selection.Contains(p.Index):
			if !linked {
				set.Ops = append(set.Ops, domain.AddEdge{From: p})
			}
		}
	}
	return set
}

// ManageAll returns a single reconcile operation over the selection that is
// applied against the manifests on disk instead of the graph snapshot.
func (t *Target) ManageAll(g *domain.PackageGraph, selection, excludes domain.PackageSet) *domain.OperationSet {
	var op domain.ManageEdges
	for _, p := range g.Members() {
		switch {
		case p.Index == t.Package.Index:
		case excludes.Contains(p.Index):
			op.Exclude = append(op.Exclude, p)
		case selection.Contains(p.Index):
			op.Include = append(op.Include, p)
		}
	}
	set := &domain.OperationSet{Context: t.Context}
	if len(op.Include) > 0 || len(op.Exclude) > 0 {
		set.Ops = append(set.Ops, op)
	}
	return set
}

// RemoveDeps computes edge removals for the selected members.
// With force, members are included even if the graph shows no edge.
func (t *Target) RemoveDeps(g *domain.PackageGraph, selection domain.PackageSet, force bool) *domain.OperationSet {
	set := &domain.OperationSet{Context: t.Context}
	for _, p := range t.selected(g, selection) {
		if force || g.DependsOn(p.Index, t.Package.Index) {
			set.Ops = append(set.Ops, domain.RemoveEdge{From: p})
		}
	}
	return set
}

// AddDeps computes edge additions for the selected members.
// With force, members are included even if the graph already shows an edge.
func (t *Target) AddDeps(g *domain.PackageGraph, selection domain.PackageSet, force bool) *domain.OperationSet {
	set := &domain.OperationSet{Context: t.Context}
	for _, p := range t.selected(g, selection) {
		if force || !g.DependsOn(p.Index, t.Package.Index) {
			set.Ops = append(set.Ops, domain.AddEdge{From: p, Force: force})
		}
	}
	return set
}

func (t *Target) selected(g *domain.PackageGraph, selection domain.PackageSet) []*domain.PackageMetadata {
	members := g.Members()
	return slices.DeleteFunc(members, func(p *domain.PackageMetadata) bool {
		return p.Index == t.Package.Index || !selection.Contains(p.Index)
	})
}
