package metadata

import (
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FeatureResolver = (*Resolver)(nil)

// Resolver implements ports.FeatureResolver on the features the build tool
// already resolved for the whole workspace. It decides which packages are
// built for the target and host platforms by walking dependency edges.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

type side uint8

const (
	sideTarget side = iota
	sideHost
)

type walk struct {
	g       *domain.PackageGraph
	opts    domain.ResolutionOptions
	omitted domain.PackageSet
	seen    [2]domain.PackageSet
	order   [2][]int
	queue   [2][]int
}

// Resolve walks the graph from initials.
func (r *Resolver) Resolve(
	g *domain.PackageGraph,
	initials, featuresOnly domain.PackageSet,
	opts domain.ResolutionOptions,
) (*domain.ResolvedSet, error) {
	w := &walk{
		g:       g,
		opts:    opts,
		omitted: domain.NewPackageSet(),
		seen:    [2]domain.PackageSet{domain.NewPackageSet(), domain.NewPackageSet()},
	}
	for _, id := range opts.OmittedPackages {
		p, err := g.Metadata(id)
		if err != nil {
			return nil, zerr.Wrap(err, "omitted package is not in the package graph")
		}
		w.omitted.Add(p.Index)
	}

	set := &domain.ResolvedSet{
		Initials:         initials,
		TargetDirectDeps: domain.NewPackageSet(),
		HostDirectDeps:   domain.NewPackageSet(),
	}

	for _, ix := range initials.Indices() {
		w.visit(sideTarget, ix)
	}

	for len(w.queue[sideTarget]) > 0 || len(w.queue[sideHost]) > 0 {
		for _, s := range []side{sideTarget, sideHost} {
			for len(w.queue[s]) > 0 {
				ix := w.queue[s][0]
				w.queue[s] = w.queue[s][1:]
				if err := w.expand(s, ix, initials, set); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, ix := range featuresOnly.Indices() {
		set.FeaturesOnly = append(set.FeaturesOnly, w.features(ix))
	}
	for _, ix := range w.order[sideTarget] {
		set.Target = append(set.Target, w.features(ix))
	}
	for _, ix := range w.order[sideHost] {
		set.Host = append(set.Host, w.features(ix))
	}
	return set, nil
}

func (w *walk) visit(s side, ix int) {
	if w.omitted.Contains(ix) || w.seen[s].Contains(ix) {
		return
	}
	w.seen[s].Add(ix)
	w.order[s] = append(w.order[s], ix)
	w.queue[s] = append(w.queue[s], ix)
}

func (w *walk) platform(s side) *domain.Platform {
	if s == sideHost {
		return w.opts.HostPlatform
	}
	return w.opts.TargetPlatform
}

// expand follows the outgoing edges of the package at ix built on side s.
func (w *walk) expand(s side, ix int, initials domain.PackageSet, set *domain.ResolvedSet) error {
	initial := s == sideTarget && initials.Contains(ix)

	for _, link := range w.g.Links(ix) {
		to := w.g.Package(link.To)
		for _, kind := range link.Kinds {
			sides, err := w.follow(s, kind, to, initial)
			if err != nil {
				return zerr.With(err, "package", w.g.Package(ix).Name.String())
			}
			for _, next := range sides {
				if initial && !w.omitted.Contains(link.To) {
					if next == sideHost {
						set.HostDirectDeps.Add(link.To)
					} else {
						set.TargetDirectDeps.Add(link.To)
					}
				}
				w.visit(next, link.To)
			}
		}
	}
	return nil
}

// follow returns the sides an edge of the given kind is built on.
// Proc macros run on the host and are only also built for the target when configured.
func (w *walk) follow(s side, kind domain.EdgeKind, to *domain.PackageMetadata, initial bool) ([]side, error) {
	if w.opts.Version != domain.ResolverV1 {
		ok, err := w.platform(s).Eval(kind.Target)
		if err != nil || !ok {
			return nil, err
		}
	}

	switch kind.Kind {
	case domain.DepDev:
		if !initial || !w.opts.IncludeDev {
			return nil, nil
		}
	case domain.DepBuild:
		return []side{sideHost}, nil
	}

	if s == sideTarget && to.ProcMacro {
		if w.opts.ProcMacrosOnTarget {
			return []side{sideHost, sideTarget}, nil
		}
		return []side{sideHost}, nil
	}
	return []side{s}, nil
}

func (w *walk) features(ix int) domain.FeatureList {
	return domain.FeatureList{
		Index:    ix,
		Features: domain.Strings(w.g.Package(ix).EnabledFeatures),
	}
}
