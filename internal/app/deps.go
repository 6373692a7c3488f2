package app

import (
	"context"
	"fmt"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/engine/publish"
	"go.trai.ch/unify/internal/engine/workspace"
)

// DepsOptions configures manage-deps and remove-deps.
type DepsOptions struct {
	// Packages selects members by name. Empty selects the whole workspace.
	Packages []string
	Mode     workspace.Mode
	// FromDisk plans a single operation that is checked against the manifests
	// on disk when applied, instead of against the loaded graph.
	FromDisk bool
}

// ManageDeps adds the dependency on the unification package to every
// selected member and removes it from excluded members.
func (a *App) ManageDeps(ctx context.Context, opts DepsOptions) (domain.Outcome, error) {
	ctx, span := a.tracer.Start(ctx, "manage_deps")
	defer span.End()

	s, err := a.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	g, err := s.Graph()
	if err != nil {
		return domain.OutcomeUnchanged, err
	}
	sel, err := selection(g, opts.Packages)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	excludes, err := g.ResolveWorkspaceNames(s.Config.Excludes)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}

	set := s.Target.ManageDeps(g, sel, excludes)
	if opts.FromDisk {
		set = s.Target.ManageAll(g, sel, excludes)
	}
	return a.apply(ctx, s, set, opts.Mode)
}

// RemoveDeps removes the dependency on the unification package from every selected member.
func (a *App) RemoveDeps(ctx context.Context, opts DepsOptions) (domain.Outcome, error) {
	ctx, span := a.tracer.Start(ctx, "remove_deps")
	defer span.End()

	s, err := a.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	g, err := s.Graph()
	if err != nil {
		return domain.OutcomeUnchanged, err
	}
	sel, err := selection(g, opts.Packages)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	return a.apply(ctx, s, s.Target.RemoveDeps(g, sel, false), opts.Mode)
}

// Publish publishes a member with its dependency on the unification package
// temporarily removed. Args are passed through to the build tool.
func (a *App) Publish(ctx context.Context, name string, args []string) error {
	ctx, span := a.tracer.Start(ctx, "publish_command", ports.WithAttribute("package", name))
	defer span.End()

	s, err := a.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	g, err := s.Graph()
	if err != nil {
		return err
	}
	member, err := g.MemberByName(name)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if member.Index == s.Target.Package.Index {
		a.logger.Warn(fmt.Sprintf("%s is the unification package and is not meant to be published", name))
	}

	rep, err := a.publisher.Run(ctx, publish.Request{
		Graph:  g,
		Target: s.Target,
		Member: member,
		Args:   args,
	})
	if rep != nil && rep.Removed {
		s.stale = true
	}
	return err
}
