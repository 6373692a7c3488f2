package app

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
)

// Generate regenerates the managed section of the unification package.
// With diff, the section is compared and never written.
func (a *App) Generate(ctx context.Context, diff bool) (domain.Outcome, error) {
	ctx, span := a.tracer.Start(ctx, "generate", ports.WithAttribute("diff", diff))
	defer span.End()

	s, err := a.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	generated, err := a.render(s)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	return a.reconcile(ctx, s, generated, diff)
}

// Disable replaces the managed section with a notice that unification is off.
func (a *App) Disable(ctx context.Context, diff bool) (domain.Outcome, error) {
	ctx, span := a.tracer.Start(ctx, "disable", ports.WithAttribute("diff", diff))
	defer span.End()

	s, err := a.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	return a.reconcile(ctx, s, domain.DisabledMessage, diff)
}

// Verify checks that the unification package does its job: every member that
// is not excluded depends on it, no excluded member does, and the managed
// section matches what generate would write.
func (a *App) Verify(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "verify")
	defer span.End()

	s, err := a.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	problems, err := a.check(ctx, s)
	if err != nil {
		span.RecordError(err)
		return err
	}

	name := s.Target.Context.UnifierName
	if len(problems) == 0 {
		a.logger.Info(fmt.Sprintf("unification package %s works correctly", name))
		return nil
	}

	span.SetAttribute("problems", len(problems))
	var b strings.Builder
	for _, p := range problems {
		b.WriteString("* ")
		b.WriteString(p)
		b.WriteByte('\n')
	}
	a.logger.Info(fmt.Sprintf("unification package %s didn't work correctly:\n%s", name, b.String()))
	return domain.ErrVerificationFailed
}

func (a *App) check(ctx context.Context, s *Session) ([]string, error) {
	g, err := s.Graph()
	if err != nil {
		return nil, err
	}
	unifier := s.Target.Context.UnifierName

	var members []*domain.PackageMetadata
	for _, m := range g.Members() {
		if m.Index != s.Target.Package.Index {
			members = append(members, m)
		}
	}
	deps, err := a.editor.Dependents(ctx, members, unifier)
	if err != nil {
		return nil, err
	}

	var problems []string
	for _, m := range members {
		name := m.Name.String()
		excluded := s.Config.IsExcluded(name)
		switch {
		case excluded && deps[name]:
			problems = append(problems, fmt.Sprintf("%s is excluded but depends on %s", name, unifier))
		case !excluded && !deps[name]:
			problems = append(problems, fmt.Sprintf("%s does not depend on %s, run `unify manage-deps`", name, unifier))
		}
	}

	generated, err := a.render(s)
	if err != nil {
		return nil, err
	}
	file, err := a.sections.Open(s.Target.Package.ManifestPath)
	if err != nil {
		return nil, err
	}
	if file.Section() != generated {
		problems = append(problems, fmt.Sprintf("managed section of %s is out of date, run `unify generate`", unifier))
	}
	return problems, nil
}

func (a *App) render(s *Session) (string, error) {
	set, _, err := a.resolve(s, nil)
	if err != nil {
		return "", err
	}
	g, err := s.Graph()
	if err != nil {
		return "", err
	}
	return a.sections.Render(g, set, s.Config)
}

func (a *App) reconcile(ctx context.Context, s *Session, generated string, diff bool) (domain.Outcome, error) {
	file, err := a.sections.Open(s.Target.Package.ManifestPath)
	if err != nil {
		return domain.OutcomeUnchanged, err
	}
	outcome, err := a.reconciler.Reconcile(ctx, s.Root(), file, generated, diff)
	if outcome == domain.OutcomeUpdated {
		s.stale = true
	}
	return outcome, err
}
