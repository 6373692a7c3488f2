package app

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/unify/internal/core/codec"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/engine/reconcile"
	"go.trai.ch/unify/internal/ui/output"
	"go.trai.ch/zerr"
)

// SummaryOptions configures the summary command.
type SummaryOptions struct {
	// Packages are the initial members. Empty selects every member that is
	// neither the unification package, excluded nor features-only.
	Packages []string
	// Save stores the summary under this name.
	Save string
	// Compare diffs the summary against the one stored under this name.
	Compare string
}

// Summary builds the build summary of the workspace with the configured
// resolution options. Without Compare the serialized summary is written to
// the output; with Compare only the difference is.
func (a *App) Summary(ctx context.Context, opts SummaryOptions) (domain.Outcome, error) {
	ctx, span := a.tracer.Start(ctx, "summary")
	defer span.End()

	s, err := a.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	set, resolution, err := a.resolve(s, opts.Packages)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	g, err := s.Graph()
	if err != nil {
		return domain.OutcomeUnchanged, err
	}
	summary, err := set.ToSummary(g, resolution)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	data, err := codec.EncodeSummary(summary)
	if err != nil {
		return domain.OutcomeUnchanged, err
	}
	span.SetAttribute("target_packages", summary.TargetPackages.Len())
	span.SetAttribute("host_packages", summary.HostPackages.Len())

	outcome := domain.OutcomeUnchanged
	if opts.Compare != "" {
		if outcome, err = a.compare(s.Root(), opts.Compare, data); err != nil {
			span.RecordError(err)
			return outcome, err
		}
	} else if _, err := a.stdout.Write(data); err != nil {
		return domain.OutcomeUnchanged, zerr.Wrap(err, "failed to write summary")
	}

	if opts.Save != "" {
		changed, err := a.store.Put(s.Root(), opts.Save, summary)
		if err != nil {
			span.RecordError(err)
			return outcome, err
		}
		if changed {
			a.logger.Info(fmt.Sprintf("saved summary %s", opts.Save))
		} else {
			a.logger.Info(fmt.Sprintf("summary %s unchanged", opts.Save))
		}
	}
	return outcome, nil
}

func (a *App) compare(root, name string, current []byte) (domain.Outcome, error) {
	prev, err := a.store.Get(root, name)
	if err != nil {
		return domain.OutcomeUnchanged, err
	}
	if prev == nil {
		return domain.OutcomeUnchanged, zerr.With(domain.ErrSummaryNotFound, "name", name)
	}
	stored, err := codec.EncodeSummary(prev)
	if err != nil {
		return domain.OutcomeUnchanged, err
	}

	diff, err := reconcile.Diff(name+".toml", string(stored), string(current))
	if err != nil {
		return domain.OutcomeUnchanged, err
	}
	if diff == "" {
		a.logger.Info(fmt.Sprintf("summary matches %s", name))
		return domain.OutcomeIdentical, nil
	}
	if _, err := io.WriteString(a.stdout, output.ColorDiff(output.New(a.stdout), diff)); err != nil {
		return domain.OutcomeDiffers, zerr.Wrap(err, "failed to write summary diff")
	}
	return domain.OutcomeDiffers, nil
}
