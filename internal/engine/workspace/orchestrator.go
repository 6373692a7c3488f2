package workspace

import (
	"context"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

// Mode selects how an operation set is confirmed.
type Mode uint8

const (
	// ModeInteractive previews the operations and asks for approval.
	ModeInteractive Mode = iota
	// ModeDryRun previews the operations and never applies them.
	ModeDryRun
	// ModeAutoConfirm applies the operations without asking.
	ModeAutoConfirm
)

// ModeFromFlags maps the --dry-run and --yes flags to a mode.
func ModeFromFlags(dryRun, yes bool) Mode {
	switch {
	case dryRun:
		return ModeDryRun
	case yes:
		return ModeAutoConfirm
	default:
		return ModeInteractive
	}
}

// AfterFunc runs after an operation set was applied successfully.
type AfterFunc func(ctx context.Context) error

// Orchestrator previews, confirms and applies operation sets.
type Orchestrator struct {
	applier   *Applier
	confirmer ports.Confirmer
	logger    ports.Logger
	tracer    ports.Tracer
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(applier *Applier, confirmer ports.Confirmer, logger ports.Logger, tracer ports.Tracer) *Orchestrator {
	return &Orchestrator{
		applier:   applier,
		confirmer: confirmer,
		logger:    logger,
		tracer:    tracer,
	}
}

// Applier returns the applier used for unconditional application.
func (o *Orchestrator) Applier() *Applier {
	return o.applier
}

// Run previews set and applies it according to mode.
//
// An empty set yields OutcomeUnchanged. A dry run, or a declined prompt, yields
// OutcomePending without touching the workspace. Otherwise every operation is
// applied in order and after runs; manifests stay mutated if after fails.
func (o *Orchestrator) Run(ctx context.Context, set *domain.OperationSet, mode Mode, after AfterFunc) (domain.Outcome, error) {
	if set.IsEmpty() {
		o.logger.Info("no operations to perform")
		return domain.OutcomeUnchanged, nil
	}

	ctx, span := o.tracer.Start(ctx, "apply_operations", ports.WithAttribute("operations", set.Len()))
	defer span.End()

	o.tracer.EmitPlan(ctx, describeAll(set))
	o.logger.Info("operations to perform:\n\n" + set.Display())

	switch mode {
	case ModeDryRun:
		return domain.OutcomePending, nil
	case ModeAutoConfirm:
	case ModeInteractive:
		ok, err := o.confirmer.Confirm(ctx, "proceed?")
		if err != nil {
			span.RecordError(err)
			return domain.OutcomePending, zerr.Wrap(err, domain.ErrPromptFailed.Error())
		}
		if !ok {
			span.SetAttribute("declined", true)
			return domain.OutcomePending, nil
		}
	default:
		return domain.OutcomePending, zerr.With(domain.ErrUnknownMode, "mode", int(mode))
	}

	if err := o.applier.Apply(set); err != nil {
		span.RecordError(err)
		return domain.OutcomePending, err
	}
	if after != nil {
		if err := after(ctx); err != nil {
			span.RecordError(err)
			return domain.OutcomeApplied, err
		}
	}
	return domain.OutcomeApplied, nil
}

func describeAll(set *domain.OperationSet) []string {
	out := make([]string, len(set.Ops))
	for i, op := range set.Ops {
		out[i] = op.Describe(set.Context)
	}
	return out
}
