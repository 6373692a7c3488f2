// Package reconcile brings generated file contents in line with what is on disk.
package reconcile

import (
	"context"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reconciler compares generated contents with a managed file and writes or diffs them.
type Reconciler struct {
	build  ports.BuildTool
	logger ports.Logger
	tracer ports.Tracer
}

// New creates a new Reconciler.
func New(build ports.BuildTool, logger ports.Logger, tracer ports.Tracer) *Reconciler {
	return &Reconciler{
		build:  build,
		logger: logger,
		tracer: tracer,
	}
}

// Reconcile compares generated with the managed section of file.
//
// With diffOnly, the unified diff is logged and the file is never written.
// Otherwise differing contents are written and the lock artifact of root is
// regenerated; a failed regeneration fails the call.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	root string,
	file ports.ManagedFile,
	generated string,
	diffOnly bool,
) (domain.Outcome, error) {
	ctx, span := r.tracer.Start(ctx, "reconcile", ports.WithAttribute("path", file.Path()))
	defer span.End()

	existing := file.Section()

	if diffOnly {
		diff, err := Diff(file.Path(), existing, generated)
		if err != nil {
			span.RecordError(err)
			return domain.OutcomeDiffers, err
		}
		r.logger.Info("\n" + diff)
		if diff == "" {
			return domain.OutcomeIdentical, nil
		}
		return domain.OutcomeDiffers, nil
	}

	if existing == generated {
		r.logger.Info("no changes detected")
		return domain.OutcomeUnchanged, nil
	}

	if err := file.WriteSection(generated); err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, zerr.Wrap(err, "error writing updated contents")
	}
	r.logger.Info("contents updated")

	if err := r.build.RegenerateLockfile(ctx, root); err != nil {
		span.RecordError(err)
		return domain.OutcomeUpdated, err
	}
	return domain.OutcomeUpdated, nil
}

// Diff returns a unified diff from existing to generated, or an empty string
// when both are equal.
func Diff(path, existing, generated string) (string, error) {
	if existing == generated {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(existing),
		B:        splitLines(generated),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to compute diff"), "path", path)
	}
	return diff, nil
}

// splitLines splits text into newline-terminated lines. A final line without
// a newline gets one, and text ending in a newline yields no empty last line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n"
	return lines
}
