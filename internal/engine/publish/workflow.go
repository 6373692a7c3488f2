// Package publish runs the external publish action with the unification edge temporarily removed.
package publish

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/engine/workspace"
	"go.trai.ch/zerr"
)

// State is a step of the publish workflow.
type State uint8

const (
	// StateStart is the initial state.
	StateStart State = iota
	// StateEdgeCheckedOut means the edge was removed, or found absent.
	StateEdgeCheckedOut
	// StatePublishing means the external publish action is running.
	StatePublishing
	// StatePublishSucceeded means the publish action exited successfully.
	StatePublishSucceeded
	// StatePublishFailed means the publish action failed.
	StatePublishFailed
	// StateRestored means a removed edge was added back.
	StateRestored
	// StateNotRestored means no edge was restored, either because none was removed or because restoring failed.
	StateNotRestored
	// StateDone is the terminal state.
	StateDone
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateEdgeCheckedOut:
		return "edge-checked-out"
	case StatePublishing:
		return "publishing"
	case StatePublishSucceeded:
		return "publish-succeeded"
	case StatePublishFailed:
		return "publish-failed"
	case StateRestored:
		return "restored"
	case StateNotRestored:
		return "not-restored"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Report describes what a workflow run did.
type Report struct {
	// Removed is true if the edge existed and was removed before publishing.
	Removed bool
	// Restored is true if the removed edge was added back.
	Restored bool
	// States lists every state the workflow passed through, in order.
	States []State
}

func (r *Report) enter(s State) {
	r.States = append(r.States, s)
}

// Request selects the member to publish.
type Request struct {
	Graph  *domain.PackageGraph
	Target *workspace.Target
	Member *domain.PackageMetadata
	// Args are passed through to the publish action.
	Args []string
	// Force removes the edge even if the graph does not show one.
	Force bool
}

// Workflow publishes a workspace member without its edge to the unification package.
type Workflow struct {
	applier *workspace.Applier
	build   ports.BuildTool
	logger  ports.Logger
	tracer  ports.Tracer
}

// New creates a new Workflow.
func New(applier *workspace.Applier, build ports.BuildTool, logger ports.Logger, tracer ports.Tracer) *Workflow {
	return &Workflow{
		applier: applier,
		build:   build,
		logger:  logger,
		tracer:  tracer,
	}
}

// Run removes the edge from the member to the unification package, publishes
// the member and restores the edge. The restore happens on every path out of
// the publish step, so the edge state on disk ends as it started.
//
// The returned error is the publish failure, joined with domain.ErrRollbackFailed
// if the edge could not be restored.
func (w *Workflow) Run(ctx context.Context, req Request) (rep *Report, err error) {
	rep = &Report{}
	rep.enter(StateStart)

	ctx, span := w.tracer.Start(ctx, "publish", ports.WithAttribute("package", req.Member.Name.String()))
	defer span.End()

	l, err := w.checkout(req)
	if err != nil {
		span.RecordError(err)
		rep.enter(StateDone)
		return rep, err
	}
	rep.Removed = l.removed
	rep.enter(StateEdgeCheckedOut)

	defer func() {
		err = l.release(ctx, rep, err)
		if err != nil {
			span.RecordError(err)
		}
		span.SetAttribute("restored", rep.Restored)
		rep.enter(StateDone)
	}()

	rep.enter(StatePublishing)
	if err := w.publish(ctx, req); err != nil {
		rep.enter(StatePublishFailed)
		return rep, err
	}
	rep.enter(StatePublishSucceeded)
	return rep, nil
}

func (w *Workflow) publish(ctx context.Context, req Request) error {
	args := append(slices.Clone(req.Args), domain.AllowDirtyFlag)
	all := strings.Join(append([]string{"publish"}, args...), " ")

	ctx, span := w.tracer.Start(ctx, "publish_action", ports.WithAttribute("args", all))
	defer span.End()

	w.logger.Info("executing " + all + "\n---")
	if err := w.build.Publish(ctx, req.Member.Dir(), args); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, fmt.Sprintf("`%s` failed", all)), "package", req.Member.Name.String())
	}
	return nil
}

// lease holds a checked-out edge and the forced add that gives it back.
type lease struct {
	w       *Workflow
	root    string
	member  string
	unifier string
	removed bool
	restore *domain.OperationSet
}

// checkout removes the edge if the graph shows one.
// The restore operation is computed up front since the graph is stale once
// the removal is applied.
func (w *Workflow) checkout(req Request) (*lease, error) {
	selection := domain.NewPackageSet(req.Member.Index)
	l := &lease{
		w:       w,
		root:    req.Graph.Root(),
		member:  req.Member.Name.String(),
		unifier: req.Target.Context.UnifierName,
		restore: req.Target.AddDeps(req.Graph, selection, true),
	}

	remove := req.Target.RemoveDeps(req.Graph, selection, req.Force)
	if remove.IsEmpty() {
		w.logger.Info(fmt.Sprintf("dependency from %s to %s not present", l.member, l.unifier))
		return l, nil
	}

	w.logger.Info(fmt.Sprintf("removing dependency from %s to %s", l.member, l.unifier))
	if err := w.applier.Apply(remove); err != nil {
		return nil, zerr.Wrap(err, "error removing dependency from "+l.member)
	}
	l.removed = true
	return l, nil
}

// release restores a removed edge and regenerates the lock artifact.
// It returns publishErr, joined with any restore failure.
func (l *lease) release(ctx context.Context, rep *Report, publishErr error) error {
	if !l.removed {
		rep.enter(StateNotRestored)
		return publishErr
	}

	if publishErr != nil {
		l.w.logger.Warn("execution failed, rolling back changes")
	} else {
		l.w.logger.Info(fmt.Sprintf("re-adding dependency from %s to %s", l.member, l.unifier))
	}

	if err := l.w.applier.Apply(l.restore); err != nil {
		rep.enter(StateNotRestored)
		return errors.Join(domain.ErrRollbackFailed, err, publishErr)
	}
	rep.Restored = true
	rep.enter(StateRestored)

	if err := l.w.build.RegenerateLockfile(ctx, l.root); err != nil {
		return errors.Join(err, publishErr)
	}
	return publishErr
}
