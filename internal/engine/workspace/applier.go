package workspace

import (
	"fmt"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

// Applier applies operation sets through a manifest editor.
type Applier struct {
	editor ports.ManifestEditor
}

// NewApplier creates a new Applier.
func NewApplier(editor ports.ManifestEditor) *Applier {
	return &Applier{editor: editor}
}

// Apply applies every operation in listed order and stops at the first failure.
func (a *Applier) Apply(set *domain.OperationSet) error {
	if set.IsEmpty() {
		return nil
	}
	ec := set.Context
	for i, op := range set.Ops {
		if op == nil {
			return zerr.With(domain.ErrUnknownOperation, "operation", i)
		}
		if err := a.apply(ec, op); err != nil {
			return zerr.With(zerr.Wrap(err, "error applying "+op.Describe(ec)), "operation", i)
		}
	}
	return nil
}

func (a *Applier) apply(ec domain.EditContext, op domain.Operation) error {
	switch op := op.(type) {
	case domain.AddEdge:
		return a.editor.AddDependency(ec, op.From)
	case domain.RemoveEdge:
		return a.editor.RemoveDependency(ec, op.From)
	case domain.ManageEdges:
		for _, p := range op.Include {
			if err := a.editor.AddDependency(ec, p); err != nil {
				return err
			}
		}
		for _, p := range op.Exclude {
			if err := a.editor.RemoveDependency(ec, p); err != nil {
				return err
			}
		}
		return nil
	case domain.CreatePackage:
		return a.editor.CreatePackage(ec.Root, op)
	case domain.WriteConfig:
		return a.editor.WriteConfig(ec.Root, op)
	default:
		return zerr.With(domain.ErrUnknownOperation, "operation", fmt.Sprintf("%T", op))
	}
}
