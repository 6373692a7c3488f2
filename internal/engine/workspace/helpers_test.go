package workspace_test

import (
	"context"
	"testing"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/domain/domaintest"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// newTracer returns a tracer mock that accepts any span activity.
func newTracer(ctrl *gomock.Controller) *mocks.MockTracer {
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()
	return tracer
}

// workspaceState describes members and whether they depend on the unification package.
type workspaceState struct {
	members []string
	linked  map[string]bool
}

// build assembles a graph for the state with "hack" as the unification package.
func (s workspaceState) build(t *testing.T) (*domain.PackageGraph, *domaintest.Builder) {
	t.Helper()
	b := domaintest.NewBuilder(t, "/ws")
	hack := b.Member("hack", "0.1.0", "hack")
	for _, name := range s.members {
		id := b.Member(name, "0.1.0", "crates/"+name)
		if s.linked[name] {
			b.Link(id, hack)
		}
	}
	return b.Graph(), b
}

// fakeEditor applies edge edits to an in-memory link table.
type fakeEditor struct {
	linked map[string]bool
	calls  []string
}

func (f *fakeEditor) AddDependency(_ domain.EditContext, member *domain.PackageMetadata) error {
	f.calls = append(f.calls, "add "+member.Name.String())
	f.linked[member.Name.String()] = true
	return nil
}

func (f *fakeEditor) RemoveDependency(_ domain.EditContext, member *domain.PackageMetadata) error {
	f.calls = append(f.calls, "remove "+member.Name.String())
	delete(f.linked, member.Name.String())
	return nil
}

func (f *fakeEditor) Dependents(_ context.Context, members []*domain.PackageMetadata, _ string) (map[string]bool, error) {
	out := make(map[string]bool, len(members))
	for _, m := range members {
		out[m.Name.String()] = f.linked[m.Name.String()]
	}
	return out, nil
}

func (f *fakeEditor) CreatePackage(_ string, op domain.CreatePackage) error {
	f.calls = append(f.calls, "create "+op.Name)
	return nil
}

func (f *fakeEditor) WriteConfig(_ string, op domain.WriteConfig) error {
	f.calls = append(f.calls, "config "+op.Path)
	return nil
}
