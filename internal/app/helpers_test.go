package app_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/app"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/domain/domaintest"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/core/ports/mocks"
	"go.trai.ch/unify/internal/engine/publish"
	"go.trai.ch/unify/internal/engine/reconcile"
	"go.trai.ch/unify/internal/engine/workspace"
	"go.uber.org/mock/gomock"
)

const workDir = "/ws/crates/app"

type harness struct {
	graphs    *mocks.MockGraphLoader
	resolver  *mocks.MockFeatureResolver
	configs   *mocks.MockConfigLoader
	sections  *mocks.MockSectionGenerator
	editor    *mocks.MockManifestEditor
	store     *mocks.MockSummaryStore
	build     *mocks.MockBuildTool
	confirmer *mocks.MockConfirmer
	logs      []string
	out       bytes.Buffer
	app       *app.App
}

// newHarness wires a real App with mocked adapters and a logger that records messages.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		graphs:    mocks.NewMockGraphLoader(ctrl),
		resolver:  mocks.NewMockFeatureResolver(ctrl),
		configs:   mocks.NewMockConfigLoader(ctrl),
		sections:  mocks.NewMockSectionGenerator(ctrl),
		editor:    mocks.NewMockManifestEditor(ctrl),
		store:     mocks.NewMockSummaryStore(ctrl),
		build:     mocks.NewMockBuildTool(ctrl),
		confirmer: mocks.NewMockConfirmer(ctrl),
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) { h.logs = append(h.logs, msg) }).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) { h.logs = append(h.logs, "warn: "+msg) }).AnyTimes()

	tracer := newTracer(ctrl)
	orchestrator := workspace.NewOrchestrator(workspace.NewApplier(h.editor), h.confirmer, log, tracer)
	publisher := publish.New(orchestrator.Applier(), h.build, log, tracer)
	reconciler := reconcile.New(h.build, log, tracer)

	h.app = app.New(
		h.graphs,
		h.resolver,
		h.configs,
		h.sections,
		h.editor,
		h.store,
		h.build,
		orchestrator,
		publisher,
		reconciler,
		log,
		tracer,
	).WithDir(workDir).WithOutput(&h.out)
	return h
}

// expectOpen makes the next Open return the fixture graph and cfg.
func (h *harness) expectOpen(f *fixture, cfg *domain.Config) {
	h.graphs.EXPECT().Load(gomock.Any(), workDir).Return(f.g, nil)
	h.configs.EXPECT().Load("/ws").Return(cfg, nil)
}

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

// fixture is a workspace with "hack" as the unification package.
// app depends on hack, cli does not, and the excluded legacy still does.
type fixture struct {
	g      *domain.PackageGraph
	b      *domaintest.Builder
	hack   domain.PackageID
	app    domain.PackageID
	cli    domain.PackageID
	legacy domain.PackageID
	serde  domain.PackageID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := domaintest.NewBuilder(t, "/ws")
	f := &fixture{b: b}
	f.hack = b.Member("hack", "0.1.0", "hack")
	f.app = b.Member("app", "0.1.0", "crates/app")
	f.cli = b.Member("cli", "0.1.0", "crates/cli")
	f.legacy = b.Member("legacy", "0.1.0", "crates/legacy")
	f.serde = b.Registry("serde", "1.0.200", "derive", "std")
	b.Link(f.app, f.hack)
	b.Link(f.app, f.serde)
	b.Link(f.cli, f.serde)
	b.Link(f.legacy, f.hack)
	f.g = b.Graph()
	return f
}

func (f *fixture) member(t *testing.T, name string) *domain.PackageMetadata {
	t.Helper()
	p, err := f.g.MemberByName(name)
	require.NoError(t, err)
	return p
}

// resolved is what the resolver reports for the app and cli initials.
func (f *fixture) resolved() *domain.ResolvedSet {
	return &domain.ResolvedSet{
		Initials: domain.NewPackageSet(f.b.Index(f.app), f.b.Index(f.cli)),
		Target: []domain.FeatureList{
			{Index: f.b.Index(f.app)},
			{Index: f.b.Index(f.cli)},
			{Index: f.b.Index(f.serde), Features: []string{"derive", "std"}},
		},
		TargetDirectDeps: domain.NewPackageSet(f.b.Index(f.serde)),
		HostDirectDeps:   domain.NewPackageSet(),
	}
}

func testConfig() *domain.Config {
	return &domain.Config{
		UnificationPackage: "hack",
		Excludes:           []string{"legacy"},
		Resolver:           domain.ResolverConfig{Version: domain.ResolverV2},
	}
}

// memFile is a managed file held in memory.
type memFile struct {
	section string
	writes  int
}

func (m *memFile) Path() string    { return "/ws/hack/Cargo.toml" }
func (m *memFile) Section() string { return m.section }

func (m *memFile) WriteSection(contents string) error {
	m.writes++
	m.section = contents
	return nil
}
