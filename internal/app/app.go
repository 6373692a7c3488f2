// Package app implements the application layer for unify.
package app

import (
	"context"
	"io"
	"os"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/engine/publish"
	"go.trai.ch/unify/internal/engine/reconcile"
	"go.trai.ch/unify/internal/engine/workspace"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	graphs       ports.GraphLoader
	resolver     ports.FeatureResolver
	configs      ports.ConfigLoader
	sections     ports.SectionGenerator
	editor       ports.ManifestEditor
	store        ports.SummaryStore
	build        ports.BuildTool
	orchestrator *workspace.Orchestrator
	publisher    *publish.Workflow
	reconciler   *reconcile.Reconciler
	logger       ports.Logger
	tracer       ports.Tracer
	dir          string
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	graphs ports.GraphLoader,
	resolver ports.FeatureResolver,
	configs ports.ConfigLoader,
	sections ports.SectionGenerator,
	editor ports.ManifestEditor,
	store ports.SummaryStore,
	build ports.BuildTool,
	orchestrator *workspace.Orchestrator,
	publisher *publish.Workflow,
	reconciler *reconcile.Reconciler,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		graphs:       graphs,
		resolver:     resolver,
		configs:      configs,
		sections:     sections,
		editor:       editor,
		store:        store,
		build:        build,
		orchestrator: orchestrator,
		publisher:    publisher,
		reconciler:   reconciler,
		logger:       log,
		tracer:       tracer,
		dir:          ".",
		stdout:       os.Stdout,
	}
}

// WithDir sets the directory the workspace is discovered from.
func (a *App) WithDir(dir string) *App {
	a.dir = dir
	return a
}

// WithOutput sets the writer that receives command output such as summaries.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// Session is the workspace state loaded once per command.
type Session struct {
	graph  *domain.PackageGraph
	Config *domain.Config
	Target *workspace.Target
	stale  bool
}

// Graph returns the package graph the session was opened with.
// It fails once operations were applied, since the graph no longer matches the manifests.
func (s *Session) Graph() (*domain.PackageGraph, error) {
	if s.stale {
		return nil, domain.ErrStaleGraph
	}
	return s.graph, nil
}

// Root returns the workspace root.
func (s *Session) Root() string {
	return s.graph.Root()
}

// Open loads the package graph, the config and the unification package of the workspace.
func (a *App) Open(ctx context.Context) (*Session, error) {
	g, err := a.graphs.Load(ctx, a.dir)
	if err != nil {
		return nil, err
	}
	cfg, err := a.configs.Load(g.Root())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	target, err := workspace.ResolveTarget(g, cfg)
	if err != nil {
		return nil, err
	}
	return &Session{graph: g, Config: cfg, Target: target}, nil
}

// apply runs set through the orchestrator and regenerates the lock artifact afterwards.
// The session graph is stale once anything was written.
func (a *App) apply(ctx context.Context, s *Session, set *domain.OperationSet, mode workspace.Mode) (domain.Outcome, error) {
	root := s.Root()
	outcome, err := a.orchestrator.Run(ctx, set, mode, func(ctx context.Context) error {
		return a.build.RegenerateLockfile(ctx, root)
	})
	if outcome == domain.OutcomeApplied {
		s.stale = true
	}
	return outcome, err
}

// selection resolves package names to members, defaulting to the whole workspace.
func selection(g *domain.PackageGraph, names []string) (domain.PackageSet, error) {
	if len(names) == 0 {
		return g.ResolveWorkspace(), nil
	}
	return g.ResolveWorkspaceNames(names)
}

// resolve runs the feature resolver with the configured options.
// Initials default to every member that is neither the unification package,
// excluded nor features-only.
func (a *App) resolve(s *Session, names []string) (*domain.ResolvedSet, domain.ResolutionOptions, error) {
	g, err := s.Graph()
	if err != nil {
		return nil, domain.ResolutionOptions{}, err
	}

	summary, err := s.Config.Resolver.ToOptionsSummary()
	if err != nil {
		return nil, domain.ResolutionOptions{}, err
	}
	opts, err := summary.ToResolutionOptions(g)
	if err != nil {
		return nil, domain.ResolutionOptions{}, zerr.Wrap(err, "invalid resolver options")
	}

	featuresOnly, err := g.ResolveWorkspaceNames(s.Config.FeaturesOnly)
	if err != nil {
		return nil, domain.ResolutionOptions{}, zerr.Wrap(err, "invalid features-only entry")
	}

	var initials domain.PackageSet
	if len(names) > 0 {
		if initials, err = g.ResolveWorkspaceNames(names); err != nil {
			return nil, domain.ResolutionOptions{}, err
		}
	} else {
		initials = domain.NewPackageSet()
		for _, m := range g.Members() {
			name := m.Name.String()
			if m.Index == s.Target.Package.Index || s.Config.IsExcluded(name) || featuresOnly.Contains(m.Index) {
				continue
			}
			initials.Add(m.Index)
		}
	}

	set, err := a.resolver.Resolve(g, initials, featuresOnly, opts)
	if err != nil {
		return nil, domain.ResolutionOptions{}, err
	}
	return set, opts, nil
}
