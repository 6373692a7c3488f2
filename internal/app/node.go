package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unify/internal/adapters/buildtool" //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/adapters/generator" //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/adapters/metadata"  //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/engine/publish"
	"go.trai.ch/unify/internal/engine/reconcile"
	"go.trai.ch/unify/internal/engine/workspace"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Tracer ports.Tracer
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			metadata.NodeID,
			metadata.ResolverNodeID,
			config.NodeID,
			generator.NodeID,
			manifest.NodeID,
			store.NodeID,
			buildtool.NodeID,
			workspace.NodeID,
			publish.NodeID,
			reconcile.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	graphs, err := graft.Dep[ports.GraphLoader](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[ports.FeatureResolver](ctx)
	if err != nil {
		return nil, err
	}
	configs, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	sections, err := graft.Dep[ports.SectionGenerator](ctx)
	if err != nil {
		return nil, err
	}
	editor, err := graft.Dep[ports.ManifestEditor](ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := graft.Dep[ports.SummaryStore](ctx)
	if err != nil {
		return nil, err
	}
	build, err := graft.Dep[ports.BuildTool](ctx)
	if err != nil {
		return nil, err
	}
	orchestrator, err := graft.Dep[*workspace.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}
	publisher, err := graft.Dep[*publish.Workflow](ctx)
	if err != nil {
		return nil, err
	}
	reconciler, err := graft.Dep[*reconcile.Reconciler](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(
		graphs,
		resolver,
		configs,
		sections,
		editor,
		summaries,
		build,
		orchestrator,
		publisher,
		reconciler,
		log,
		tracer,
	), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
		Tracer: tracer,
	}, nil
}
