// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/unify/internal/adapters/buildtool"
	_ "go.trai.ch/unify/internal/adapters/config"
	_ "go.trai.ch/unify/internal/adapters/generator"
	_ "go.trai.ch/unify/internal/adapters/logger"
	_ "go.trai.ch/unify/internal/adapters/manifest"
	_ "go.trai.ch/unify/internal/adapters/metadata"
	_ "go.trai.ch/unify/internal/adapters/prompt"
	_ "go.trai.ch/unify/internal/adapters/shell"
	_ "go.trai.ch/unify/internal/adapters/store"
	_ "go.trai.ch/unify/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/unify/internal/app"
	_ "go.trai.ch/unify/internal/engine/publish"
	_ "go.trai.ch/unify/internal/engine/reconcile"
	_ "go.trai.ch/unify/internal/engine/workspace"
)
