package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/unify/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/adapters/generator" //nolint:depguard // Wired in app layer
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/engine/workspace"
	"go.trai.ch/zerr"
)

// InitOptions configures the creation of a new unification package.
type InitOptions struct {
	// Path is the package directory, relative to the current directory.
	Path string
	// PackageName defaults to the last component of Path.
	PackageName string
	SkipConfig  bool
	Mode        workspace.Mode
}

// Init creates a new unification package and, unless skipped, its config file.
// It runs before any config exists, so only the package graph is loaded.
func (a *App) Init(ctx context.Context, opts InitOptions) (domain.Outcome, error) {
	ctx, span := a.tracer.Start(ctx, "init", ports.WithAttribute("path", opts.Path))
	defer span.End()

	g, err := a.graphs.Load(ctx, a.dir)
	if err != nil {
		span.RecordError(err)
		return domain.OutcomeUnchanged, err
	}
	root := g.Root()

	dir := opts.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(a.dir, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return domain.OutcomeUnchanged, zerr.With(zerr.Wrap(err, "invalid package path"), "path", opts.Path)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return domain.OutcomeUnchanged, zerr.With(zerr.With(domain.ErrPathOutsideWorkspace, "path", abs), "root", root)
	}

	name := opts.PackageName
	if name == "" {
		name = filepath.Base(abs)
	}

	set := &domain.OperationSet{Context: domain.EditContext{
		Root:        root,
		UnifierName: name,
		UnifierDir:  abs,
	}}
	set.Ops = append(set.Ops, generator.NewPackage(filepath.ToSlash(rel), name))

	if !opts.SkipConfig {
		path := filepath.Join(root, domain.ConfigPath)
		if _, err := os.Stat(path); err == nil {
			return domain.OutcomeUnchanged, zerr.With(domain.ErrConfigExists, "path", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return domain.OutcomeUnchanged, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
		contents, err := config.Template(name)
		if err != nil {
			return domain.OutcomeUnchanged, err
		}
		set.Ops = append(set.Ops, domain.WriteConfig{Path: domain.ConfigPath, Contents: contents})
	}

	return a.orchestrator.Run(ctx, set, opts.Mode, func(context.Context) error {
		var b strings.Builder
		b.WriteString("next steps:\n")
		for _, step := range domain.NextSteps {
			b.WriteString("* ")
			b.WriteString(step)
			b.WriteByte('\n')
		}
		a.logger.Info(b.String())
		return nil
	})
}
