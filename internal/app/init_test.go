package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/app"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/domain/domaintest"
	"go.trai.ch/unify/internal/engine/workspace"
	"go.uber.org/mock/gomock"
)

func initWorkspace(t *testing.T, h *harness) string {
	t.Helper()
	root := t.TempDir()
	b := domaintest.NewBuilder(t, root)
	b.Member("app", "0.1.0", "crates/app")
	h.graphs.EXPECT().Load(gomock.Any(), root).Return(b.Graph(), nil)
	h.app.WithDir(root)
	return root
}

func TestInit(t *testing.T) {
	h := newHarness(t)
	root := initWorkspace(t, h)

	var created domain.CreatePackage
	var written domain.WriteConfig
	gomock.InOrder(
		h.editor.EXPECT().CreatePackage(root, gomock.Any()).Do(func(_ string, op domain.CreatePackage) { created = op }).Return(nil),
		h.editor.EXPECT().WriteConfig(root, gomock.Any()).Do(func(_ string, op domain.WriteConfig) { written = op }).Return(nil),
	)

	outcome, err := h.app.Init(context.Background(), app.InitOptions{
		Path: "crates/workspace-hack",
		Mode: workspace.ModeAutoConfirm,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)

	assert.Equal(t, "crates/workspace-hack", created.Path)
	assert.Equal(t, "workspace-hack", created.Name)
	assert.Contains(t, created.Manifest, domain.SectionBegin)

	assert.Equal(t, domain.ConfigPath, written.Path)
	assert.Contains(t, written.Contents, "unification-package: workspace-hack")

	logs := strings.Join(h.logs, "\n")
	assert.Contains(t, logs, "* create package workspace-hack at crates/workspace-hack")
	assert.Contains(t, logs, "next steps:\n* configure at "+domain.ConfigPath)
}

func TestInit_SkipConfigWithName(t *testing.T) {
	h := newHarness(t)
	root := initWorkspace(t, h)

	h.editor.EXPECT().CreatePackage(root, gomock.Any()).DoAndReturn(func(_ string, op domain.CreatePackage) error {
		assert.Equal(t, "my-hack", op.Name)
		assert.Equal(t, "hack", op.Path)
		return nil
	})

	outcome, err := h.app.Init(context.Background(), app.InitOptions{
		Path:        "hack",
		PackageName: "my-hack",
		SkipConfig:  true,
		Mode:        workspace.ModeAutoConfirm,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, outcome)
}

func TestInit_DryRun(t *testing.T) {
	h := newHarness(t)
	initWorkspace(t, h)

	outcome, err := h.app.Init(context.Background(), app.InitOptions{Path: "hack", Mode: workspace.ModeDryRun})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePending, outcome)
	assert.NotContains(t, strings.Join(h.logs, "\n"), "next steps")
}

func TestInit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		setup   func(t *testing.T, root string)
		wantErr string
	}{
		{
			name:    "outside workspace",
			path:    "../elsewhere",
			wantErr: domain.ErrPathOutsideWorkspace.Error(),
		},
		{
			name:    "workspace root",
			path:    ".",
			wantErr: domain.ErrPathOutsideWorkspace.Error(),
		},
		{
			name: "config exists",
			path: "hack",
			setup: func(t *testing.T, root string) {
				t.Helper()
				path := filepath.Join(root, domain.ConfigPath)
				require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
				require.NoError(t, os.WriteFile(path, []byte("unification-package: hack\n"), domain.FilePerm))
			},
			wantErr: domain.ErrConfigExists.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			root := initWorkspace(t, h)
			if tt.setup != nil {
				tt.setup(t, root)
			}

			_, err := h.app.Init(context.Background(), app.InitOptions{Path: tt.path, Mode: workspace.ModeAutoConfirm})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
