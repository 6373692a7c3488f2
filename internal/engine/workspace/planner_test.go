package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/engine/workspace"
)

func describe(set *domain.OperationSet) []string {
	var out []string
	for _, op := range set.Ops {
		out = append(out, op.Describe(set.Context))
	}
	return out
}

func TestResolveTarget(t *testing.T) {
	g, _ := workspaceState{members: []string{"pkg-a"}}.build(t)

	target, err := workspace.ResolveTarget(g, &domain.Config{UnificationPackage: "hack"})
	require.NoError(t, err)
	assert.Equal(t, "hack", target.Context.UnifierName)
	assert.Equal(t, "/ws/hack", target.Context.UnifierDir)
	assert.Equal(t, "0.1.0", target.Context.UnifierVersion)

	_, err = workspace.ResolveTarget(g, &domain.Config{UnificationPackage: "missing"})
	assert.ErrorContains(t, err, domain.ErrUnificationPackageMissing.Error())
}

func TestManageDeps_Scenario(t *testing.T) {
	state := workspaceState{
		members: []string{"pkg-a", "pkg-b", "pkg-c"},
		linked:  map[string]bool{"pkg-a": true, "pkg-c": true},
	}
	g, _ := state.build(t)
	cfg := &domain.Config{UnificationPackage: "hack", Excludes: []string{"pkg-c"}}

	target, err := workspace.ResolveTarget(g, cfg)
	require.NoError(t, err)
	selection, err := g.ResolveWorkspaceNames([]string{"pkg-a", "pkg-b"})
	require.NoError(t, err)
	excludes, err := g.ResolveWorkspaceNames(cfg.Excludes)
	require.NoError(t, err)

	set := target.ManageDeps(g, selection, excludes)
	require.Len(t, set.Ops, 2)
	add, ok := set.Ops[0].(domain.AddEdge)
	require.True(t, ok, "first op should be AddEdge, got %T", set.Ops[0])
	assert.Equal(t, "pkg-b", add.From.Name.String())
	remove, ok := set.Ops[1].(domain.RemoveEdge)
	require.True(t, ok, "second op should be RemoveEdge, got %T", set.Ops[1])
	assert.Equal(t, "pkg-c", remove.From.Name.String())

	editor := &fakeEditor{linked: state.linked}
	require.NoError(t, workspace.NewApplier(editor).Apply(set))

	reloaded, _ := workspaceState{members: state.members, linked: editor.linked}.build(t)
	target, err = workspace.ResolveTarget(reloaded, cfg)
	require.NoError(t, err)
	selection, err = reloaded.ResolveWorkspaceNames([]string{"pkg-a", "pkg-b"})
	require.NoError(t, err)
	excludes, err = reloaded.ResolveWorkspaceNames(cfg.Excludes)
	require.NoError(t, err)

	assert.True(t, target.ManageDeps(reloaded, selection, excludes).IsEmpty())
}

func TestManageDeps_WholeWorkspaceSkipsUnifier(t *testing.T) {
	g, _ := workspaceState{members: []string{"pkg-a", "pkg-b"}}.build(t)
	target, err := workspace.ResolveTarget(g, &domain.Config{UnificationPackage: "hack"})
	require.NoError(t, err)

	set := target.ManageDeps(g, g.ResolveWorkspace(), domain.NewPackageSet())

	assert.Equal(t, []string{
		"add dependency pkg-a -> hack",
		"add dependency pkg-b -> hack",
	}, describe(set))
}

func TestManageAll(t *testing.T) {
	g, _ := workspaceState{members: []string{"pkg-a", "pkg-b"}, linked: map[string]bool{"pkg-a": true}}.build(t)
	target, err := workspace.ResolveTarget(g, &domain.Config{UnificationPackage: "hack"})
	require.NoError(t, err)
	excludes, err := g.ResolveWorkspaceNames([]string{"pkg-b"})
	require.NoError(t, err)

	set := target.ManageAll(g, g.ResolveWorkspace(), excludes)
	require.Len(t, set.Ops, 1)
	op, ok := set.Ops[0].(domain.ManageEdges)
	require.True(t, ok)
	require.Len(t, op.Include, 1)
	assert.Equal(t, "pkg-a", op.Include[0].Name.String())
	require.Len(t, op.Exclude, 1)
	assert.Equal(t, "pkg-b", op.Exclude[0].Name.String())

	editor := &fakeEditor{linked: map[string]bool{"pkg-a": true}}
	require.NoError(t, workspace.NewApplier(editor).Apply(set))
	assert.Equal(t, []string{"add pkg-a", "remove pkg-b"}, editor.calls)
}

func TestRemoveAndAddDeps(t *testing.T) {
	g, _ := workspaceState{members: []string{"pkg-a", "pkg-b"}, linked: map[string]bool{"pkg-a": true}}.build(t)
	target, err := workspace.ResolveTarget(g, &domain.Config{UnificationPackage: "hack"})
	require.NoError(t, err)
	all := g.ResolveWorkspace()

	tests := []struct {
		name string
		set  *domain.OperationSet
		want []string
	}{
		{
			name: "remove only linked",
			set:  target.RemoveDeps(g, all, false),
			want: []string{"remove dependency pkg-a -> hack"},
		},
		{
			name: "remove forced",
			set:  target.RemoveDeps(g, all, true),
			want: []string{"remove dependency pkg-a -> hack", "remove dependency pkg-b -> hack"},
		},
		{
			name: "add only missing",
			set:  target.AddDeps(g, all, false),
			want: []string{"add dependency pkg-b -> hack"},
		},
		{
			name: "add forced ignores stale graph",
			set:  target.AddDeps(g, all, true),
			want: []string{"add dependency pkg-a -> hack", "add dependency pkg-b -> hack"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.set))
		})
	}
}
