package domain_test

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/domain/domaintest"
	"go.trai.ch/zerr"
)

func TestPackageGraph_AddPackage_Duplicate(t *testing.T) {
	g := domain.NewPackageGraph("/ws")
	p := domain.PackageMetadata{
		ID:      "pkg-a 0.1.0",
		Name:    domain.NewInternedString("pkg-a"),
		Version: semver.MustParse("0.1.0"),
		Source:  domain.PackageSource{Kind: domain.SourceWorkspace, Path: "crates/pkg-a"},
	}

	if _, err := g.AddPackage(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := g.AddPackage(p)
	if err == nil {
		t.Fatal("expected error when adding duplicate package, got nil")
	}
	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if id, ok := meta["package_id"].(string); !ok || id != "pkg-a 0.1.0" {
		t.Errorf("expected metadata package_id=pkg-a 0.1.0, got %v", meta["package_id"])
	}
}

func TestPackageGraph_Lookups(t *testing.T) {
	b := domaintest.NewBuilder(t, "/ws")
	a := b.Member("pkg-a", "0.1.0", "crates/pkg-a")
	hack := b.Member("hack", "0.1.0", "hack")
	serde := b.Registry("serde", "1.0.200")
	b.Link(a, hack)
	b.Link(a, serde)
	g := b.Graph()

	t.Run("members are sorted and exclude third-party packages", func(t *testing.T) {
		members := g.Members()
		require.Len(t, members, 2)
		assert.Equal(t, "hack", members[0].Name.String())
		assert.Equal(t, "pkg-a", members[1].Name.String())
	})

	t.Run("member by path", func(t *testing.T) {
		p, err := g.MemberByPath("crates/pkg-a")
		require.NoError(t, err)
		assert.Equal(t, a, p.ID)

		_, err = g.MemberByPath("crates/missing")
		assert.ErrorContains(t, err, domain.ErrPackageNotFound.Error())
	})

	t.Run("member by name rejects third-party packages", func(t *testing.T) {
		_, err := g.MemberByName("serde")
		assert.ErrorContains(t, err, "not a workspace member")
	})

	t.Run("depends on", func(t *testing.T) {
		assert.True(t, g.DependsOn(b.Index(a), b.Index(hack)))
		assert.False(t, g.DependsOn(b.Index(hack), b.Index(a)))
	})

	t.Run("resolve workspace names", func(t *testing.T) {
		set, err := g.ResolveWorkspaceNames([]string{"pkg-a"})
		require.NoError(t, err)
		assert.Equal(t, []int{b.Index(a)}, set.Indices())

		_, err = g.ResolveWorkspaceNames([]string{"pkg-a", "nope"})
		assert.Error(t, err)

		assert.Equal(t, []int{b.Index(a), b.Index(hack)}, g.ResolveWorkspace().Indices())
	})
}

func TestPackageGraph_ResolveSummaryID(t *testing.T) {
	b := domaintest.NewBuilder(t, "/ws")
	a := b.Member("pkg-a", "0.1.0", "crates/pkg-a")
	g := b.Graph()

	tests := []struct {
		name    string
		source  domain.SummarySource
		want    domain.PackageID
		wantErr error
	}{
		{name: "workspace", source: domain.WorkspaceSource{Path: "crates/pkg-a"}, want: a},
		{name: "missing workspace path", source: domain.WorkspaceSource{Path: "crates/b"}, wantErr: domain.ErrPackageNotFound},
		{name: "path", source: domain.PathSource{Path: "../vendored"}, wantErr: domain.ErrUnsupportedSource},
		{name: "registry", source: domain.RegistrySource{}, wantErr: domain.ErrUnsupportedSource},
		{name: "external", source: domain.ExternalSource{URL: "git+https://example.com/x"}, wantErr: domain.ErrUnsupportedSource},
		{name: "unknown", source: nil, wantErr: domain.ErrUnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := domain.SummaryID{Name: "pkg-a", Version: semver.MustParse("0.1.0"), Source: tt.source}
			got, err := g.ResolveSummaryID(id)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackageGraph_UnsupportedSourceNamesVariant(t *testing.T) {
	g := domain.NewPackageGraph("/ws")
	id := domain.SummaryID{Name: "x", Version: semver.MustParse("1.0.0"), Source: domain.ExternalSource{URL: "git+https://example.com/x"}}

	_, err := g.ResolveSummaryID(id)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "external git+https://example.com/x", zErr.Metadata()["source"])
}
