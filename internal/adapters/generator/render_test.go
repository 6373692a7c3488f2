package generator_test

import (
	"regexp"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/adapters/generator"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/domain/domaintest"
)

type workspace struct {
	b   *domaintest.Builder
	g   *domain.PackageGraph
	set *domain.ResolvedSet
	cfg *domain.Config
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	b := domaintest.NewBuilder(t, "/ws")
	app := b.Member("app", "0.1.0", "crates/app", "default")
	hack := b.Member("hack", "0.1.0", "hack")
	serde := b.Registry("serde", "1.0.200", "derive", "std")
	log := b.Registry("log", "0.4.21", "default", "std")
	bytes := b.Registry("bytes", "1.6.0", "std")
	tokio := b.External("tokio", "1.38.0", "git+https://github.com/tokio-rs/tokio?branch=master#abc")
	zstd := b.Path("zstd", "0.13.0", "vendor/zstd")
	cc := b.Registry("cc", "1.0.90")

	g := b.Graph()
	list := func(ids ...domain.PackageID) []domain.FeatureList {
		var out []domain.FeatureList
		for _, id := range ids {
			ix := b.Index(id)
			out = append(out, domain.FeatureList{Index: ix, Features: domain.Strings(g.Package(ix).EnabledFeatures)})
		}
		return out
	}
	set := func(ids ...domain.PackageID) domain.PackageSet {
		s := domain.NewPackageSet()
		for _, id := range ids {
			s.Add(b.Index(id))
		}
		return s
	}

	return &workspace{
		b: b,
		g: g,
		set: &domain.ResolvedSet{
			Initials:         set(app),
			Target:           list(app, hack, serde, log, tokio, zstd, bytes),
			Host:             list(cc),
			TargetDirectDeps: set(hack, serde, log, tokio, zstd),
			HostDirectDeps:   set(cc),
		},
		cfg: &domain.Config{UnificationPackage: "hack"},
	}
}

func TestRender(t *testing.T) {
	w := newWorkspace(t)

	out, err := generator.New().Render(w.g, w.set, w.cfg)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "section", []byte(out))
}

func TestRender_ExactVersions(t *testing.T) {
	w := newWorkspace(t)
	w.cfg.ExactVersions = true

	out, err := generator.New().Render(w.g, w.set, w.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, `serde = { version = "=1.0.200", default-features = false, features = ["derive", "std"] }`)
	assert.Contains(t, out, `zstd = { path = "../vendor/zstd", default-features = false }`)
}

func TestRender_DuplicateNamesAreAliased(t *testing.T) {
	w := newWorkspace(t)
	old := w.b.Registry("serde", "0.9.15", "default")
	ix := w.b.Index(old)
	w.set.Target = append(w.set.Target, domain.FeatureList{Index: ix, Features: []string{"default"}})
	w.set.TargetDirectDeps.Add(ix)

	out, err := generator.New().Render(w.g, w.set, w.cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "serde = { version = \"0.9.15\" }\n")
	assert.Regexp(t, regexp.MustCompile(`(?m)^serde-[0-9a-f]{8} = \{ package = "serde", version = "1\.0\.200", default-features = false, features = \["derive", "std"\] \}$`), out)
}

func TestRender_Empty(t *testing.T) {
	w := newWorkspace(t)
	w.set.TargetDirectDeps = domain.NewPackageSet()
	w.set.HostDirectDeps = domain.NewPackageSet()

	out, err := generator.New().Render(w.g, w.set, w.cfg)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRender_MissingUnifier(t *testing.T) {
	w := newWorkspace(t)
	w.cfg.UnificationPackage = "nope"

	_, err := generator.New().Render(w.g, w.set, w.cfg)
	assert.ErrorContains(t, err, domain.ErrUnificationPackageMissing.Error())
}
