package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/app"
	"go.trai.ch/unify/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func (h *harness) expectResolve(f *fixture) {
	h.resolver.EXPECT().
		Resolve(f.g, domain.NewPackageSet(f.b.Index(f.app), f.b.Index(f.cli)), domain.NewPackageSet(), gomock.Any()).
		Return(f.resolved(), nil)
}

func storedSummary(t *testing.T, f *fixture, set *domain.ResolvedSet) *domain.BuildSummary {
	t.Helper()
	s, err := set.ToSummary(f.g, domain.ResolutionOptions{Version: domain.ResolverV2})
	require.NoError(t, err)
	return s
}

func TestSummary_Print(t *testing.T) {
	h := newHarness(t)
	f := newFixture(t)
	h.expectOpen(f, testConfig())
	h.expectResolve(f)

	outcome, err := h.app.Summary(context.Background(), app.SummaryOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnchanged, outcome)

	out := h.out.String()
	assert.Contains(t, out, "[metadata]")
	assert.Contains(t, out, "[[target-package]]")
	assert.Contains(t, out, "name = 'serde'")
	assert.Contains(t, out, "status = 'direct'")
	assert.Contains(t, out, "status = 'initial'")
	assert.NotContains(t, out, "[[host-package]]")
}

func TestSummary_Packages(t *testing.T) {
	h := newHarness(t)
	f := newFixture(t)
	h.expectOpen(f, testConfig())
	h.resolver.EXPECT().
		Resolve(f.g, domain.NewPackageSet(f.b.Index(f.legacy)), domain.NewPackageSet(), gomock.Any()).
		Return(&domain.ResolvedSet{Initials: domain.NewPackageSet(f.b.Index(f.legacy))}, nil)

	_, err := h.app.Summary(context.Background(), app.SummaryOptions{Packages: []string{"legacy"}})
	require.NoError(t, err)
}

func TestSummary_Save(t *testing.T) {
	tests := []struct {
		name    string
		changed bool
		wantLog string
	}{
		{name: "changed", changed: true, wantLog: "saved summary base"},
		{name: "unchanged", changed: false, wantLog: "summary base unchanged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			f := newFixture(t)
			h.expectOpen(f, testConfig())
			h.expectResolve(f)
			h.store.EXPECT().Put("/ws", "base", gomock.Any()).Return(tt.changed, nil)

			_, err := h.app.Summary(context.Background(), app.SummaryOptions{Save: "base"})
			require.NoError(t, err)
			assert.Contains(t, h.logs, tt.wantLog)
		})
	}
}

func TestSummary_Compare(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	t.Run("identical", func(t *testing.T) {
		h := newHarness(t)
		f := newFixture(t)
		h.expectOpen(f, testConfig())
		h.expectResolve(f)
		h.store.EXPECT().Get("/ws", "base").Return(storedSummary(t, f, f.resolved()), nil)

		outcome, err := h.app.Summary(context.Background(), app.SummaryOptions{Compare: "base"})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeIdentical, outcome)
		assert.Empty(t, h.out.String())
		assert.Contains(t, h.logs, "summary matches base")
	})

	t.Run("differs", func(t *testing.T) {
		h := newHarness(t)
		f := newFixture(t)
		h.expectOpen(f, testConfig())
		h.expectResolve(f)

		old := f.resolved()
		old.Target[2].Features = []string{"std"}
		h.store.EXPECT().Get("/ws", "base").Return(storedSummary(t, f, old), nil)

		outcome, err := h.app.Summary(context.Background(), app.SummaryOptions{Compare: "base"})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeDiffers, outcome)
		assert.Equal(t, 1, outcome.ExitCode())

		out := h.out.String()
		assert.Contains(t, out, "--- a/base.toml")
		assert.Contains(t, out, "+features = ['derive', 'std']")
		assert.Contains(t, out, "-features = ['std']")
	})

	t.Run("missing", func(t *testing.T) {
		h := newHarness(t)
		f := newFixture(t)
		h.expectOpen(f, testConfig())
		h.expectResolve(f)
		h.store.EXPECT().Get("/ws", "base").Return(nil, nil)

		_, err := h.app.Summary(context.Background(), app.SummaryOptions{Compare: "base"})
		assert.ErrorContains(t, err, domain.ErrSummaryNotFound.Error())
	})
}
