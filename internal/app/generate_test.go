package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/core/domain"
	"go.uber.org/mock/gomock"
)

const section = "[dependencies]\nserde = { version = \"1.0.200\", features = [\"derive\", \"std\"] }\n"

func (h *harness) expectRender(f *fixture, cfg *domain.Config, file *memFile) {
	initials := domain.NewPackageSet(f.b.Index(f.app), f.b.Index(f.cli))
	set := f.resolved()
	h.resolver.EXPECT().Resolve(f.g, initials, domain.NewPackageSet(), gomock.Any()).Return(set, nil)
	h.sections.EXPECT().Render(f.g, set, cfg).Return(section, nil)
	h.sections.EXPECT().Open("/ws/hack/Cargo.toml").Return(file, nil)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		existing    string
		diff        bool
		wantOutcome domain.Outcome
		wantWrites  int
		wantLog     string
		wantLock    bool
	}{
		{
			name:        "writes changed section",
			existing:    "",
			wantOutcome: domain.OutcomeUpdated,
			wantWrites:  1,
			wantLog:     "contents updated",
			wantLock:    true,
		},
		{
			name:        "unchanged section",
			existing:    section,
			wantOutcome: domain.OutcomeUnchanged,
			wantLog:     "no changes detected",
		},
		{
			name:        "diff only",
			existing:    "",
			diff:        true,
			wantOutcome: domain.OutcomeDiffers,
			wantLog:     "+serde",
		},
		{
			name:        "diff without changes",
			existing:    section,
			diff:        true,
			wantOutcome: domain.OutcomeIdentical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			f := newFixture(t)
			cfg := testConfig()
			file := &memFile{section: tt.existing}

			h.expectOpen(f, cfg)
			h.expectRender(f, cfg, file)
			if tt.wantLock {
				h.build.EXPECT().RegenerateLockfile(gomock.Any(), "/ws").Return(nil)
			}

			outcome, err := h.app.Generate(context.Background(), tt.diff)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantWrites, file.writes)
			if tt.wantLog != "" {
				assert.Contains(t, strings.Join(h.logs, "\n"), tt.wantLog)
			}
		})
	}
}

func TestGenerate_FeaturesOnlyMembersAreNotInitials(t *testing.T) {
	h := newHarness(t)
	f := newFixture(t)
	cfg := testConfig()
	cfg.FeaturesOnly = []string{"cli"}

	h.expectOpen(f, cfg)
	resolveErr := errors.New("resolution failed")
	h.resolver.EXPECT().Resolve(
		f.g,
		domain.NewPackageSet(f.b.Index(f.app)),
		domain.NewPackageSet(f.b.Index(f.cli)),
		gomock.Any(),
	).Return(nil, resolveErr)

	_, err := h.app.Generate(context.Background(), false)
	require.ErrorIs(t, err, resolveErr)
}

func TestGenerate_MissingUnificationPackage(t *testing.T) {
	h := newHarness(t)
	f := newFixture(t)
	cfg := testConfig()
	cfg.UnificationPackage = "workspace-hack"
	h.expectOpen(f, cfg)

	_, err := h.app.Generate(context.Background(), false)
	assert.ErrorContains(t, err, domain.ErrUnificationPackageMissing.Error())
}

func TestGenerate_ConfigError(t *testing.T) {
	h := newHarness(t)
	f := newFixture(t)
	h.graphs.EXPECT().Load(gomock.Any(), workDir).Return(f.g, nil)
	h.configs.EXPECT().Load("/ws").Return(nil, domain.ErrConfigReadFailed)

	_, err := h.app.Generate(context.Background(), false)
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestDisable(t *testing.T) {
	h := newHarness(t)
	f := newFixture(t)
	file := &memFile{section: section}

	h.expectOpen(f, testConfig())
	h.sections.EXPECT().Open("/ws/hack/Cargo.toml").Return(file, nil)
	h.build.EXPECT().RegenerateLockfile(gomock.Any(), "/ws").Return(nil)

	outcome, err := h.app.Disable(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)
	assert.Equal(t, domain.DisabledMessage, file.section)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		dependents map[string]bool
		existing   string
		wantErr    bool
		wantLogs   []string
	}{
		{
			name:       "works",
			dependents: map[string]bool{"app": true, "cli": true},
			existing:   section,
			wantLogs:   []string{"unification package hack works correctly"},
		},
		{
			name:       "missing and extra edges",
			dependents: map[string]bool{"app": true, "legacy": true},
			existing:   section,
			wantErr:    true,
			wantLogs: []string{
				"unification package hack didn't work correctly:",
				"* cli does not depend on hack",
				"* legacy is excluded but depends on hack",
			},
		},
		{
			name:       "stale section",
			dependents: map[string]bool{"app": true, "cli": true},
			existing:   "",
			wantErr:    true,
			wantLogs:   []string{"* managed section of hack is out of date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			f := newFixture(t)
			cfg := testConfig()
			file := &memFile{section: tt.existing}

			h.expectOpen(f, cfg)
			h.editor.EXPECT().Dependents(gomock.Any(), gomock.Len(3), "hack").Return(tt.dependents, nil)
			h.expectRender(f, cfg, file)

			err := h.app.Verify(context.Background())
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrVerificationFailed)
			} else {
				require.NoError(t, err)
			}
			logs := strings.Join(h.logs, "\n")
			for _, want := range tt.wantLogs {
				assert.Contains(t, logs, want)
			}
			assert.Zero(t, file.writes)
		})
	}
}
