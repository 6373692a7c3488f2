package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/unify/internal/core/ports/mocks"
	"go.trai.ch/unify/internal/engine/reconcile"
	"go.uber.org/mock/gomock"
)

const (
	existing  = "[dependencies]\nserde = \"1\"\n"
	generated = "[dependencies]\nserde = \"1\"\ntokio = \"1\"\n"
)

// memFile is a managed file held in memory.
type memFile struct {
	section  string
	writes   int
	writeErr error
}

func (m *memFile) Path() string    { return "hack/Cargo.toml" }
func (m *memFile) Section() string { return m.section }

func (m *memFile) WriteSection(contents string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.section = contents
	return nil
}

type reconcileMocks struct {
	build  *mocks.MockBuildTool
	logger *mocks.MockLogger
}

func setupReconcileTest(t *testing.T) (*reconcile.Reconciler, *reconcileMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()

	m := &reconcileMocks{
		build:  mocks.NewMockBuildTool(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	return reconcile.New(m.build, m.logger, tracer), m
}

func TestDiff_Golden(t *testing.T) {
	diff, err := reconcile.Diff("hack/Cargo.toml", existing, generated)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "diff_added_line", []byte(diff))
}

func TestDiff_Hunks(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		generated string
		want      string
	}{
		{
			name:      "appended line",
			existing:  "a\n",
			generated: "a\nb\n",
			want:      "--- a/x\n+++ b/x\n@@ -1 +1,2 @@\n a\n+b\n",
		},
		{
			name:      "missing final newline",
			existing:  "a",
			generated: "b\n",
			want:      "--- a/x\n+++ b/x\n@@ -1 +1 @@\n-a\n+b\n",
		},
		{
			name:      "from empty",
			existing:  "",
			generated: "a\n",
			want:      "--- a/x\n+++ b/x\n@@ -0,0 +1 @@\n+a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, err := reconcile.Diff("x", tt.existing, tt.generated)
			require.NoError(t, err)
			assert.Equal(t, tt.want, diff)
		})
	}
}

func TestDiff_Identical(t *testing.T) {
	diff, err := reconcile.Diff("hack/Cargo.toml", existing, existing)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestReconcile_DiffOnly(t *testing.T) {
	tests := []struct {
		name        string
		section     string
		wantOutcome domain.Outcome
	}{
		{name: "identical", section: generated, wantOutcome: domain.OutcomeIdentical},
		{name: "differs", section: existing, wantOutcome: domain.OutcomeDiffers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := setupReconcileTest(t)
			file := &memFile{section: tt.section}
			m.logger.EXPECT().Info(gomock.Any())

			outcome, err := r.Reconcile(context.Background(), "/ws", file, generated, true)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Zero(t, file.writes, "diff mode never writes")
		})
	}
}

func TestReconcile_Unchanged(t *testing.T) {
	r, m := setupReconcileTest(t)
	file := &memFile{section: generated}
	m.logger.EXPECT().Info("no changes detected")

	outcome, err := r.Reconcile(context.Background(), "/ws", file, generated, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnchanged, outcome)
	assert.Zero(t, file.writes)
}

func TestReconcile_WritesAndRegeneratesLock(t *testing.T) {
	r, m := setupReconcileTest(t)
	file := &memFile{section: existing}

	gomock.InOrder(
		m.logger.EXPECT().Info("contents updated"),
		m.build.EXPECT().RegenerateLockfile(gomock.Any(), "/ws").Return(nil),
	)

	outcome, err := r.Reconcile(context.Background(), "/ws", file, generated, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)
	assert.Equal(t, generated, file.section)
	assert.Equal(t, 1, file.writes)
}

func TestReconcile_LockFailureFails(t *testing.T) {
	r, m := setupReconcileTest(t)
	file := &memFile{section: existing}

	m.logger.EXPECT().Info("contents updated")
	m.build.EXPECT().RegenerateLockfile(gomock.Any(), "/ws").Return(errors.New("updating Cargo.lock failed"))

	outcome, err := r.Reconcile(context.Background(), "/ws", file, generated, false)
	require.Error(t, err)
	assert.ErrorContains(t, err, "updating Cargo.lock failed")
	assert.Equal(t, domain.OutcomeUpdated, outcome)
}

func TestReconcile_WriteFailure(t *testing.T) {
	r, _ := setupReconcileTest(t)
	file := &memFile{section: existing, writeErr: errors.New("read-only file system")}

	_, err := r.Reconcile(context.Background(), "/ws", file, generated, false)
	require.Error(t, err)
	assert.ErrorContains(t, err, "error writing updated contents")
}
