package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unify/internal/adapters/store"
	"go.trai.ch/unify/internal/core/domain"
)

func summary(t *testing.T, features ...string) *domain.BuildSummary {
	t.Helper()
	id, err := domain.NewSummaryID("serde", "1.0.200", domain.RegistrySource{})
	require.NoError(t, err)
	m := domain.NewPackageMap()
	m.Insert(id, domain.PackageInfo{Role: domain.RoleDirect, Features: features})
	return &domain.BuildSummary{TargetPackages: m, HostPackages: domain.NewPackageMap()}
}

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	s := store.NewStore()

	changed, err := s.Put(root, "default", summary(t, "std"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.FileExists(t, filepath.Join(root, domain.SummariesDir, "default.toml"))

	got, err := store.NewStore().Get(root, "default")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, summary(t, "std").TargetPackages.Equal(got.TargetPackages))
}

func TestStore_GetMissing(t *testing.T) {
	got, err := store.NewStore().Get(t.TempDir(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PutUnchangedSkipsWrite(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, domain.SummariesDir, "ci.toml")

	_, err := store.NewStore().Put(root, "ci", summary(t, "std"))
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	s := store.NewStore()
	changed, err := s.Put(root, "ci", summary(t, "std"))
	require.NoError(t, err)
	assert.False(t, changed)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	changed, err = s.Put(root, "ci", summary(t, "derive", "std"))
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestStore_InvalidName(t *testing.T) {
	for _, name := range []string{"", "..", "a/b", "with space"} {
		_, err := store.NewStore().Put(t.TempDir(), name, summary(t))
		assert.ErrorContains(t, err, domain.ErrInvalidSummaryName.Error(), name)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, domain.SummariesDir)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte("[[target-package]\n"), 0o600))

	_, err := store.NewStore().Get(root, "bad")
	assert.ErrorContains(t, err, domain.ErrSummaryDecodeFailed.Error())
}
