// Package store persists named build summaries inside the workspace.
package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/unify/internal/core/codec"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

const fileExt = ".toml"

var nameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var _ ports.SummaryStore = (*Store)(nil)

// Store implements ports.SummaryStore with one TOML file per summary.
// Fingerprints of files it has read or written are cached so unchanged
// summaries are not rewritten.
type Store struct {
	mu           sync.RWMutex
	fingerprints map[string]uint64
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{fingerprints: make(map[string]uint64)}
}

// Path returns the file a summary named name is stored in.
func Path(root, name string) (string, error) {
	if !nameRe.MatchString(name) || name == "." || name == ".." {
		return "", zerr.With(domain.ErrInvalidSummaryName, "name", name)
	}
	return filepath.Join(root, domain.SummariesDir, name+fileExt), nil
}

// Get implements ports.SummaryStore.
func (s *Store) Get(root, name string) (*domain.BuildSummary, error) {
	path, err := Path(root, name)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path is built from a validated name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}

	summary, err := codec.DecodeSummary(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	s.mu.Lock()
	s.fingerprints[path] = xxhash.Sum64(data)
	s.mu.Unlock()
	return summary, nil
}

// Put implements ports.SummaryStore.
func (s *Store) Put(root, name string, summary *domain.BuildSummary) (bool, error) {
	path, err := Path(root, name)
	if err != nil {
		return false, err
	}

	data, err := codec.EncodeSummary(summary)
	if err != nil {
		return false, err
	}
	sum := xxhash.Sum64(data)

	if prev, ok := s.fingerprint(path); ok && prev == sum {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	//nolint:gosec // Path is built from a validated name
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}

	s.mu.Lock()
	s.fingerprints[path] = sum
	s.mu.Unlock()
	return true, nil
}

// fingerprint returns the cached hash of path, hashing the file on disk on a miss.
func (s *Store) fingerprint(path string) (uint64, bool) {
	s.mu.RLock()
	sum, ok := s.fingerprints[path]
	s.mu.RUnlock()
	if ok {
		return sum, true
	}

	//nolint:gosec // Path is built from a validated name
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	return xxhash.Sum64(data), true
}
