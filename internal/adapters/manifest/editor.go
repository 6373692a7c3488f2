// Package manifest edits package manifests of the workspace.
package manifest

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	dependenciesTable = "dependencies"
	maxParallelReads  = 8
)

var _ ports.ManifestEditor = (*Editor)(nil)

// Editor implements ports.ManifestEditor with line-based edits.
// Manifests are parsed only to decide whether an edit is needed, so comments
// and formatting of untouched lines survive.
type Editor struct{}

// NewEditor creates a new Editor.
func NewEditor() *Editor {
	return &Editor{}
}

// AddDependency implements ports.ManifestEditor.
func (e *Editor) AddDependency(ec domain.EditContext, member *domain.PackageMetadata) error {
	lines, err := readLines(member.ManifestPath)
	if err != nil {
		return err
	}
	present, err := hasDependency(member.ManifestPath, lines, ec.UnifierName)
	if err != nil || present {
		return err
	}

	entry := ec.DependencyLine(member.Dir())
	start, end := tableBounds(lines, dependenciesTable)
	if start < 0 {
		lines = trimTrailingBlank(lines)
		lines = append(lines, "", "["+dependenciesTable+"]", entry)
	} else {
		lines = insertAt(lines, lastContentLine(lines, start, end)+1, entry)
	}
	return writeLines(member.ManifestPath, lines)
}

// RemoveDependency implements ports.ManifestEditor.
func (e *Editor) RemoveDependency(ec domain.EditContext, member *domain.PackageMetadata) error {
	lines, err := readLines(member.ManifestPath)
	if err != nil {
		return err
	}
	present, err := hasDependency(member.ManifestPath, lines, ec.UnifierName)
	if err != nil || !present {
		return err
	}

	if start, end := tableBounds(lines, dependenciesTable+"."+ec.UnifierName); start >= 0 {
		lines = append(lines[:start], lines[end:]...)
	} else if start, end := tableBounds(lines, dependenciesTable); start >= 0 {
		lines = removeEntries(lines, start, end, ec.UnifierName)
	}

	// Nothing is written while any part of the edge remains.
	present, err = hasDependency(member.ManifestPath, lines, ec.UnifierName)
	if err != nil {
		return err
	}
	if present {
		return zerr.With(zerr.With(domain.ErrManifestWriteFailed, "path", member.ManifestPath), "dependency", ec.UnifierName)
	}
	return writeLines(member.ManifestPath, lines)
}

// removeEntries drops every line of the table spanning [start, end) whose key is name,
// including dotted keys such as name.path.
func removeEntries(lines []string, start, end int, name string) []string {
	out := make([]string, 0, len(lines))
	out = append(out, lines[:start+1]...)
	for _, line := range lines[start+1 : end] {
		if entryKey(line) != name {
			out = append(out, line)
		}
	}
	return append(out, lines[end:]...)
}

// Dependents implements ports.ManifestEditor.
// Manifests are read concurrently; the result is keyed by member name.
func (e *Editor) Dependents(ctx context.Context, members []*domain.PackageMetadata, dep string) (map[string]bool, error) {
	var mu sync.Mutex
	result := make(map[string]bool, len(members))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for _, m := range members {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := readLines(m.ManifestPath)
			if err != nil {
				return err
			}
			present, err := hasDependency(m.ManifestPath, lines, dep)
			if err != nil {
				return err
			}
			mu.Lock()
			result[m.Name.String()] = present
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePackage implements ports.ManifestEditor.
func (e *Editor) CreatePackage(root string, op domain.CreatePackage) error {
	dir, err := within(root, op.Path)
	if err != nil {
		return err
	}
	manifestPath := filepath.Join(dir, domain.ManifestFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return zerr.With(zerr.Wrap(fs.ErrExist, domain.ErrManifestWriteFailed.Error()), "path", manifestPath)
	}

	if err := os.MkdirAll(filepath.Join(dir, "src"), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", dir)
	}
	if err := writeFile(manifestPath, op.Manifest); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "src", "lib.rs"), op.LibRS)
}

// WriteConfig implements ports.ManifestEditor.
func (e *Editor) WriteConfig(root string, op domain.WriteConfig) error {
	path, err := within(root, op.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return writeFile(path, op.Contents)
}

func within(root, rel string) (string, error) {
	path := filepath.Join(root, rel)
	r, err := filepath.Rel(root, path)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", zerr.With(domain.ErrPathOutsideWorkspace, "path", rel)
	}
	return path, nil
}

func readLines(path string) ([]string, error) {
	//nolint:gosec // Manifest paths come from the package graph
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func writeLines(path string, lines []string) error {
	return writeFile(path, strings.Join(lines, "\n")+"\n")
}

func writeFile(path, contents string) error {
	if err := os.WriteFile(path, []byte(contents), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

type manifestDoc struct {
	Dependencies map[string]any `toml:"dependencies"`
}

// hasDependency parses the manifest and reports whether dep is a normal dependency.
func hasDependency(path string, lines []string, dep string) (bool, error) {
	var doc manifestDoc
	data := []byte(strings.Join(lines, "\n"))
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return false, zerr.With(zerr.With(zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path), "line", row), "column", col)
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	_, ok := doc.Dependencies[dep]
	return ok, nil
}

// tableBounds returns the header line of the named table and the index of the
// next table header, or -1 if the table is absent.
func tableBounds(lines []string, name string) (start, end int) {
	start = -1
	for i, line := range lines {
		header, ok := tableHeader(line)
		if !ok {
			continue
		}
		if start >= 0 {
			return start, i
		}
		if header == name {
			start = i
		}
	}
	if start < 0 {
		return -1, -1
	}
	return start, len(lines)
}

func tableHeader(line string) (string, bool) {
	line = strings.TrimSpace(stripComment(line))
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		return "", false
	}
	name := strings.Trim(line, "[]")
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(p), `"'`)
	}
	return strings.Join(parts, "."), true
}

func entryKey(line string) string {
	key, _, ok := strings.Cut(stripComment(line), "=")
	if !ok {
		return ""
	}
	key = strings.TrimSpace(key)
	if dot := strings.IndexByte(key, '.'); dot >= 0 {
		key = key[:dot]
	}
	return strings.Trim(key, `"'`)
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// lastContentLine returns the last non-blank line of the table spanning [start, end).
func lastContentLine(lines []string, start, end int) int {
	last := start
	for i := start + 1; i < end; i++ {
		if strings.TrimSpace(lines[i]) != "" {
			last = i
		}
	}
	return last
}

func insertAt(lines []string, i int, line string) []string {
	lines = append(lines, "")
	copy(lines[i+1:], lines[i:])
	lines[i] = line
	return lines
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
