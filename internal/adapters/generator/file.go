package generator

import (
	"os"
	"strings"

	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManagedFile = (*File)(nil)

// File is a manifest with a managed section between marker lines.
type File struct {
	path    string
	prefix  string
	section string
	suffix  string
}

// Open implements ports.SectionGenerator.
func (g *Generator) Open(manifestPath string) (ports.ManagedFile, error) {
	//nolint:gosec // Manifest path comes from the package graph
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", manifestPath)
	}
	return Parse(manifestPath, string(data))
}

// Parse splits contents into the text before, inside and after the managed section.
func Parse(path, contents string) (*File, error) {
	begin := markerLine(contents, domain.SectionBegin, 0)
	if begin < 0 {
		return nil, zerr.With(zerr.With(domain.ErrSectionMarkersMissing, "path", path), "marker", domain.SectionBegin)
	}
	start := lineEnd(contents, begin)
	end := markerLine(contents, domain.SectionEnd, start)
	if end < 0 {
		return nil, zerr.With(zerr.With(domain.ErrSectionMarkersMissing, "path", path), "marker", domain.SectionEnd)
	}
	return &File{
		path:    path,
		prefix:  contents[:start],
		section: contents[start:end],
		suffix:  contents[end:],
	}, nil
}

// Path implements ports.ManagedFile.
func (f *File) Path() string {
	return f.path
}

// Section implements ports.ManagedFile.
func (f *File) Section() string {
	return f.section
}

// WriteSection implements ports.ManagedFile.
func (f *File) WriteSection(contents string) error {
	if err := os.WriteFile(f.path, []byte(f.prefix+contents+f.suffix), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", f.path)
	}
	f.section = contents
	return nil
}

// markerLine returns the offset of the first line at or after from that is exactly marker.
func markerLine(contents, marker string, from int) int {
	for i := from; i < len(contents); {
		end := lineEnd(contents, i)
		if strings.TrimRight(contents[i:end], "\r\n") == marker {
			return i
		}
		i = end
	}
	return -1
}

// lineEnd returns the offset just past the newline ending the line at i.
func lineEnd(contents string, i int) int {
	if n := strings.IndexByte(contents[i:], '\n'); n >= 0 {
		return i + n + 1
	}
	return len(contents)
}
