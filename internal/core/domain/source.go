package domain

import (
	"fmt"
	"strings"
)

// PublicRegistryURL is the source string of packages published to the public registry.
const PublicRegistryURL = "registry+https://github.com/rust-lang/crates.io-index"

// SummarySource describes where a package's source lives, in a form suitable for summaries.
//
// The set of variants is closed: WorkspaceSource, PathSource, RegistrySource and ExternalSource.
type SummarySource interface {
	fmt.Stringer
	summarySource()
	rank() int
}

// WorkspaceSource is a package that is a member of the workspace.
// Path is relative to the workspace root.
type WorkspaceSource struct {
	Path string
}

// PathSource is a non-workspace package on the local filesystem.
type PathSource struct {
	Path string
}

// RegistrySource is a package from the public registry.
type RegistrySource struct{}

// ExternalSource is a package from any other registry or repository.
// URL is preserved exactly as reported by the build tool.
type ExternalSource struct {
	URL string
}

func (WorkspaceSource) summarySource() {}
func (PathSource) summarySource()      {}
func (RegistrySource) summarySource()  {}
func (ExternalSource) summarySource()  {}

func (WorkspaceSource) rank() int { return 0 }
func (PathSource) rank() int      { return 1 }
func (RegistrySource) rank() int  { return 2 }
func (ExternalSource) rank() int  { return 3 }

func (s WorkspaceSource) String() string { return "workspace-path " + s.Path }
func (s PathSource) String() string      { return "path " + s.Path }
func (RegistrySource) String() string    { return "crates.io" }
func (s ExternalSource) String() string  { return "external " + s.URL }

// CompareSources orders sources by variant, then by path or URL.
func CompareSources(a, b SummarySource) int {
	if ra, rb := a.rank(), b.rank(); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	return strings.Compare(sourceDetail(a), sourceDetail(b))
}

func sourceDetail(s SummarySource) string {
	switch s := s.(type) {
	case WorkspaceSource:
		return s.Path
	case PathSource:
		return s.Path
	case RegistrySource:
		return ""
	case ExternalSource:
		return s.URL
	default:
		return s.String()
	}
}

// SourceKind distinguishes the origins a live package can have.
type SourceKind uint8

const (
	// SourceWorkspace is a workspace member.
	SourceWorkspace SourceKind = iota
	// SourcePath is a local path dependency outside the workspace.
	SourcePath
	// SourceExternal is a registry or git dependency.
	SourceExternal
)

// PackageSource is the origin of a package in the live graph.
type PackageSource struct {
	Kind SourceKind
	// Path is relative to the workspace root for workspace and path packages.
	Path string
	// Repr is the raw source string for external packages.
	Repr string
}

// WorkspacePath returns the workspace-relative path if the package is a workspace member.
func (s PackageSource) WorkspacePath() (string, bool) {
	if s.Kind != SourceWorkspace {
		return "", false
	}
	return s.Path, true
}

// ToSummarySource converts a live package source into its summary form.
func (s PackageSource) ToSummarySource() SummarySource {
	switch s.Kind {
	case SourceWorkspace:
		return WorkspaceSource{Path: s.Path}
	case SourcePath:
		return PathSource{Path: s.Path}
	default:
		if s.Repr == PublicRegistryURL {
			return RegistrySource{}
		}
		return ExternalSource{URL: s.Repr}
	}
}
