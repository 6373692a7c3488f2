// Package domain contains the core domain models and pure algorithms for workspace dependency unification.
package domain

import (
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// PackageID is the build tool's opaque identifier for a package.
type PackageID string

// DependencyKind is the kind of a dependency edge.
type DependencyKind uint8

const (
	// DepNormal is a regular dependency.
	DepNormal DependencyKind = iota
	// DepDev is a dev-dependency, only used for tests, examples and benchmarks.
	DepDev
	// DepBuild is a build-dependency, compiled for the host platform.
	DepBuild
)

// String returns the name of the dependency kind.
func (k DependencyKind) String() string {
	switch k {
	case DepNormal:
		return "normal"
	case DepDev:
		return "dev"
	case DepBuild:
		return "build"
	default:
		return "unknown"
	}
}

// EdgeKind is one way a package depends on another, optionally restricted to a target expression.
type EdgeKind struct {
	Kind DependencyKind
	// Target is a target triple or cfg() expression. Empty means all platforms.
	Target string
}

// Link is a resolved dependency edge between two packages in the graph.
type Link struct {
	From  int
	To    int
	Name  string
	Kinds []EdgeKind
}

// HasKind reports whether the link has an edge of the given kind.
func (l Link) HasKind(kind DependencyKind) bool {
	for _, k := range l.Kinds {
		if k.Kind == kind {
			return true
		}
	}
	return false
}

// PackageMetadata describes a single package in the graph.
type PackageMetadata struct {
	Index   int
	ID      PackageID
	Name    InternedString
	Version *semver.Version
	Source  PackageSource
	// ManifestPath is the absolute path to the package manifest.
	ManifestPath string
	ProcMacro    bool
	// EnabledFeatures are the features the build tool resolved for this package.
	EnabledFeatures []InternedString
}

// InWorkspace reports whether the package is a workspace member.
func (p *PackageMetadata) InWorkspace() bool {
	return p.Source.Kind == SourceWorkspace
}

// Dir returns the directory containing the package manifest.
func (p *PackageMetadata) Dir() string {
	return filepath.Dir(p.ManifestPath)
}

// ToSummaryID converts the package metadata into a SummaryID.
func (p *PackageMetadata) ToSummaryID() SummaryID {
	return SummaryID{
		Name:    p.Name.String(),
		Version: p.Version,
		Source:  p.Source.ToSummarySource(),
	}
}

// PackageSet is a set of package indices.
type PackageSet map[int]struct{}

// NewPackageSet creates a set containing ixs.
func NewPackageSet(ixs ...int) PackageSet {
	s := make(PackageSet, len(ixs))
	for _, ix := range ixs {
		s[ix] = struct{}{}
	}
	return s
}

// Add inserts ix into the set.
func (s PackageSet) Add(ix int) {
	s[ix] = struct{}{}
}

// Contains reports whether ix is in the set.
func (s PackageSet) Contains(ix int) bool {
	_, ok := s[ix]
	return ok
}

// Indices returns the set members in ascending order.
func (s PackageSet) Indices() []int {
	ixs := make([]int, 0, len(s))
	for ix := range s {
		ixs = append(ixs, ix)
	}
	slices.Sort(ixs)
	return ixs
}

// PackageGraph is a read-only snapshot of a workspace and its dependencies.
// It is built once per invocation; any manifest mutation makes it stale.
type PackageGraph struct {
	root     string
	packages []*PackageMetadata
	byID     map[PackageID]int
	byPath   map[string]int
	byName   map[string]int
	links    map[int][]Link
}

// NewPackageGraph creates an empty graph rooted at the given workspace directory.
func NewPackageGraph(root string) *PackageGraph {
	return &PackageGraph{
		root:   root,
		byID:   make(map[PackageID]int),
		byPath: make(map[string]int),
		byName: make(map[string]int),
		links:  make(map[int][]Link),
	}
}

// Root returns the absolute workspace root.
func (g *PackageGraph) Root() string {
	return g.root
}

// AddPackage adds a package and returns its index.
func (g *PackageGraph) AddPackage(p PackageMetadata) (int, error) {
	if _, exists := g.byID[p.ID]; exists {
		return 0, zerr.With(ErrDuplicatePackage, "package_id", string(p.ID))
	}
	ix := len(g.packages)
	p.Index = ix
	g.packages = append(g.packages, &p)
	g.byID[p.ID] = ix
	if path, ok := p.Source.WorkspacePath(); ok {
		g.byPath[filepath.ToSlash(path)] = ix
		g.byName[p.Name.String()] = ix
	}
	return ix, nil
}

// AddLink records a dependency edge between two packages already in the graph.
func (g *PackageGraph) AddLink(from, to PackageID, name string, kinds []EdgeKind) error {
	fromIx, ok := g.byID[from]
	if !ok {
		return zerr.With(ErrPackageNotFound, "package_id", string(from))
	}
	toIx, ok := g.byID[to]
	if !ok {
		return zerr.With(ErrPackageNotFound, "package_id", string(to))
	}
	g.links[fromIx] = append(g.links[fromIx], Link{From: fromIx, To: toIx, Name: name, Kinds: kinds})
	return nil
}

// Len returns the number of packages in the graph.
func (g *PackageGraph) Len() int {
	return len(g.packages)
}

// Package returns the package at ix.
func (g *PackageGraph) Package(ix int) *PackageMetadata {
	return g.packages[ix]
}

// Packages iterates over all packages in index order.
func (g *PackageGraph) Packages() iter.Seq[*PackageMetadata] {
	return func(yield func(*PackageMetadata) bool) {
		for _, p := range g.packages {
			if !yield(p) {
				return
			}
		}
	}
}

// Metadata looks up a package by ID.
func (g *PackageGraph) Metadata(id PackageID) (*PackageMetadata, error) {
	ix, ok := g.byID[id]
	if !ok {
		return nil, zerr.With(ErrPackageNotFound, "package_id", string(id))
	}
	return g.packages[ix], nil
}

// Links returns the outgoing dependency edges of the package at ix.
func (g *PackageGraph) Links(ix int) []Link {
	return g.links[ix]
}

// DependsOn reports whether the package at from has a direct edge to the package at to.
func (g *PackageGraph) DependsOn(from, to int) bool {
	for _, l := range g.links[from] {
		if l.To == to {
			return true
		}
	}
	return false
}

// Members returns workspace members sorted by name.
func (g *PackageGraph) Members() []*PackageMetadata {
	members := make([]*PackageMetadata, 0, len(g.byName))
	for _, ix := range g.byName {
		members = append(members, g.packages[ix])
	}
	slices.SortFunc(members, func(a, b *PackageMetadata) int {
		return strings.Compare(a.Name.String(), b.Name.String())
	})
	return members
}

// MemberByPath finds a workspace member by its workspace-relative path.
func (g *PackageGraph) MemberByPath(path string) (*PackageMetadata, error) {
	ix, ok := g.byPath[filepath.ToSlash(filepath.Clean(path))]
	if !ok {
		return nil, zerr.With(ErrPackageNotFound, "workspace_path", path)
	}
	return g.packages[ix], nil
}

// MemberByName finds a workspace member by name.
func (g *PackageGraph) MemberByName(name string) (*PackageMetadata, error) {
	ix, ok := g.byName[name]
	if !ok {
		return nil, zerr.With(ErrNotWorkspaceMember, "package", name)
	}
	return g.packages[ix], nil
}

// ResolveWorkspaceNames converts workspace member names into a package set.
func (g *PackageGraph) ResolveWorkspaceNames(names []string) (PackageSet, error) {
	set := make(PackageSet, len(names))
	for _, name := range names {
		p, err := g.MemberByName(name)
		if err != nil {
			return nil, err
		}
		set.Add(p.Index)
	}
	return set, nil
}

// ResolveWorkspace returns the set of all workspace members.
func (g *PackageGraph) ResolveWorkspace() PackageSet {
	set := make(PackageSet, len(g.byName))
	for _, ix := range g.byName {
		set.Add(ix)
	}
	return set
}

// ResolveSummaryID converts a summary identity back into a live package ID.
// Only workspace-sourced identities can be converted.
func (g *PackageGraph) ResolveSummaryID(id SummaryID) (PackageID, error) {
	switch src := id.Source.(type) {
	case WorkspaceSource:
		p, err := g.MemberByPath(src.Path)
		if err != nil {
			return "", err
		}
		return p.ID, nil
	case PathSource, RegistrySource, ExternalSource:
		return "", zerr.With(ErrUnsupportedSource, "source", src.String())
	default:
		return "", zerr.With(ErrUnknownSource, "package", id.Name)
	}
}
