package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Operation is a single workspace mutation.
//
// The set of variants is closed: AddEdge, RemoveEdge, ManageEdges, CreatePackage and WriteConfig.
type Operation interface {
	operation()
	// Describe returns a one-line human-readable description.
	Describe(ctx EditContext) string
}

// AddEdge adds a dependency from a workspace member to the unification package.
type AddEdge struct {
	From *PackageMetadata
	// Force adds the edge even if the graph already reports it.
	Force bool
}

// RemoveEdge removes the dependency from a workspace member to the unification package.
type RemoveEdge struct {
	From *PackageMetadata
}

// ManageEdges reconciles edges: add for every included member lacking one,
// remove for every excluded member that has one.
type ManageEdges struct {
	Include []*PackageMetadata
	Exclude []*PackageMetadata
}

// CreatePackage creates the unification package at a workspace-relative path.
type CreatePackage struct {
	Path     string
	Name     string
	Manifest string
	LibRS    string
}

// WriteConfig writes a file at a workspace-relative path.
type WriteConfig struct {
	Path     string
	Contents string
}

func (AddEdge) operation()       {}
func (RemoveEdge) operation()    {}
func (ManageEdges) operation()   {}
func (CreatePackage) operation() {}
func (WriteConfig) operation()   {}

// Describe implements Operation.
func (o AddEdge) Describe(ctx EditContext) string {
	return fmt.Sprintf("add dependency %s -> %s", o.From.Name, ctx.UnifierName)
}

// Describe implements Operation.
func (o RemoveEdge) Describe(ctx EditContext) string {
	return fmt.Sprintf("remove dependency %s -> %s", o.From.Name, ctx.UnifierName)
}

// Describe implements Operation.
func (o ManageEdges) Describe(ctx EditContext) string {
	return fmt.Sprintf("manage dependencies on %s (%d included, %d excluded)",
		ctx.UnifierName, len(o.Include), len(o.Exclude))
}

// Describe implements Operation.
func (o CreatePackage) Describe(EditContext) string {
	return fmt.Sprintf("create package %s at %s", o.Name, o.Path)
}

// Describe implements Operation.
func (o WriteConfig) Describe(EditContext) string {
	return "write config at " + o.Path
}

// DepFormat controls how dependency lines on the unification package are written.
type DepFormat uint8

const (
	// DepFormatVersionAndPath writes `name = { version = "x", path = "..." }`.
	DepFormatVersionAndPath DepFormat = iota
	// DepFormatPathOnly writes `name = { path = "..." }`.
	DepFormatPathOnly
)

// ParseDepFormat parses a configured dependency format.
func ParseDepFormat(s string) (DepFormat, bool) {
	switch s {
	case "", "version-and-path":
		return DepFormatVersionAndPath, true
	case "path-only":
		return DepFormatPathOnly, true
	default:
		return 0, false
	}
}

// EditContext carries what is needed to apply operations to manifests.
type EditContext struct {
	// Root is the absolute workspace root.
	Root string
	// UnifierName is the name of the unification package.
	UnifierName string
	// UnifierDir is the absolute directory of the unification package.
	UnifierDir string
	// UnifierVersion is the version written in version-and-path format.
	UnifierVersion string
	DepFormat      DepFormat
}

// DependencyLine renders the dependency entry a member manifest at memberDir should carry.
func (c EditContext) DependencyLine(memberDir string) string {
	rel, err := filepath.Rel(memberDir, c.UnifierDir)
	if err != nil {
		rel = c.UnifierDir
	}
	rel = filepath.ToSlash(rel)
	if c.DepFormat == DepFormatPathOnly || c.UnifierVersion == "" {
		return fmt.Sprintf("%s = { path = %q }", c.UnifierName, rel)
	}
	return fmt.Sprintf("%s = { version = %q, path = %q }", c.UnifierName, c.UnifierVersion, rel)
}

// OperationSet is an ordered sequence of operations plus their edit context.
// An empty set means the workspace is already consistent.
type OperationSet struct {
	Ops     []Operation
	Context EditContext
}

// IsEmpty reports whether there is nothing to do.
func (s *OperationSet) IsEmpty() bool {
	return s == nil || len(s.Ops) == 0
}

// Len returns the number of operations.
func (s *OperationSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Ops)
}

// Display renders the operations as a human-readable preview, one per line.
func (s *OperationSet) Display() string {
	if s.IsEmpty() {
		return ""
	}
	var b strings.Builder
	for _, op := range s.Ops {
		b.WriteString("* ")
		b.WriteString(op.Describe(s.Context))
		b.WriteByte('\n')
	}
	return b.String()
}

// Outcome is the result of running an operation set or a reconciliation.
type Outcome uint8

const (
	// OutcomeUnchanged means there was nothing to do.
	OutcomeUnchanged Outcome = iota
	// OutcomeApplied means operations were applied.
	OutcomeApplied
	// OutcomePending means operations exist but were not applied.
	OutcomePending
	// OutcomeIdentical means generated contents equal the existing contents.
	OutcomeIdentical
	// OutcomeDiffers means generated contents differ from the existing contents.
	OutcomeDiffers
	// OutcomeUpdated means new contents were written.
	OutcomeUpdated
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeApplied:
		return "applied"
	case OutcomePending:
		return "pending"
	case OutcomeIdentical:
		return "identical"
	case OutcomeDiffers:
		return "differs"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit status the outcome maps to.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomePending, OutcomeDiffers:
		return 1
	default:
		return 0
	}
}
