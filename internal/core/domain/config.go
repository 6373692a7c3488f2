package domain

import "slices"

// OmittedPackage identifies a package excluded from unification.
type OmittedPackage struct {
	Name          string
	Version       string
	WorkspacePath string
}

// Config is the validated unify configuration of a workspace.
type Config struct {
	// UnificationPackage is the name of the workspace member holding unified dependencies.
	UnificationPackage string
	DepFormat          DepFormat
	Resolver           ResolverConfig
	// FeaturesOnly lists members whose features are resolved without their dependencies.
	FeaturesOnly []string
	// Excludes lists members that must not depend on the unification package.
	Excludes []string
	// ExactVersions writes `=x.y.z` requirements in the managed section.
	ExactVersions bool
}

// ResolverConfig are the configured resolution options.
type ResolverConfig struct {
	Version            ResolverVersion
	IncludeDev         bool
	ProcMacrosOnTarget bool
	HostPlatform       *PlatformSummary
	TargetPlatform     *PlatformSummary
	OmittedPackages    []OmittedPackage
}

// ToOptionsSummary converts the configured resolver options into an options summary.
// Omitted packages are always workspace members.
func (r ResolverConfig) ToOptionsSummary() (*OptionsSummary, error) {
	omitted := make([]SummaryID, 0, len(r.OmittedPackages))
	for _, op := range r.OmittedPackages {
		id, err := NewSummaryID(op.Name, op.Version, WorkspaceSource{Path: op.WorkspacePath})
		if err != nil {
			return nil, err
		}
		omitted = append(omitted, id)
	}
	return &OptionsSummary{
		Version:            r.Version,
		IncludeDev:         r.IncludeDev,
		ProcMacrosOnTarget: r.ProcMacrosOnTarget,
		HostPlatform:       r.HostPlatform,
		TargetPlatform:     r.TargetPlatform,
		OmittedPackages:    omitted,
	}, nil
}

// IsExcluded reports whether name is in the exclude list.
func (c *Config) IsExcluded(name string) bool {
	return slices.Contains(c.Excludes, name)
}
