package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ResolverVersion is the feature resolver algorithm version.
type ResolverVersion uint8

const (
	// ResolverV1 unifies features across all platforms and dependency kinds.
	ResolverV1 ResolverVersion = iota + 1
	// ResolverV2 keeps build, dev and target-specific features separate.
	ResolverV2
)

// String returns the serialized form of the resolver version.
func (v ResolverVersion) String() string {
	switch v {
	case ResolverV1:
		return "1"
	case ResolverV2:
		return "2"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v ResolverVersion) MarshalText() ([]byte, error) {
	if v != ResolverV1 && v != ResolverV2 {
		return nil, zerr.With(ErrInvalidResolverVersion, "version", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *ResolverVersion) UnmarshalText(text []byte) error {
	parsed, err := ParseResolverVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseResolverVersion parses "1", "2", "v1" or "v2".
func ParseResolverVersion(s string) (ResolverVersion, error) {
	switch strings.TrimPrefix(s, "v") {
	case "1":
		return ResolverV1, nil
	case "2":
		return ResolverV2, nil
	default:
		return 0, zerr.With(ErrInvalidResolverVersion, "version", s)
	}
}

// ResolutionOptions are the live options that drive a resolution run.
type ResolutionOptions struct {
	Version            ResolverVersion
	IncludeDev         bool
	ProcMacrosOnTarget bool
	HostPlatform       *Platform
	TargetPlatform     *Platform
	OmittedPackages    []PackageID
}

// DefaultResolutionOptions returns the options used when nothing is configured.
func DefaultResolutionOptions() ResolutionOptions {
	return ResolutionOptions{Version: ResolverV2}
}

// FeaturesOnlySummary is a package whose features are resolved without pulling in its dependencies.
type FeaturesOnlySummary struct {
	ID       SummaryID
	Features []string
}

// OptionsSummary is the serializable record of every option that influenced a resolution run.
type OptionsSummary struct {
	Version            ResolverVersion
	IncludeDev         bool
	ProcMacrosOnTarget bool
	HostPlatform       *PlatformSummary
	TargetPlatform     *PlatformSummary
	// OmittedPackages is sorted and free of duplicates.
	OmittedPackages []SummaryID
	// FeaturesOnly is sorted by identity, then by feature set.
	FeaturesOnly []FeaturesOnlySummary
}

// NewOptionsSummary builds the options summary for a resolution run.
// Omitted package IDs are expected to come from g.
func NewOptionsSummary(g *PackageGraph, featuresOnly []FeatureList, opts ResolutionOptions) (*OptionsSummary, error) {
	omitted := make([]SummaryID, 0, len(opts.OmittedPackages))
	for _, id := range opts.OmittedPackages {
		p, err := g.Metadata(id)
		if err != nil {
			return nil, zerr.Wrap(err, "omitted package is not in the package graph")
		}
		omitted = append(omitted, p.ToSummaryID())
	}
	slices.SortFunc(omitted, CompareSummaryIDs)
	omitted = slices.CompactFunc(omitted, SummaryID.Equal)

	fo := make([]FeaturesOnlySummary, 0, len(featuresOnly))
	for _, fl := range featuresOnly {
		fo = append(fo, FeaturesOnlySummary{
			ID:       g.Package(fl.Index).ToSummaryID(),
			Features: sortedUnique(fl.Features),
		})
	}
	slices.SortFunc(fo, compareFeaturesOnly)

	host, err := summarizePlatform(opts.HostPlatform, "while serializing host platform")
	if err != nil {
		return nil, err
	}
	target, err := summarizePlatform(opts.TargetPlatform, "while serializing target platform")
	if err != nil {
		return nil, err
	}

	return &OptionsSummary{
		Version:            opts.Version,
		IncludeDev:         opts.IncludeDev,
		ProcMacrosOnTarget: opts.ProcMacrosOnTarget,
		HostPlatform:       host,
		TargetPlatform:     target,
		OmittedPackages:    omitted,
		FeaturesOnly:       fo,
	}, nil
}

func summarizePlatform(p *Platform, which string) (*PlatformSummary, error) {
	if p == nil {
		return nil, nil
	}
	s, err := NewPlatformSummary(p)
	if err != nil {
		return nil, zerr.Wrap(err, which)
	}
	return s, nil
}

// ToResolutionOptions converts the summary back into live options against g.
// Every omitted package must be a workspace member of g.
// FeaturesOnly is not reconstructed, and platform flags and target features
// come back sorted and deduplicated rather than in their original order.
func (s *OptionsSummary) ToResolutionOptions(g *PackageGraph) (ResolutionOptions, error) {
	omitted := make([]PackageID, 0, len(s.OmittedPackages))
	for _, id := range s.OmittedPackages {
		pid, err := g.ResolveSummaryID(id)
		if err != nil {
			return ResolutionOptions{}, err
		}
		omitted = append(omitted, pid)
	}

	host, err := parsePlatform(s.HostPlatform, "parsing host platform")
	if err != nil {
		return ResolutionOptions{}, err
	}
	target, err := parsePlatform(s.TargetPlatform, "parsing target platform")
	if err != nil {
		return ResolutionOptions{}, err
	}

	return ResolutionOptions{
		Version:            s.Version,
		IncludeDev:         s.IncludeDev,
		ProcMacrosOnTarget: s.ProcMacrosOnTarget,
		HostPlatform:       host,
		TargetPlatform:     target,
		OmittedPackages:    omitted,
	}, nil
}

func parsePlatform(s *PlatformSummary, which string) (*Platform, error) {
	if s == nil {
		return nil, nil
	}
	p, err := s.ToPlatform()
	if err != nil {
		return nil, zerr.Wrap(err, which)
	}
	return p, nil
}

func compareFeaturesOnly(a, b FeaturesOnlySummary) int {
	if c := CompareSummaryIDs(a.ID, b.ID); c != 0 {
		return c
	}
	return slices.Compare(a.Features, b.Features)
}
