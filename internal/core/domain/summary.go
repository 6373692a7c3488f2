package domain

import (
	"maps"
	"slices"
)

// FeatureList is a package together with the features resolved for it.
type FeatureList struct {
	Index    int
	Features []string
}

// ResolvedSet is the output of a single resolution run.
type ResolvedSet struct {
	Initials     PackageSet
	FeaturesOnly []FeatureList
	// Target and Host are listed in a deterministic traversal order.
	Target           []FeatureList
	Host             []FeatureList
	TargetDirectDeps PackageSet
	HostDirectDeps   PackageSet
}

// ToSummary builds the build summary for this run.
func (r *ResolvedSet) ToSummary(g *PackageGraph, opts ResolutionOptions) (*BuildSummary, error) {
	meta, err := NewOptionsSummary(g, r.FeaturesOnly, opts)
	if err != nil {
		return nil, err
	}
	target, err := ClassifyPackages(g, r.Target, r.Initials, r.TargetDirectDeps)
	if err != nil {
		return nil, err
	}
	host, err := ClassifyPackages(g, r.Host, r.Initials, r.HostDirectDeps)
	if err != nil {
		return nil, err
	}
	return &BuildSummary{
		Metadata:       meta,
		TargetPackages: target,
		HostPackages:   host,
	}, nil
}

// PackageInfo is the role and enabled features of a package in a summary.
type PackageInfo struct {
	Role PackageRole
	// Features is sorted and free of duplicates.
	Features []string
}

// PackageEntry is a single summary entry.
type PackageEntry struct {
	ID   SummaryID
	Info PackageInfo
}

// PackageMap maps package identities to their summary info.
type PackageMap struct {
	entries map[string]PackageEntry
}

// NewPackageMap creates an empty package map.
func NewPackageMap() PackageMap {
	return PackageMap{entries: make(map[string]PackageEntry)}
}

// Insert adds an entry and reports whether the identity was already present.
func (m *PackageMap) Insert(id SummaryID, info PackageInfo) bool {
	if m.entries == nil {
		m.entries = make(map[string]PackageEntry)
	}
	key := id.Key()
	_, existed := m.entries[key]
	info.Features = sortedUnique(info.Features)
	m.entries[key] = PackageEntry{ID: id, Info: info}
	return existed
}

// Get returns the info for id.
func (m PackageMap) Get(id SummaryID) (PackageInfo, bool) {
	e, ok := m.entries[id.Key()]
	return e.Info, ok
}

// Len returns the number of entries.
func (m PackageMap) Len() int {
	return len(m.entries)
}

// Entries returns all entries in canonical identity order.
func (m PackageMap) Entries() []PackageEntry {
	entries := slices.Collect(maps.Values(m.entries))
	slices.SortFunc(entries, func(a, b PackageEntry) int {
		return CompareSummaryIDs(a.ID, b.ID)
	})
	return entries
}

// Equal reports whether both maps hold the same entries.
func (m PackageMap) Equal(other PackageMap) bool {
	return maps.EqualFunc(m.entries, other.entries, func(a, b PackageEntry) bool {
		return a.ID.Equal(b.ID) && a.Info.Role == b.Info.Role && slices.Equal(a.Info.Features, b.Info.Features)
	})
}

// BuildSummary is the serializable snapshot of a resolution run.
type BuildSummary struct {
	Metadata       *OptionsSummary
	TargetPackages PackageMap
	HostPackages   PackageMap
}
