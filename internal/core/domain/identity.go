package domain

import (
	"cmp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// SummaryID is the canonical identity of a package in a build summary.
type SummaryID struct {
	Name    string
	Version *semver.Version
	Source  SummarySource
}

// NewSummaryID parses version and returns a SummaryID.
func NewSummaryID(name, version string, source SummarySource) (SummaryID, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return SummaryID{}, zerr.With(err, "package", name)
	}
	return SummaryID{Name: name, Version: v, Source: source}, nil
}

// ParseVersion parses a strict semantic version.
func ParseVersion(version string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidVersion, err.Error()), "version", version)
	}
	return v, nil
}

// VersionString returns the canonical version string, or "" if unset.
func (id SummaryID) VersionString() string {
	if id.Version == nil {
		return ""
	}
	return id.Version.String()
}

// Key returns a string that uniquely identifies the SummaryID, suitable as a map key.
func (id SummaryID) Key() string {
	var b strings.Builder
	b.WriteString(id.Name)
	b.WriteByte(0)
	b.WriteString(id.VersionString())
	b.WriteByte(0)
	if id.Source != nil {
		b.WriteString(id.Source.String())
	}
	return b.String()
}

// String returns a human-readable form of the identity.
func (id SummaryID) String() string {
	src := "<none>"
	if id.Source != nil {
		src = id.Source.String()
	}
	return id.Name + " " + id.VersionString() + " (" + src + ")"
}

// Equal reports whether two identities have the same name, version and source.
func (id SummaryID) Equal(other SummaryID) bool {
	return CompareSummaryIDs(id, other) == 0
}

// CompareSummaryIDs orders identities by name, then version, then source.
func CompareSummaryIDs(a, b SummaryID) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := compareVersions(a.Version, b.Version); c != 0 {
		return c
	}
	switch {
	case a.Source == nil && b.Source == nil:
		return 0
	case a.Source == nil:
		return -1
	case b.Source == nil:
		return 1
	}
	return CompareSources(a.Source, b.Source)
}

// compareVersions is a total order: semver precedence first, then the canonical
// string so that versions differing only in build metadata are still distinct.
func compareVersions(a, b *semver.Version) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := a.Compare(b); c != 0 {
		return c
	}
	return cmp.Compare(a.String(), b.String())
}
