package domain

import "go.trai.ch/zerr"

// ClassifyPackages assigns every package in features a role and collects them into a PackageMap.
// The first matching guard wins: initial, then workspace member, then direct dependency, then transitive.
func ClassifyPackages(g *PackageGraph, features []FeatureList, initials, directDeps PackageSet) (PackageMap, error) {
	m := NewPackageMap()
	for _, fl := range features {
		p := g.Package(fl.Index)
		info := PackageInfo{
			Role:     classify(p, initials, directDeps),
			Features: fl.Features,
		}
		if m.Insert(p.ToSummaryID(), info) {
			return PackageMap{}, zerr.With(ErrDuplicatePackage, "package", p.ToSummaryID().String())
		}
	}
	return m, nil
}

func classify(p *PackageMetadata, initials, directDeps PackageSet) PackageRole {
	switch {
	case initials.Contains(p.Index):
		return RoleInitial
	case p.InWorkspace():
		return RoleWorkspace
	case directDeps.Contains(p.Index):
		return RoleDirect
	default:
		return RoleTransitive
	}
}
