// Package generator renders and rewrites the managed section of the unification package.
package generator

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultFeature = "default"
	gitPrefix      = "git+"
	registryPrefix = "registry+"
	sparsePrefix   = "sparse+"
)

var _ ports.SectionGenerator = (*Generator)(nil)

// Generator implements ports.SectionGenerator.
type Generator struct{}

// New creates a new Generator.
func New() *Generator {
	return &Generator{}
}

// Render returns the managed section for a resolution: every third-party
// package the initials depend on directly, with the features the workspace
// build enables for it. Target packages go to [dependencies], host packages
// to [build-dependencies].
func (g *Generator) Render(graph *domain.PackageGraph, set *domain.ResolvedSet, cfg *domain.Config) (string, error) {
	unifier, err := graph.MemberByName(cfg.UnificationPackage)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrUnificationPackageMissing.Error())
	}
	unifierPath, _ := unifier.Source.WorkspacePath()

	target, err := domain.ClassifyPackages(graph, set.Target, set.Initials, set.TargetDirectDeps)
	if err != nil {
		return "", err
	}
	host, err := domain.ClassifyPackages(graph, set.Host, set.Initials, set.HostDirectDeps)
	if err != nil {
		return "", err
	}

	var sections []string
	if lines := renderTable(target, unifierPath, cfg.ExactVersions); len(lines) > 0 {
		sections = append(sections, "[dependencies]\n"+strings.Join(lines, "\n")+"\n")
	}
	if lines := renderTable(host, unifierPath, cfg.ExactVersions); len(lines) > 0 {
		sections = append(sections, "[build-dependencies]\n"+strings.Join(lines, "\n")+"\n")
	}
	return strings.Join(sections, "\n"), nil
}

func renderTable(m domain.PackageMap, unifierPath string, exact bool) []string {
	seen := make(map[string]bool)
	var lines []string
	for _, e := range m.Entries() {
		if e.Info.Role != domain.RoleDirect {
			continue
		}
		key := e.ID.Name
		alias := seen[key]
		if alias {
			key = fmt.Sprintf("%s-%08x", e.ID.Name, uint32(xxhash.Sum64String(e.ID.Key())))
		}
		seen[e.ID.Name] = true
		lines = append(lines, key+" = { "+strings.Join(fields(e, unifierPath, exact, alias), ", ")+" }")
	}
	return lines
}

func fields(e domain.PackageEntry, unifierPath string, exact, alias bool) []string {
	var out []string
	if alias {
		out = append(out, "package = "+strconv.Quote(e.ID.Name))
	}

	version := e.ID.VersionString()
	if exact {
		version = "=" + version
	}

	switch src := e.ID.Source.(type) {
	case domain.RegistrySource:
		out = append(out, "version = "+strconv.Quote(version))
	case domain.PathSource:
		rel, err := filepath.Rel(filepath.FromSlash(unifierPath), filepath.FromSlash(src.Path))
		if err != nil {
			rel = src.Path
		}
		out = append(out, "path = "+strconv.Quote(filepath.ToSlash(rel)))
	case domain.ExternalSource:
		out = append(out, externalFields(src.URL, version)...)
	}

	features := slices.DeleteFunc(slices.Clone(e.Info.Features), func(f string) bool { return f == defaultFeature })
	if !slices.Contains(e.Info.Features, defaultFeature) {
		out = append(out, "default-features = false")
	}
	if len(features) > 0 {
		quoted := make([]string, len(features))
		for i, f := range features {
			quoted[i] = strconv.Quote(f)
		}
		out = append(out, "features = ["+strings.Join(quoted, ", ")+"]")
	}
	return out
}

// externalFields renders the source keys of a git or alternate registry package.
func externalFields(repr, version string) []string {
	switch {
	case strings.HasPrefix(repr, gitPrefix):
		url, rev, _ := strings.Cut(strings.TrimPrefix(repr, gitPrefix), "#")
		url, query, _ := strings.Cut(url, "?")
		out := []string{"git = " + strconv.Quote(url)}
		if key, value, ok := strings.Cut(query, "="); ok && (key == "branch" || key == "tag" || key == "rev") {
			out = append(out, key+" = "+strconv.Quote(value))
		} else if rev != "" {
			out = append(out, "rev = "+strconv.Quote(rev))
		}
		return out
	case strings.HasPrefix(repr, registryPrefix), strings.HasPrefix(repr, sparsePrefix):
		index := strings.TrimPrefix(repr, registryPrefix)
		return []string{"version = " + strconv.Quote(version), "registry-index = " + strconv.Quote(index)}
	default:
		return []string{"version = " + strconv.Quote(version)}
	}
}
