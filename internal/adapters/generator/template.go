package generator

import "go.trai.ch/unify/internal/core/domain"

const libRS = `// This is a stub lib.rs.
`

// NewPackage returns the operation creating an empty unification package named name at path.
func NewPackage(path, name string) domain.CreatePackage {
	return domain.CreatePackage{
		Path: path,
		Name: name,
		Manifest: domain.GeneratedHeader +
			"\n[package]\n" +
			"name = \"" + name + "\"\n" +
			"version = \"0.1.0\"\n" +
			"edition = \"2021\"\n" +
			"description = \"workspace-hack package, managed by unify\"\n" +
			"publish = false\n" +
			"\n" +
			domain.SectionBegin + "\n" +
			domain.SectionEnd + "\n",
		LibRS: libRS,
	}
}
