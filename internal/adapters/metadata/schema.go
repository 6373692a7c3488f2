package metadata

// document is the subset of the build tool's metadata output that unify reads.
type document struct {
	Packages         []packageDTO `json:"packages"`
	WorkspaceMembers []string     `json:"workspace_members"`
	Resolve          *resolveDTO  `json:"resolve"`
	WorkspaceRoot    string       `json:"workspace_root"`
}

type packageDTO struct {
	Name         string      `json:"name"`
	Version      string      `json:"version"`
	ID           string      `json:"id"`
	Source       *string     `json:"source"`
	ManifestPath string      `json:"manifest_path"`
	Targets      []targetDTO `json:"targets"`
}

type targetDTO struct {
	Kind []string `json:"kind"`
}

type resolveDTO struct {
	Nodes []nodeDTO `json:"nodes"`
}

type nodeDTO struct {
	ID       string   `json:"id"`
	Deps     []depDTO `json:"deps"`
	Features []string `json:"features"`
}

type depDTO struct {
	Name     string       `json:"name"`
	Pkg      string       `json:"pkg"`
	DepKinds []depKindDTO `json:"dep_kinds"`
}

type depKindDTO struct {
	Kind   *string `json:"kind"`
	Target *string `json:"target"`
}
