package domain

import "go.trai.ch/zerr"

// PackageRole classifies a package's relationship to the initially requested build targets.
// Roles are listed in priority order.
type PackageRole uint8

const (
	// RoleInitial is an explicitly requested build target.
	RoleInitial PackageRole = iota
	// RoleWorkspace is a workspace member that was not requested.
	RoleWorkspace
	// RoleDirect is a direct dependency of an initial package.
	RoleDirect
	// RoleTransitive is reachable only through other dependencies.
	RoleTransitive
)

// String returns the serialized form of the role.
func (r PackageRole) String() string {
	switch r {
	case RoleInitial:
		return "initial"
	case RoleWorkspace:
		return "workspace"
	case RoleDirect:
		return "direct"
	case RoleTransitive:
		return "transitive"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r PackageRole) MarshalText() ([]byte, error) {
	if r > RoleTransitive {
		return nil, zerr.With(ErrInvalidRole, "status", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *PackageRole) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// ParseRole parses the serialized form of a role.
func ParseRole(s string) (PackageRole, error) {
	switch s {
	case "initial":
		return RoleInitial, nil
	case "workspace":
		return RoleWorkspace, nil
	case "direct":
		return RoleDirect, nil
	case "transitive":
		return RoleTransitive, nil
	default:
		return 0, zerr.With(ErrInvalidRole, "status", s)
	}
}
