package config

import "go.trai.ch/unify/internal/core/codec"

// File represents the structure of the .unify/config.yaml configuration file.
type File struct {
	UnificationPackage string      `yaml:"unification-package" validate:"required"`
	DepFormat          string      `yaml:"dep-format,omitempty" validate:"omitempty,oneof=version-and-path path-only"`
	Resolver           ResolverDTO `yaml:"resolver,omitempty"`
	FeaturesOnly       []string    `yaml:"features-only,omitempty" validate:"dive,required"`
	Excludes           []string    `yaml:"excludes,omitempty" validate:"dive,required"`
	Output             OutputDTO   `yaml:"output,omitempty"`
}

// ResolverDTO represents the resolution options in the configuration.
type ResolverDTO struct {
	Version            string             `yaml:"version,omitempty" validate:"omitempty,oneof=1 2 v1 v2"`
	IncludeDev         bool               `yaml:"include-dev,omitempty"`
	ProcMacrosOnTarget bool               `yaml:"proc-macros-on-target,omitempty"`
	HostPlatform       *codec.PlatformDoc `yaml:"host-platform,omitempty"`
	TargetPlatform     *codec.PlatformDoc `yaml:"target-platform,omitempty"`
	OmittedPackages    []OmittedDTO       `yaml:"omitted-packages,omitempty" validate:"dive"`
}

// OmittedDTO identifies a workspace member left out of unification.
type OmittedDTO struct {
	Name          string `yaml:"name" validate:"required"`
	Version       string `yaml:"version" validate:"required,semver"`
	WorkspacePath string `yaml:"workspace-path" validate:"required"`
}

// OutputDTO represents the output options of the generated section.
type OutputDTO struct {
	ExactVersions bool `yaml:"exact-versions,omitempty"`
}
