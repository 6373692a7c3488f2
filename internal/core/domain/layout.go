package domain

const (
	// ConfigPath is the location of the configuration file relative to the workspace root.
	ConfigPath = ".unify/config.yaml"

	// SummariesDir is the directory of stored summaries relative to the workspace root.
	SummariesDir = ".unify/summaries"

	// ManifestFileName is the name of a package manifest.
	ManifestFileName = "Cargo.toml"

	// LockFileName is the name of the workspace lock artifact.
	LockFileName = "Cargo.lock"

	// DirPerm is the default permission for directories created by unify.
	DirPerm = 0o750

	// FilePerm is the default permission for files written by unify.
	FilePerm = 0o644

	// SectionBegin marks the start of the managed section of the unification manifest.
	SectionBegin = "### BEGIN UNIFY SECTION"

	// SectionEnd marks the end of the managed section of the unification manifest.
	SectionEnd = "### END UNIFY SECTION"

	// AllowDirtyFlag is always passed to publish since the workflow edits a manifest first.
	AllowDirtyFlag = "--allow-dirty"
)

// ConfigComment is written at the top of the config file.
const ConfigComment = `# This file contains settings for ` + "`unify`" + `.
# Run ` + "`unify generate`" + ` after editing it.
`

// GeneratedHeader is written at the top of the unification package manifest.
const GeneratedHeader = `# This file is generated by ` + "`unify`" + `.
# To regenerate, run:
#     unify generate
`

// DisabledMessage replaces the managed section of a disabled unification package.
const DisabledMessage = `
# Disabled by running ` + "`unify disable`" + `.
# To re-enable, run:
#     unify generate
`

// NextSteps is printed after init succeeds.
var NextSteps = []string{
	"configure at " + ConfigPath,
	"run `unify generate` to generate contents",
	"run `unify manage-deps` to add dependency lines",
}
