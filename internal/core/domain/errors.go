package domain

import "go.trai.ch/zerr"

var (
	// ErrPackageNotFound is returned when a package identity or name cannot be found in the package graph.
	ErrPackageNotFound = zerr.New("package not found in graph")

	// ErrNotWorkspaceMember is returned when a package name refers to a package outside the workspace.
	ErrNotWorkspaceMember = zerr.New("package is not a workspace member")

	// ErrUnsupportedSource is returned when a summary source cannot be converted back into a live package.
	ErrUnsupportedSource = zerr.New("conversion from non-workspace sources is currently unsupported")

	// ErrUnknownSource is returned when a summary source variant is not recognized.
	ErrUnknownSource = zerr.New("unknown summary source")

	// ErrDuplicatePackage is returned when a resolved selection yields the same package twice.
	ErrDuplicatePackage = zerr.New("package appears more than once in resolved selection")

	// ErrInvalidVersion is returned when a package version is not valid semver.
	ErrInvalidVersion = zerr.New("invalid package version")

	// ErrInvalidResolverVersion is returned when a resolver version is neither 1 nor 2.
	ErrInvalidResolverVersion = zerr.New("invalid resolver version, expected '1' or '2'")

	// ErrInvalidRole is returned when a package status string is not recognized.
	ErrInvalidRole = zerr.New("invalid package status")

	// ErrPlatformSummary is returned when a platform cannot be represented as a summary.
	ErrPlatformSummary = zerr.New("platform cannot be summarized")

	// ErrPlatformParse is returned when a platform summary cannot be parsed back into a platform.
	ErrPlatformParse = zerr.New("failed to parse platform")

	// ErrInvalidTargetExpr is returned when a dependency target expression cannot be evaluated.
	ErrInvalidTargetExpr = zerr.New("invalid target expression")

	// ErrUnificationPackageMissing is returned when the configured unification package is not a workspace member.
	ErrUnificationPackageMissing = zerr.New("unification package is not a workspace member")

	// ErrUnknownOperation is returned when an operation variant is not recognized.
	ErrUnknownOperation = zerr.New("unknown workspace operation")

	// ErrUnknownMode is returned when a confirmation mode is not recognized.
	ErrUnknownMode = zerr.New("unknown confirmation mode")

	// ErrPendingChanges signals that operations or differences exist but were not applied.
	// It maps to exit status 1 without an error report.
	ErrPendingChanges = zerr.New("pending changes")

	// ErrVerificationFailed signals that the unification package does not do its job.
	// It maps to exit status 1 without an error report.
	ErrVerificationFailed = zerr.New("verification failed")

	// ErrRollbackFailed is returned when restoring a dependency edge after publishing fails.
	ErrRollbackFailed = zerr.New("failed to restore dependency after publish")

	// ErrCommandFailed is returned when an external build tool command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("could not read config")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("could not deserialize config")

	// ErrConfigInvalid is returned when the config file fails validation.
	ErrConfigInvalid = zerr.New("invalid config")

	// ErrMetadataFailed is returned when the package graph cannot be loaded.
	ErrMetadataFailed = zerr.New("building package graph failed")

	// ErrManifestReadFailed is returned when a manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when a manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestWriteFailed is returned when a manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrSectionMarkersMissing is returned when the managed section markers are missing from the unification manifest.
	ErrSectionMarkersMissing = zerr.New("managed section markers not found")

	// ErrPathOutsideWorkspace is returned when a path does not live under the workspace root.
	ErrPathOutsideWorkspace = zerr.New("path is not inside workspace root")

	// ErrInvalidSummaryName is returned when a stored summary name contains invalid characters.
	ErrInvalidSummaryName = zerr.New("summary name can only contain alphanumeric characters, dots, hyphens and underscores")

	// ErrSummaryNotFound is returned when a stored summary does not exist.
	ErrSummaryNotFound = zerr.New("summary not found")

	// ErrSummaryEncodeFailed is returned when a summary cannot be serialized.
	ErrSummaryEncodeFailed = zerr.New("failed to serialize summary")

	// ErrSummaryDecodeFailed is returned when a summary cannot be deserialized.
	ErrSummaryDecodeFailed = zerr.New("failed to deserialize summary")

	// ErrStoreWriteFailed is returned when a summary cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write summary")

	// ErrStoreReadFailed is returned when a summary cannot be read from the store.
	ErrStoreReadFailed = zerr.New("failed to read summary")

	// ErrPromptFailed is returned when the confirmation prompt cannot be shown.
	ErrPromptFailed = zerr.New("error reading input")

	// ErrStaleGraph is returned when a package graph is used after operations were applied against it.
	ErrStaleGraph = zerr.New("package graph is stale, reload the workspace")

	// ErrConfigExists is returned when init would overwrite an existing config file.
	ErrConfigExists = zerr.New("config file already exists, pass --skip-config to keep it")

	// ErrPromptAborted is returned when the user aborts the confirmation prompt.
	ErrPromptAborted = zerr.New("user aborted")
)
