package ports

import "context"

// BuildTool runs the host build tool's workspace-level actions.
//
//go:generate go run go.uber.org/mock/mockgen -source=buildtool.go -destination=mocks/mock_buildtool.go -package=mocks
type BuildTool interface {
	// RegenerateLockfile brings the lock artifact of the workspace at root up to date.
	RegenerateLockfile(ctx context.Context, root string) error

	// Publish publishes the package in dir, passing args through.
	Publish(ctx context.Context, dir string, args []string) error
}
