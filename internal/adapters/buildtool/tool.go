// Package buildtool runs the workspace-level actions of the host build tool.
package buildtool

import (
	"context"
	"io"
	"os"

	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvBinary names the environment variable that overrides the build tool binary.
const EnvBinary = "CARGO"

// Binary returns the build tool binary to invoke.
func Binary() string {
	if b := os.Getenv(EnvBinary); b != "" {
		return b
	}
	return "cargo"
}

var _ ports.BuildTool = (*Tool)(nil)

// Tool implements ports.BuildTool on top of an executor.
type Tool struct {
	executor ports.Executor
	binary   string
	stdout   io.Writer
	stderr   io.Writer
}

// New creates a Tool that streams output to the process's stdout and stderr.
func New(executor ports.Executor) *Tool {
	return &Tool{
		executor: executor,
		binary:   Binary(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// SetOutput sets where the build tool's output is streamed.
func (t *Tool) SetOutput(stdout, stderr io.Writer) {
	t.stdout = stdout
	t.stderr = stderr
}

// RegenerateLockfile updates the lock artifact by resolving the dependency tree.
// The tree itself is discarded.
func (t *Tool) RegenerateLockfile(ctx context.Context, root string) error {
	err := t.executor.Run(ctx, ports.Command{
		Dir:    root,
		Name:   t.binary,
		Args:   []string{"tree"},
		Stderr: t.stderr,
	})
	if err != nil {
		return zerr.Wrap(err, "updating Cargo.lock failed")
	}
	return nil
}

// Publish runs the publish command in dir.
func (t *Tool) Publish(ctx context.Context, dir string, args []string) error {
	return t.executor.Run(ctx, ports.Command{
		Dir:    dir,
		Name:   t.binary,
		Args:   append([]string{"publish"}, args...),
		Stdout: t.stdout,
		Stderr: t.stderr,
	})
}
