// Package shell provides a subprocess executor for the build tool.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
)

// tailSize is how much trailing output is kept for error reports.
const tailSize = 8 << 10

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Run executes the command and waits for it to exit.
//
// When the command has a stdout writer, it runs in a PTY so the build tool
// keeps its terminal formatting; output is merged into stdout. Without one,
// stdout is discarded and stderr is streamed through pipes.
func (e *Executor) Run(ctx context.Context, c ports.Command) error {
	tail := &tailBuffer{}

	if c.Stdout != nil {
		err := runPTY(ctx, c, io.MultiWriter(c.Stdout, tail))
		if err == nil || !errors.Is(err, errPTYUnavailable) {
			return commandError(c, err, tail)
		}
	}

	cmd := command(ctx, c)
	cmd.Stdout = orDiscard(c.Stdout)
	cmd.Stderr = io.MultiWriter(orDiscard(c.Stderr), tail)
	return commandError(c, cmd.Run(), tail)
}

// Output executes the command and returns its standard output.
func (e *Executor) Output(ctx context.Context, c ports.Command) ([]byte, error) {
	tail := &tailBuffer{}
	var stdout bytes.Buffer

	cmd := command(ctx, c)
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(orDiscard(c.Stderr), tail)
	if err := commandError(c, cmd.Run(), tail); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

var errPTYUnavailable = errors.New("pty unavailable")

func runPTY(ctx context.Context, c ports.Command, out io.Writer) error {
	cmd := command(ctx, c)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return errors.Join(errPTYUnavailable, err)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		_, _ = io.Copy(&crlfWriter{w: out}, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone
	return err
}

func command(ctx context.Context, c ports.Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // build tool is configured by the user
	cmd.Dir = c.Dir
	cmd.Env = os.Environ()
	return cmd
}

func commandError(c ports.Command, err error, tail *tailBuffer) error {
	if err == nil {
		return nil
	}
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	wrapped := zerr.Wrap(err, domain.ErrCommandFailed.Error())
	wrapped = zerr.With(wrapped, "command", strings.Join(append([]string{c.Name}, c.Args...), " "))
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if out := strings.TrimSpace(tail.String()); out != "" {
		wrapped = zerr.With(wrapped, "output", out)
	}
	return wrapped
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// tailBuffer keeps the last tailSize bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - tailSize; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}

// crlfWriter turns the PTY's CRLF line endings back into LF.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\r\n"), []byte("\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
