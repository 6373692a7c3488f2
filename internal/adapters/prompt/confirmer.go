// Package prompt asks the user for confirmation on the terminal.
package prompt

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/unify/internal/core/domain"
	"go.trai.ch/unify/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

var _ ports.Confirmer = (*Confirmer)(nil)

// Confirmer implements ports.Confirmer with a bubbletea program.
type Confirmer struct {
	in  io.Reader
	out io.Writer
}

// New creates a Confirmer reading keys from in and rendering to out.
func New(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: in, out: out}
}

// Confirm implements ports.Confirmer.
// Input backed by a file must be a terminal.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if f, ok := c.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, zerr.Wrap(zerr.New("input is not a terminal, pass --yes to proceed"), domain.ErrPromptFailed.Error())
	}

	p := tea.NewProgram(newConfirmModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
	)
	result, err := p.Run()
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrPromptFailed.Error())
	}

	m, ok := result.(confirmModel)
	if !ok {
		return false, domain.ErrPromptFailed
	}
	if m.aborted {
		return false, zerr.Wrap(domain.ErrPromptAborted, domain.ErrPromptFailed.Error())
	}
	if !m.done {
		return false, zerr.Wrap(io.ErrUnexpectedEOF, domain.ErrPromptFailed.Error())
	}
	return m.value, nil
}
