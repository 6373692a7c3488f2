package prompt

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/unify/internal/ui/style"
)

// confirmModel is a yes/no question defaulting to yes.
type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func newConfirmModel(title string) confirmModel {
	return confirmModel{title: title, value: true}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "y", "Y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	yes, no := " Yes ", " No "
	if m.value {
		yes = style.Selected.Render(yes)
	} else {
		no = style.Selected.Render(no)
	}
	return fmt.Sprintf("%s %s / %s %s\n",
		style.Question.Render(m.title), yes, no, style.Hint.Render("(y/n)"))
}
