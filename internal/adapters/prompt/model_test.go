package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(m confirmModel, keys ...tea.KeyMsg) (confirmModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(confirmModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModel_Update(t *testing.T) {
	tests := []struct {
		name        string
		keys        []tea.KeyMsg
		wantValue   bool
		wantDone    bool
		wantAborted bool
	}{
		{name: "enter accepts default", keys: []tea.KeyMsg{{Type: tea.KeyEnter}}, wantValue: true, wantDone: true},
		{name: "yes", keys: []tea.KeyMsg{runes("y")}, wantValue: true, wantDone: true},
		{name: "no", keys: []tea.KeyMsg{runes("N")}, wantValue: false, wantDone: true},
		{name: "toggle then enter", keys: []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, wantValue: false, wantDone: true},
		{name: "escape aborts", keys: []tea.KeyMsg{{Type: tea.KeyEsc}}, wantValue: true, wantAborted: true},
		{name: "ctrl+c aborts", keys: []tea.KeyMsg{{Type: tea.KeyCtrlC}}, wantValue: true, wantAborted: true},
		{name: "other keys ignored", keys: []tea.KeyMsg{runes("x")}, wantValue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(newConfirmModel("proceed?"), tt.keys...)
			assert.Equal(t, tt.wantValue, m.value)
			assert.Equal(t, tt.wantDone, m.done)
			assert.Equal(t, tt.wantAborted, m.aborted)
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	m := newConfirmModel("proceed?")
	assert.Contains(t, m.View(), "proceed?")
	assert.Contains(t, m.View(), "Yes")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.View())
}
