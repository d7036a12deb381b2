package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m formModel, s string) formModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	out, ok := next.(formModel)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m formModel, k tea.KeyType) (formModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	out, ok := next.(formModel)
	require.True(t, ok)
	return out, cmd
}

func TestFormModel_FillAndSubmit(t *testing.T) {
	m := newFormModel("Log in", []Field{
		{Label: "login"},
		{Label: "secret", Secret: true},
	})

	m = typeText(t, m, "alice@example.com")
	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.focus)
	assert.False(t, m.submitted)

	m = typeText(t, m, "hunter2")
	m, cmd = press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.submitted)
	assert.Equal(t, []string{"alice@example.com", "hunter2"}, m.values())
}

func TestFormModel_SecretIsMasked(t *testing.T) {
	m := newFormModel("Log in", []Field{{Label: "secret", Secret: true}})
	m = typeText(t, m, "hunter2")

	view := m.View()
	assert.NotContains(t, view, "hunter2")
	assert.Contains(t, view, "*******")
}

func TestFormModel_PrefilledValues(t *testing.T) {
	m := newFormModel("Update", []Field{
		{Label: "website", Value: "example.com"},
		{Label: "username", Value: "alice"},
	})
	assert.Equal(t, []string{"example.com", "alice"}, m.values())
}

func TestFormModel_Navigation(t *testing.T) {
	m := newFormModel("f", []Field{{Label: "a"}, {Label: "b"}, {Label: "c"}})

	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, 1, m.focus)
	m, _ = press(t, m, tea.KeyShiftTab)
	m, _ = press(t, m, tea.KeyShiftTab)
	assert.Equal(t, 2, m.focus)
	assert.True(t, m.inputs[2].Focused())
	assert.False(t, m.inputs[0].Focused())
}

func TestFormModel_Cancel(t *testing.T) {
	m := newFormModel("f", []Field{{Label: "a"}})
	m, cmd := press(t, m, tea.KeyEsc)

	require.NotNil(t, cmd)
	assert.True(t, m.quit)
	assert.False(t, m.submitted)
}
