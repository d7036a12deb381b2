package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FormPrompter collects field values interactively.
type FormPrompter struct {
	opts []tea.ProgramOption
}

func NewFormPrompter(opts ...tea.ProgramOption) *FormPrompter {
	return &FormPrompter{opts: opts}
}

// Prompt shows fields and returns their values in order. Cancelling the
// form returns ErrUserQuit.
func (p *FormPrompter) Prompt(title string, fields []Field) ([]string, error) {
	final, err := tea.NewProgram(newFormModel(title, fields), p.opts...).Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(formModel)
	if !ok {
		return nil, tea.ErrProgramKilled
	}
	if m.quit || !m.submitted {
		return nil, ErrUserQuit
	}
	return m.values(), nil
}
