package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field describes one input of a form.
type Field struct {
	Label       string
	Placeholder string
	Value       string
	// Secret masks the typed characters.
	Secret bool
}

type formModel struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int

	submitted bool
	quit      bool
}

func newFormModel(title string, fields []Field) formModel {
	m := formModel{title: title}
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.CharLimit = 256
		in.Width = 40
		in.SetValue(f.Value)
		if f.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		if i == 0 {
			in.Focus()
		}
		m.labels = append(m.labels, f.Label)
		m.inputs = append(m.inputs, in)
	}
	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.next):
			m.move(1)
			return m, nil
		case key.Matches(keyMsg, keys.prev):
			m.move(-1)
			return m, nil
		case key.Matches(keyMsg, keys.submit):
			if m.focus < len(m.inputs)-1 {
				m.move(1)
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		b.WriteString(labelStyle.Render(m.labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next field  enter confirm  esc cancel"))
	return b.String()
}

func (m *formModel) move(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m formModel) values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}
