package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField struct {
	label    string
	hint     string
	secret   bool
	required bool
	limit    int
}

// form is a vertical list of labelled text inputs. At most one input is
// focused; a blurred form lets page keys through.
type form struct {
	fields []formField
	inputs []textinput.Model
	focus  int
	active bool
}

func newForm(fields ...formField) form {
	f := form{fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Placeholder = fd.hint
		ti.Prompt = ""
		ti.CharLimit = fd.limit
		if ti.CharLimit == 0 {
			ti.CharLimit = 256
		}
		if fd.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs[i] = ti
	}
	return f
}

// Focus activates the form at its first field.
func (f *form) Focus() tea.Cmd {
	f.active = true
	return f.focusIndex(0)
}

// Blur deactivates the form, keeping its values.
func (f *form) Blur() {
	f.active = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f form) Focused() bool { return f.active }

// Reset clears every value and blurs the form.
func (f *form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.Blur()
	f.focus = 0
}

func (f *form) focusIndex(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// Value returns the trimmed value of field i. Secret fields keep their
// whitespace.
func (f form) Value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	if f.fields[i].secret {
		return f.inputs[i].Value()
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

// SetValue sets field i.
func (f *form) SetValue(i int, v string) {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].SetValue(v)
	}
}

// Missing returns the label of the first empty required field.
func (f form) Missing() string {
	for i, fd := range f.fields {
		if fd.required && f.Value(i) == "" {
			return fd.label
		}
	}
	return ""
}

// formResult tells the caller what a key did to the form.
type formResult int

const (
	formEdited formResult = iota
	formSubmitted
	formCancelled
)

// Update routes a key to the form. Enter on the last field submits, enter
// elsewhere advances.
func (f *form) Update(msg tea.KeyMsg, keys keyMap) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		f.Blur()
		return formCancelled, nil
	case key.Matches(msg, keys.Submit):
		if f.focus == len(f.inputs)-1 {
			return formSubmitted, nil
		}
		return formEdited, f.focusIndex(f.focus + 1)
	case key.Matches(msg, keys.NextField):
		return formEdited, f.focusIndex(f.focus + 1)
	case key.Matches(msg, keys.PrevField):
		return formEdited, f.focusIndex(f.focus - 1)
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formEdited, cmd
}

// View renders the labelled inputs.
func (f form) View(styles Styles, theme Theme, width int) string {
	labelWidth := 0
	for _, fd := range f.fields {
		if n := len([]rune(fd.label)); n > labelWidth {
			labelWidth = n
		}
	}
	inputWidth := width - labelWidth - 6
	if inputWidth < 10 {
		inputWidth = 10
	}

	lines := make([]string, 0, len(f.fields))
	for i, fd := range f.fields {
		label := styles.MutedText.Render(padRight(fd.label, labelWidth))
		border := theme.BorderMuted
		if f.active && i == f.focus {
			label = styles.AccentText.Render(padRight(fd.label, labelWidth))
			border = theme.BorderFocus
		}
		ti := f.inputs[i]
		ti.Width = inputWidth
		field := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color(border)).
			Width(inputWidth).
			Render(ti.View())
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Bottom, label, "  ", field))
	}
	return strings.Join(lines, "\n")
}
