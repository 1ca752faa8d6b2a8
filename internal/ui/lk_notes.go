package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/moodlog/internal/api"
)

type notesState struct {
	cursor int
	input  form
}

func newNotesState() notesState {
	return notesState{
		input: newForm(formField{label: "Note", hint: "write something", required: true, limit: 2000}),
	}
}

func (s *notesState) clampCursor(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Notes)
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.notes.cursor < count-1 {
			m.notes.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.notes.cursor > 0 {
			m.notes.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.notes.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.notes.cursor = maxInt(count-1, 0)
	case key.Matches(msg, m.keys.New, m.keys.Submit):
		cmd := m.notes.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if count == 0 {
			return m, nil
		}
		cmd := m.deleteNote(m.snapshot.Notes[m.notes.cursor])
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refreshNow()
		return m, cmd
	}
	return m, nil
}

func (m *Model) submitNote() tea.Cmd {
	if missing := m.notes.input.Missing(); missing != "" {
		m.setStatus(missing + " is required")
		m.status.isErr = true
		return nil
	}
	if m.client == nil {
		return nil
	}
	input := api.NoteInput{Text: m.notes.input.Value(0)}
	m.notes.input.Reset()
	m.pending++
	ctx, client := m.ctx, m.client
	return actionCmd("Note added", true, func() (*api.Response, error) {
		return client.AddNote(ctx, input)
	})
}

func (m *Model) deleteNote(note api.Note) tea.Cmd {
	if m.client == nil {
		return nil
	}
	m.pending++
	ctx, client := m.ctx, m.client
	id := strconv.FormatInt(note.ID, 10)
	return actionCmd("Note deleted", true, func() (*api.Response, error) {
		return client.DeleteNote(ctx, id)
	})
}

func (m Model) renderNotes() string {
	styles := m.theme.Styles()
	notes := m.snapshot.Notes
	var b strings.Builder

	b.WriteString(m.notes.input.View(styles, m.theme, minInt(m.width-8, 80)))
	b.WriteString("\n\n")

	if len(notes) == 0 {
		b.WriteString(styles.MutedText.Render("No notes yet. Press n to write one."))
	} else {
		// Keep the cursor visible when the list is taller than the box.
		visible := maxInt(m.contentHeight()-10, 3)
		start := 0
		if m.notes.cursor >= visible {
			start = m.notes.cursor - visible + 1
		}
		end := minInt(start+visible, len(notes))
		textWidth := maxInt(m.width-24, 20)
		for i := start; i < end; i++ {
			n := notes[i]
			stamp := ""
			if !n.CreatedAt.IsZero() {
				stamp = n.CreatedAt.Local().Format("Jan 02 15:04")
			}
			line := padRight(stamp, 13) + truncate(strings.ReplaceAll(n.Text, "\n", " "), textWidth)
			if i == m.notes.cursor {
				b.WriteString(styles.Selected.Render("› " + line))
			} else {
				b.WriteString(styles.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString(styles.FaintText.Render(strconv.Itoa(len(notes)) + " notes"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "j/k: select  n: new note  x: delete  r: refresh"
	if m.notes.input.Focused() {
		hint = "enter: save  esc: cancel"
	}
	b.WriteString(styles.FaintText.Render(hint))
	return b.String()
}
