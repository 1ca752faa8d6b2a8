package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/moodlog/internal/api"
)

type moodState struct {
	choice  int // index into api.Moods
	details form
	answer  form
}

func newMoodState() moodState {
	return moodState{
		details: newForm(formField{label: "Details", hint: "what shaped your day?", limit: 500}),
		answer:  newForm(formField{label: "Answer", hint: "your answer", required: true, limit: 1000}),
	}
}

func (m Model) handleMoodKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.mood.choice = (m.mood.choice + len(api.Moods) - 1) % len(api.Moods)
	case key.Matches(msg, m.keys.Right):
		m.mood.choice = (m.mood.choice + 1) % len(api.Moods)
	case key.Matches(msg, m.keys.Submit, m.keys.Edit):
		cmd := m.mood.details.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Answer):
		if m.snapshot.Question == "" {
			m.setStatus("No question today")
			return m, nil
		}
		cmd := m.mood.answer.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if !m.snapshot.HasMood {
			m.setStatus("Nothing to delete, no mood logged today")
			return m, nil
		}
		cmd := m.deleteMood()
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refreshNow()
		return m, cmd
	}
	return m, nil
}

func (m *Model) submitMood() tea.Cmd {
	if m.client == nil {
		return nil
	}
	input := api.MoodEntryInput{
		Mood:    api.Moods[m.mood.choice],
		Details: m.mood.details.Value(0),
	}
	m.mood.details.Reset()
	m.pending++
	ctx, client := m.ctx, m.client
	return actionCmd("Mood saved: "+input.Mood, true, func() (*api.Response, error) {
		return client.CreateMoodEntry(ctx, input)
	})
}

func (m *Model) deleteMood() tea.Cmd {
	if m.client == nil {
		return nil
	}
	m.pending++
	ctx, client := m.ctx, m.client
	return actionCmd("Today's mood deleted", true, func() (*api.Response, error) {
		return client.DeleteMoodEntry(ctx)
	})
}

func (m *Model) submitAnswer() tea.Cmd {
	if missing := m.mood.answer.Missing(); missing != "" {
		m.setStatus(missing + " is required")
		m.status.isErr = true
		return nil
	}
	if m.client == nil {
		return nil
	}
	answer := m.mood.answer.Value(0)
	m.mood.answer.Reset()
	m.pending++
	ctx, client := m.ctx, m.client
	return actionCmd("Answer saved", true, func() (*api.Response, error) {
		return client.AnswerDailyQuestion(ctx, answer)
	})
}

func (m Model) renderMood() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Today"))
	b.WriteString("\n")
	switch {
	case !snap.HasData:
		b.WriteString(styles.MutedText.Render("Loading your dashboard..."))
	case snap.HasMood:
		b.WriteString(styles.MoodBadge(snap.TodayMood.Mood).Render(snap.TodayMood.Mood))
		if d := strings.TrimSpace(snap.TodayMood.Details); d != "" {
			b.WriteString("  ")
			b.WriteString(styles.Text.Render(truncate(d, maxInt(m.width-30, 20))))
		}
		if !snap.TodayMood.Timestamp.IsZero() {
			b.WriteString("  ")
			b.WriteString(styles.FaintText.Render(snap.TodayMood.Timestamp.Local().Format("15:04")))
		}
	default:
		b.WriteString(styles.MutedText.Render("No mood logged yet"))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.Text.Bold(true).Render("How do you feel?"))
	b.WriteString("\n")
	choices := make([]string, 0, len(api.Moods))
	for i, mood := range api.Moods {
		if i == m.mood.choice {
			choices = append(choices, styles.MoodBadge(mood).Bold(true).Render("› "+mood))
		} else {
			choices = append(choices, styles.MutedText.Render("  "+mood+" "))
		}
	}
	b.WriteString(strings.Join(choices, " "))
	b.WriteString("\n\n")
	b.WriteString(m.mood.details.View(styles, m.theme, minInt(m.width-8, 80)))
	b.WriteString("\n\n")

	if snap.Question != "" {
		b.WriteString(styles.Text.Bold(true).Render("Question of the day"))
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(snap.Question))
		b.WriteString("\n")
		b.WriteString(m.mood.answer.View(styles, m.theme, minInt(m.width-8, 80)))
		b.WriteString("\n\n")
	}

	hint := "h/l: choose  enter: log mood  x: delete today's  a: answer  r: refresh"
	if m.mood.details.Focused() || m.mood.answer.Focused() {
		hint = "enter: save  esc: cancel"
	}
	b.WriteString(styles.FaintText.Render(hint))
	return b.String()
}
