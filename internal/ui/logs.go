package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"

	"github.com/five82/moodlog/internal/logtail"
)

var logLevels = []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}

// logState holds the log tab's state.
type logState struct {
	entries  []logtail.Entry
	minLevel zapcore.Level
	follow   bool
	dirty    bool
	err      error
}

func newLogState() logState {
	return logState{minLevel: zapcore.InfoLevel, follow: true}
}

func nextLevel(l zapcore.Level) zapcore.Level {
	for i, candidate := range logLevels {
		if candidate == l {
			return logLevels[(i+1)%len(logLevels)]
		}
	}
	return zapcore.InfoLevel
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(maxInt(m.width-4, 10), maxInt(m.contentHeight()-6, 3))
}

// updateLogViewport re-renders log content when it changed and keeps the
// view pinned to the bottom while following.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Width = maxInt(m.width-4, 10)
	m.logViewport.Height = maxInt(m.contentHeight()-6, 3)
	if m.logState.dirty {
		m.logViewport.SetContent(m.renderLogContent())
		m.logState.dirty = false
	}
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logState.err = msg.err
	if msg.err == nil {
		m.logState.entries = msg.entries
	}
	m.logState.dirty = true
	m.updateLogViewport()
}

func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
			return m, readLogCmd(m.logPath)
		}
	case key.Matches(msg, m.keys.CycleLevel):
		m.logState.minLevel = nextLevel(m.logState.minLevel)
		m.logState.dirty = true
		m.updateLogViewport()
	case key.Matches(msg, m.keys.Refresh):
		return m, readLogCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = false
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
		m.logState.follow = false
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
		m.logState.follow = false
	}
	return m, nil
}

func (m Model) renderLogTab() string {
	styles := m.theme.Styles()
	var b strings.Builder

	follow := "paused"
	if m.logState.follow {
		follow = "following"
	}
	b.WriteString(styles.MutedText.Render(truncate(m.logPath, maxInt(m.width-40, 20))))
	b.WriteString("  ")
	b.WriteString(styles.AccentText.Render("≥" + m.logState.minLevel.CapitalString()))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(follow))
	b.WriteString("\n")
	if m.logState.err != nil {
		b.WriteString(styles.DangerText.Render(m.logState.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.logViewport.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("space: follow  f: level  j/k: scroll  g/G: top/bottom  r: reload"))
	return b.String()
}

// renderLogContent formats the filtered entries, one per line.
func (m *Model) renderLogContent() string {
	styles := m.theme.Styles()
	entries := logtail.Filter(m.logState.entries, m.logState.minLevel, "")
	if len(entries) == 0 {
		return styles.MutedText.Render("No log entries")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatLogEntry(e, styles))
	}
	return strings.Join(lines, "\n")
}

func formatLogEntry(e logtail.Entry, styles Styles) string {
	if !e.Structured {
		return styles.Text.Render(e.Raw)
	}
	var parts []string
	if !e.Time.IsZero() {
		parts = append(parts, styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
	}
	parts = append(parts, levelStyle(e.Level, styles).Render(padRight(e.Level.CapitalString(), 5)))
	if e.Logger != "" {
		parts = append(parts, styles.AccentText.Render("["+e.Logger+"]"))
	}
	parts = append(parts, styles.Text.Render(e.Message))
	for _, k := range e.FieldKeys() {
		parts = append(parts, styles.MutedText.Render(k+"="+e.Fields[k]))
	}
	return strings.Join(parts, " ")
}

func levelStyle(l zapcore.Level, styles Styles) lipgloss.Style {
	switch {
	case l >= zapcore.ErrorLevel:
		return styles.DangerText
	case l == zapcore.WarnLevel:
		return styles.WarningText
	case l == zapcore.DebugLevel:
		return styles.InfoText
	default:
		return styles.SuccessText
	}
}
