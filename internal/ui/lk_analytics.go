package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/moodlog/internal/api"
	"github.com/five82/moodlog/internal/state"
)

var periods = []api.Period{
	api.PeriodWeek,
	api.PeriodTwoWeeks,
	api.PeriodMonth,
	api.PeriodThreeMonths,
	api.PeriodHalfYear,
	api.PeriodYear,
}

type analyticsState struct {
	period  api.Period
	chart   []api.MoodChartPoint
	verdict string
	loaded  bool
}

func nextPeriod(p api.Period) api.Period {
	for i, candidate := range periods {
		if candidate == p {
			return periods[(i+1)%len(periods)]
		}
	}
	return periods[0]
}

func (m Model) handleAnalyticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CyclePeriod):
		m.analytics = analyticsState{period: nextPeriod(m.analytics.period)}
		cmd := m.enterTab()
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		m.analytics.loaded = false
		cmd := tea.Batch(m.enterTab(), m.refreshNow())
		return m, cmd
	}
	return m, nil
}

// handleAnalytics applies chart and verdict results. Results for a period
// the user already moved away from are dropped.
func (m *Model) handleAnalytics(msg analyticsMsg) {
	if msg.period != m.analytics.period {
		return
	}
	m.analytics.loaded = true
	m.analytics.chart = msg.chart
	m.analytics.verdict = msg.verdict
	if msg.err != nil {
		m.setError(msg.err)
	}
}

type moodCount struct {
	mood  string
	count int
}

// moodCounts orders analytics counts by the known mood order, then any
// values the client does not know about.
func moodCounts(a api.MoodAnalytics) []moodCount {
	out := make([]moodCount, 0, len(a))
	seen := make(map[string]bool, len(api.Moods))
	for _, mood := range api.Moods {
		seen[mood] = true
		if n, ok := a[mood]; ok {
			out = append(out, moodCount{mood, n})
		}
	}
	var extra []string
	for mood := range a {
		if !seen[mood] {
			extra = append(extra, mood)
		}
	}
	sort.Strings(extra)
	for _, mood := range extra {
		out = append(out, moodCount{mood, a[mood]})
	}
	return out
}

func (m Model) renderAnalytics() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("Last %d days", state.AnalyticsDays)))
	b.WriteString("\n")
	rows := moodCounts(m.snapshot.Analytics)
	total := m.snapshot.Analytics.Total()
	if total == 0 {
		b.WriteString(styles.MutedText.Render("No entries in the last month"))
		b.WriteString("\n")
	}
	barWidth := maxInt(minInt(m.width-30, 50), 10)
	for _, r := range rows {
		if total == 0 {
			break
		}
		n := r.count * barWidth / total
		if r.count > 0 && n == 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.MoodColor(r.mood))).
			Render(strings.Repeat("█", n))
		pct := float64(r.count) * 100 / float64(total)
		b.WriteString(styles.Text.Render(padRight(r.mood, 9)))
		b.WriteString(bar)
		b.WriteString(styles.MutedText.Render(fmt.Sprintf(" %d (%.0f%%)", r.count, pct)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.Text.Bold(true).Render("Period: " + titleCase(string(m.analytics.period))))
	b.WriteString("\n")
	switch {
	case !m.analytics.loaded:
		b.WriteString(styles.MutedText.Render("Loading..."))
	case len(m.analytics.chart) == 0:
		b.WriteString(styles.MutedText.Render("No entries in this period"))
	default:
		b.WriteString(m.renderChartStrip(styles))
	}
	b.WriteString("\n")
	if m.analytics.verdict != "" {
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(m.analytics.verdict))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("p: cycle period  r: refresh"))
	return b.String()
}

// renderChartStrip draws one colored cell per entry, oldest first, trimmed
// to the box width.
func (m Model) renderChartStrip(styles Styles) string {
	points := m.analytics.chart
	limit := maxInt((m.width-8)/2, 1)
	if len(points) > limit {
		points = points[len(points)-limit:]
	}
	cells := make([]string, 0, len(points))
	for _, p := range points {
		cells = append(cells, lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.MoodColor(p.Mood))).
			Render("■"))
	}
	first, last := points[0].Date, points[len(points)-1].Date
	legend := ""
	if !first.IsZero() && !last.IsZero() {
		legend = styles.FaintText.Render(fmt.Sprintf("\n%s → %s", first.Format("Jan 02"), last.Format("Jan 02")))
	}
	return strings.Join(cells, " ") + legend
}
