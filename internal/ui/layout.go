package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LayoutCompactWidth is the width below which the header drops extras.
const LayoutCompactWidth = 100

const (
	// LogTailLines is how many log lines the log tab reads.
	LogTailLines = 400

	// DefaultUIInterval is how often the UI pulls a new snapshot.
	DefaultUIInterval = time.Second
)

// contentHeight is the height left for the page box under the header and
// command bar, above the status line.
func (m Model) contentHeight() int {
	return maxInt(m.height-3, 5)
}

// renderBox draws a rounded border with a title line.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	border := m.theme.Border
	if focused {
		border = m.theme.BorderFocus
	}
	styles := m.theme.Styles()
	body := styles.AccentText.Bold(true).Render(title) + "\n" + content
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(maxInt(width-2, 10)).
		Height(maxInt(height-2, 3)).
		MaxHeight(maxInt(height, 5)).
		Render(body)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
