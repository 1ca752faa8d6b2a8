package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders segments that keep a background color across the spaces
// between them. Lipgloss resets between styled segments otherwise leave gaps.
type BgStyle struct {
	bg lipgloss.Color
}

// NewBgStyle creates a background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{bg: lipgloss.Color(bgColor)}
}

// Render renders text with style on the background, spaces included.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}
	words := strings.Split(text, " ")
	out := make([]string, len(words))
	for i, w := range words {
		if w != "" {
			out[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(out, b.Spaces(1))
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Sep returns a styled separator string.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}
