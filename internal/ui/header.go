package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/moodlog/internal/router"
)

// renderHeader renders the status bar: app name, route, session and
// connection state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("moodlog", styles.Logo),
		bg.Render(m.route.Path, styles.AccentText),
	}

	if m.signedIn() {
		name := "signed in"
		if m.snapshot.HasData {
			name = m.snapshot.User.Username
		}
		parts = append(parts, bg.Render("● "+name, styles.SuccessText))
		if m.snapshot.UnreadCount > 0 {
			parts = append(parts, bg.Render(fmt.Sprintf("✉ %d", m.snapshot.UnreadCount), styles.WarningText))
		}
	} else {
		parts = append(parts, bg.Render("○ signed out", styles.MutedText))
	}

	if m.snapshot.LastError != nil {
		label := classifyConnectionError(m.snapshot.LastError)
		if m.snapshot.IsOffline() {
			label += " (retrying)"
		}
		parts = append(parts, bg.Render(label, styles.DangerText))
	}

	if m.pending > 0 {
		parts = append(parts, bg.Render("working...", styles.InfoText))
	}

	if !m.snapshot.LastUpdated.IsZero() && m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// classifyConnectionError maps a refresh error to a short header label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "returned status 401"):
		return "UNAUTHORIZED"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the current page.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.route.Route.Page {
	case router.LkPage:
		commands = []cmd{
			{"1-5", "Tabs"},
			{"tab", "Next"},
			{"r", "Refresh"},
			{"O", "Sign out"},
			{"H", "Home"},
		}
	case router.LoginPage:
		commands = []cmd{
			{"enter", "Sign in"},
			{"R", "Register"},
			{"H", "Home"},
		}
	case router.RegisterPage:
		commands = []cmd{
			{"enter", "Create"},
			{"L", "Login"},
			{"H", "Home"},
		}
	default:
		commands = []cmd{
			{"L", "Login"},
			{"R", "Register"},
			{"K", "Cabinet"},
		}
	}
	commands = append(commands, cmd{":", "Go"}, cmd{"?", "More"})

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderStatusLine shows the address bar while it is open, else the last
// status message.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	if m.addressActive {
		return m.address.View()
	}
	if m.status.text == "" {
		return ""
	}
	style := styles.MutedText
	if m.status.isErr {
		style = styles.DangerText
	}
	return style.Render(truncate(m.status.text, maxInt(m.width-2, 10)))
}
