package ui

import (
	"fmt"
	"strings"
)

const logo = `
 _ __ ___   ___   ___   __| | | ___   __ _
| '_ ' _ \ / _ \ / _ \ / _' | |/ _ \ / _' |
| | | | | | (_) | (_) | (_| | | (_) | (_| |
|_| |_| |_|\___/ \___/ \__,_|_|\___/ \__, |
                                     |___/`

func (m Model) renderHome() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Logo.Render(strings.TrimPrefix(logo, "\n")))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Track how you feel, one day at a time."))
	b.WriteString("\n\n")

	if section, ok := m.route.Param("page"); ok {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Section: %s", section)))
		b.WriteString("\n\n")
	}

	if m.signedIn() {
		name := "you"
		if m.snapshot.HasData {
			name = m.snapshot.User.Username
		}
		b.WriteString(styles.SuccessText.Render("Signed in as " + name))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("K: open your cabinet"))
	} else {
		b.WriteString(styles.MutedText.Render("L: sign in    R: create an account"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(": go to a path (e.g. /lk/notes)    ?: help"))

	return m.renderBox("Home", b.String(), m.width, m.contentHeight(), false)
}
