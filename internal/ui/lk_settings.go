package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/moodlog/internal/api"
	"github.com/five82/moodlog/internal/session"
)

type settingsState struct {
	profile       form
	profileLoaded bool
	claims        session.Claims
	hasClaims     bool
	notifications []api.Notification
	achievements  []api.UserAchievement
	cursor        int
}

func newSettingsState() settingsState {
	return settingsState{
		profile: newForm(
			formField{label: "Username", required: true, limit: 64},
			formField{label: "Email", required: true, limit: 128},
		),
	}
}

// fill copies the profile into the edit form.
func (s *settingsState) fill(u api.User) {
	s.profile.SetValue(0, u.Username)
	s.profile.SetValue(1, u.Email)
	s.profileLoaded = true
}

func (s *settingsState) loadClaims(token string) {
	s.hasClaims = false
	if token == "" {
		return
	}
	claims, err := session.ParseClaims(token)
	if err != nil {
		return
	}
	s.claims, s.hasClaims = claims, true
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.settings.notifications)
	switch {
	case key.Matches(msg, m.keys.Edit, m.keys.Submit):
		if m.snapshot.HasData {
			m.settings.fill(m.snapshot.User)
		}
		cmd := m.settings.profile.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Down):
		if m.settings.cursor < count-1 {
			m.settings.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.settings.cursor > 0 {
			m.settings.cursor--
		}
	case key.Matches(msg, m.keys.MarkRead):
		if count == 0 || m.client == nil {
			return m, nil
		}
		n := m.settings.notifications[m.settings.cursor]
		if n.IsRead {
			m.setStatus("Already read")
			return m, nil
		}
		m.pending++
		cmd := markReadCmd(m.ctx, m.client, strconv.FormatInt(n.ID, 10))
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		cmd := tea.Batch(m.enterTab(), m.refreshNow())
		return m, cmd
	}
	return m, nil
}

// submitProfile sends only the fields that changed.
func (m *Model) submitProfile() tea.Cmd {
	if missing := m.settings.profile.Missing(); missing != "" {
		m.setStatus(missing + " is required")
		m.status.isErr = true
		return nil
	}
	update := api.UserUpdate{}
	if v := m.settings.profile.Value(0); v != m.snapshot.User.Username {
		update.Username = v
	}
	if v := m.settings.profile.Value(1); v != m.snapshot.User.Email {
		update.Email = v
	}
	m.settings.profile.Blur()
	if update == (api.UserUpdate{}) {
		m.setStatus("Nothing changed")
		return nil
	}
	if m.client == nil {
		return nil
	}
	m.settings.profileLoaded = false
	m.pending++
	ctx, client, token := m.ctx, m.client, m.token()
	return actionCmd("Profile updated", true, func() (*api.Response, error) {
		return client.UpdateUserInfo(ctx, token, update)
	})
}

func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Profile"))
	b.WriteString("\n")
	if snap.HasData {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("id %d", snap.User.ID)))
		if !snap.User.CreatedAt.IsZero() {
			b.WriteString(styles.MutedText.Render("  member since " + snap.User.CreatedAt.Local().Format("Jan 2006")))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.settings.profile.View(styles, m.theme, minInt(m.width-8, 60)))
	b.WriteString("\n")
	if m.settings.hasClaims && !m.settings.claims.ExpiresAt.IsZero() {
		left := time.Until(m.settings.claims.ExpiresAt).Round(time.Minute)
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("session expires %s (in %s)",
			m.settings.claims.ExpiresAt.Local().Format("Jan 02 15:04"), left)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("Notifications (%d unread)", snap.UnreadCount)))
	b.WriteString("\n")
	if len(m.settings.notifications) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing here"))
		b.WriteString("\n")
	}
	for i, n := range m.settings.notifications {
		marker := "  "
		style := styles.MutedText
		if !n.IsRead {
			marker = "● "
			style = styles.Text
		}
		line := marker + truncate(n.Message, maxInt(m.width-12, 20))
		if i == m.settings.cursor {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(style.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.Text.Bold(true).Render("Achievements"))
	b.WriteString("\n")
	if len(m.settings.achievements) == 0 {
		b.WriteString(styles.MutedText.Render("None unlocked yet"))
		b.WriteString("\n")
	}
	for _, a := range m.settings.achievements {
		b.WriteString(styles.SuccessText.Render("★ " + a.Achievement.Name))
		if a.Achievement.Description != "" {
			b.WriteString(styles.MutedText.Render("  " + a.Achievement.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "e: edit profile  j/k: select  m: mark read  r: refresh  O: sign out"
	if m.settings.profile.Focused() {
		hint = "enter: save  esc: cancel"
	}
	b.WriteString(styles.FaintText.Render(hint))
	return b.String()
}
