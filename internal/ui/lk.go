package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// handleLkKey processes keys on the cabinet page.
func (m Model) handleLkKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextTab):
		cmd := m.goTab(nextTab(m.tab))
		return m, cmd
	case key.Matches(msg, m.keys.PrevTab):
		cmd := m.goTab(prevTab(m.tab))
		return m, cmd
	case key.Matches(msg, m.keys.Logout):
		cmd := m.signOut("Signed out")
		return m, cmd
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(len(lkTabs)) {
		cmd := m.goTab(lkTabs[s[0]-'1'].tab)
		return m, cmd
	}

	switch m.tab {
	case tabMood:
		return m.handleMoodKey(msg)
	case tabNotes:
		return m.handleNotesKey(msg)
	case tabAnalytics:
		return m.handleAnalyticsKey(msg)
	case tabSettings:
		return m.handleSettingsKey(msg)
	case tabLog:
		return m.handleLogKey(msg)
	}
	return m, nil
}

// handleAction finishes a mutating request.
func (m Model) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	m.pending--
	if msg.err != nil {
		m.logger.Debug("request failed", zap.String("action", msg.status), zap.Error(msg.err))
		m.setError(msg.err)
		return m, nil
	}
	m.setStatus(msg.status)

	var cmds []tea.Cmd
	if msg.refresh {
		cmds = append(cmds, refreshCmd(m.ctx, m.client, m.session, m.store))
	}
	if msg.reload && m.client != nil {
		m.pending++
		cmds = append(cmds, fetchNotificationsCmd(m.ctx, m.client))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) refreshNow() tea.Cmd {
	m.setStatus("Refreshing...")
	return refreshCmd(m.ctx, m.client, m.session, m.store)
}

// renderLk renders the tab bar and the current tab.
func (m Model) renderLk() string {
	styles := m.theme.Styles()

	tabs := make([]string, 0, len(lkTabs))
	for i, t := range lkTabs {
		label := fmt.Sprintf(" %d %s ", i+1, t.title)
		if t.tab == m.tab {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}
	tabBar := strings.Join(tabs, " ")

	var body string
	switch m.tab {
	case tabNotes:
		body = m.renderNotes()
	case tabAnalytics:
		body = m.renderAnalytics()
	case tabSettings:
		body = m.renderSettings()
	case tabLog:
		body = m.renderLogTab()
	default:
		body = m.renderMood()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, tabBar, "", body)
	return m.renderBox("Cabinet", content, m.width, m.contentHeight(), m.activeFormFocused())
}

func (m Model) activeFormFocused() bool {
	f := m.activeForm()
	return f != nil && f.Focused()
}
