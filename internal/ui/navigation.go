package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/moodlog/internal/router"
	"github.com/five82/moodlog/internal/state"
)

// lkTab is a section of the personal cabinet, selected by the page param.
type lkTab int

const (
	tabMood lkTab = iota
	tabNotes
	tabAnalytics
	tabSettings
	tabLog
)

var lkTabs = []struct {
	tab   lkTab
	param string
	title string
}{
	{tabMood, "mood", "Mood"},
	{tabNotes, "notes", "Notes"},
	{tabAnalytics, "analytics", "Analytics"},
	{tabSettings, "settings", "Settings"},
	{tabLog, "log", "Log"},
}

func (t lkTab) param() string {
	for _, e := range lkTabs {
		if e.tab == t {
			return e.param
		}
	}
	return "mood"
}

func tabFromParam(p string) (lkTab, bool) {
	p = strings.ToLower(strings.TrimSpace(p))
	for _, e := range lkTabs {
		if e.param == p {
			return e.tab, true
		}
	}
	return tabMood, false
}

// navigate resolves path against the route table and switches page. The
// cabinet requires a session and sends anonymous users to the login page.
func (m *Model) navigate(path string) tea.Cmd {
	match, ok := m.routes.Resolve(path)
	if !ok {
		m.setStatus(fmt.Sprintf("No page at %s", strings.TrimSpace(path)))
		m.status.isErr = true
		return nil
	}

	if match.Route.Page == router.LkPage && !m.signedIn() {
		m.setStatus("Sign in to open your cabinet")
		match, _ = m.routes.Resolve("/login")
	}

	m.blurForms()
	m.route = match
	m.logger.Debug("navigate", zap.String("path", match.Path), zap.String("route", match.Route.Name))

	switch match.Route.Page {
	case router.LoginPage:
		return m.loginForm.Focus()
	case router.RegisterPage:
		return m.registerForm.Focus()
	case router.LkPage:
		param, present := match.Props()["page"]
		tab, known := tabFromParam(param)
		if present && !known {
			m.setStatus(fmt.Sprintf("Unknown section %q, showing mood", param))
		}
		m.tab = tab
		return m.enterTab()
	}
	return nil
}

// goTab switches cabinet section through the route table so the path stays
// in sync with what is on screen.
func (m *Model) goTab(t lkTab) tea.Cmd {
	path, err := m.routes.URL("lk", t.param())
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.navigate(path)
}

// enterTab starts whatever loading the current tab needs.
func (m *Model) enterTab() tea.Cmd {
	switch m.tab {
	case tabAnalytics:
		if !m.analytics.loaded && m.client != nil {
			m.pending++
			return fetchAnalyticsCmd(m.ctx, m.client, m.analytics.period)
		}
	case tabSettings:
		m.settings.loadClaims(m.token())
		if m.client != nil {
			m.pending++
			return fetchNotificationsCmd(m.ctx, m.client)
		}
	case tabLog:
		m.logState.follow = true
		return readLogCmd(m.logPath)
	}
	return nil
}

func (m *Model) blurForms() {
	m.loginForm.Blur()
	m.registerForm.Blur()
	m.mood.details.Blur()
	m.mood.answer.Blur()
	m.notes.input.Blur()
	m.settings.profile.Blur()
}

// signOut forgets the session and returns to the home page.
func (m *Model) signOut(reason string) tea.Cmd {
	if m.session != nil {
		if err := m.session.Clear(); err != nil {
			m.logger.Warn("clear session failed", zap.Error(err))
			m.setError(err)
			return nil
		}
	}
	if m.store != nil {
		m.store.Reset()
	}
	m.snapshot = state.Snapshot{}
	m.analytics = analyticsState{period: m.analytics.period}
	m.settings = newSettingsState()
	m.notes = newNotesState()
	m.mood = newMoodState()
	m.logger.Info("signed out", zap.String("reason", reason))
	cmd := m.navigate("/")
	m.setStatus(reason)
	return cmd
}

func nextTab(t lkTab) lkTab { return lkTab((int(t) + 1) % len(lkTabs)) }

func prevTab(t lkTab) lkTab { return lkTab((int(t) + len(lkTabs) - 1) % len(lkTabs)) }
