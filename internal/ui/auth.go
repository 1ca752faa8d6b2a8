package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/moodlog/internal/api"
)

func newLoginForm() form {
	return newForm(
		formField{label: "Username", hint: "your username", required: true, limit: 64},
		formField{label: "Password", hint: "password", secret: true, required: true, limit: 128},
	)
}

func newRegisterForm() form {
	return newForm(
		formField{label: "Username", hint: "pick a username", required: true, limit: 64},
		formField{label: "Email", hint: "you@example.com", required: true, limit: 128},
		formField{label: "Password", hint: "password", secret: true, required: true, limit: 128},
	)
}

func (m *Model) submitLogin() tea.Cmd {
	if missing := m.loginForm.Missing(); missing != "" {
		m.setStatus(missing + " is required")
		m.status.isErr = true
		return nil
	}
	if m.client == nil {
		return nil
	}
	m.pending++
	m.setStatus("Signing in...")
	return loginCmd(m.ctx, m.client, api.Credentials{
		Username: m.loginForm.Value(0),
		Password: m.loginForm.Value(1),
	})
}

func (m *Model) submitRegister() tea.Cmd {
	if missing := m.registerForm.Missing(); missing != "" {
		m.setStatus(missing + " is required")
		m.status.isErr = true
		return nil
	}
	email := m.registerForm.Value(1)
	if !strings.Contains(email, "@") {
		m.setStatus("Email looks invalid")
		m.status.isErr = true
		return nil
	}
	if m.client == nil {
		return nil
	}
	m.pending++
	m.setStatus("Creating account...")
	return registerCmd(m.ctx, m.client, api.UserCreate{
		Username: m.registerForm.Value(0),
		Email:    email,
		Password: m.registerForm.Value(2),
	})
}

// handleLogin stores the token and opens the cabinet.
func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.pending--
	if msg.err != nil {
		m.logger.Info("login failed", zap.String("username", msg.username), zap.Error(msg.err))
		m.setError(msg.err)
		cmd := m.loginForm.focusIndex(1)
		return m, cmd
	}
	if m.session == nil {
		m.setStatus("No session store configured")
		m.status.isErr = true
		return m, nil
	}
	if err := m.session.SetToken(msg.token); err != nil {
		m.logger.Error("store session failed", zap.Error(err))
		m.setError(err)
		return m, nil
	}
	m.logger.Info("signed in", zap.String("username", msg.username))
	m.loginForm.Reset()
	cmd := m.navigate("/lk")
	m.setStatus("Welcome, " + msg.username)
	return m, tea.Batch(cmd, refreshCmd(m.ctx, m.client, m.session, m.store))
}

// handleRegister sends the new user to the login page with the username
// filled in.
func (m Model) handleRegister(msg registerMsg) (tea.Model, tea.Cmd) {
	m.pending--
	if msg.err != nil {
		m.setError(msg.err)
		cmd := m.registerForm.focusIndex(0)
		return m, cmd
	}
	m.logger.Info("registered", zap.String("username", msg.username))
	m.registerForm.Reset()
	cmd := m.navigate("/login")
	m.loginForm.SetValue(0, msg.username)
	m.setStatus("Account created, sign in to continue")
	focus := m.loginForm.focusIndex(1)
	return m, tea.Batch(cmd, focus)
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.loginForm.View(styles, m.theme, minInt(m.width-8, 60)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(m.formHint(m.loginForm, "R: create an account")))
	return m.renderBox("Login", b.String(), m.width, m.contentHeight(), m.loginForm.Focused())
}

func (m Model) renderRegister() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Create an account"))
	b.WriteString("\n\n")
	b.WriteString(m.registerForm.View(styles, m.theme, minInt(m.width-8, 60)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(m.formHint(m.registerForm, "L: sign in instead")))
	return m.renderBox("Register", b.String(), m.width, m.contentHeight(), m.registerForm.Focused())
}

func (m Model) formHint(f form, alt string) string {
	if f.Focused() {
		return "tab: next field  enter: submit  esc: leave form"
	}
	return "enter/e: edit form  " + alt
}
