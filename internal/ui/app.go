package ui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/moodlog/internal/api"
	"github.com/five82/moodlog/internal/router"
	"github.com/five82/moodlog/internal/session"
	"github.com/five82/moodlog/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Session   *session.Store
	Store     *state.Store
	Routes    *router.Table
	StartPath string
	ThemeName string
	LogPath   string
	Logger    *zap.Logger
	PollTick  time.Duration
}

// statusLine is the one-line message under the page.
type statusLine struct {
	text  string
	isErr bool
	at    time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	client   *api.Client
	session  *session.Store
	store    *state.Store
	routes   *router.Table
	logger   *zap.Logger
	logPath  string
	pollTick time.Duration
	start    string

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	route    router.Match
	tab      lkTab
	status   statusLine
	pending  int // requests in flight

	// Address bar
	addressActive bool
	address       textinput.Model

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Pages
	loginForm    form
	registerForm form
	mood         moodState
	notes        notesState
	analytics    analyticsState
	settings     settingsState

	// Log tab
	logViewport viewport.Model
	logState    logState
}

// New creates a new Bubble Tea model. The start path is resolved on Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	routes := opts.Routes
	if routes == nil {
		routes = router.MustTable(router.DefaultRoutes())
	}

	addr := textinput.New()
	addr.Prompt = ":"
	addr.Placeholder = "/lk/notes"
	addr.CharLimit = 200

	m := Model{
		ctx:          ctx,
		client:       opts.Client,
		session:      opts.Session,
		store:        opts.Store,
		routes:       routes,
		logger:       logger,
		logPath:      opts.LogPath,
		pollTick:     pollTick,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.ThemeName),
		address:      addr,
		loginForm:    newLoginForm(),
		registerForm: newRegisterForm(),
		mood:         newMoodState(),
		notes:        newNotesState(),
		analytics:    analyticsState{period: api.PeriodMonth},
		settings:     newSettingsState(),
		logState:     newLogState(),
	}
	m.route, _ = routes.Resolve("/")
	m.start = opts.StartPath
	if m.start == "" {
		m.start = "/"
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	start := m.start
	return func() tea.Msg { return navigateMsg(start) }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case navigateMsg:
		cmd := m.navigate(string(msg))
		cmds := []tea.Cmd{cmd, tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))

	case loginMsg:
		return m.handleLogin(msg)

	case registerMsg:
		return m.handleRegister(msg)

	case actionMsg:
		return m.handleAction(msg)

	case analyticsMsg:
		m.pending--
		m.handleAnalytics(msg)
		return m, nil

	case notificationsMsg:
		m.pending--
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.settings.notifications = msg.items
		m.settings.achievements = msg.achievements
		if m.settings.cursor >= len(msg.items) {
			m.settings.cursor = maxInt(len(msg.items)-1, 0)
		}
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.addressActive {
		return m.handleAddressKey(msg)
	}

	if f := m.activeForm(); f != nil && f.Focused() {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.logState.dirty = true
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.Address):
		m.addressActive = true
		m.address.SetValue("")
		cmd := m.address.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.GoHome):
		cmd := m.navigate("/")
		return m, cmd

	case key.Matches(msg, m.keys.GoLogin):
		cmd := m.navigate("/login")
		return m, cmd

	case key.Matches(msg, m.keys.GoRegister):
		cmd := m.navigate("/register")
		return m, cmd

	case key.Matches(msg, m.keys.GoLk):
		cmd := m.navigate("/lk")
		return m, cmd
	}

	switch m.route.Route.Page {
	case router.LoginPage:
		if key.Matches(msg, m.keys.Submit, m.keys.Edit) {
			cmd := m.loginForm.Focus()
			return m, cmd
		}
	case router.RegisterPage:
		if key.Matches(msg, m.keys.Submit, m.keys.Edit) {
			cmd := m.registerForm.Focus()
			return m, cmd
		}
	case router.LkPage:
		return m.handleLkKey(msg)
	}
	return m, nil
}

// handleAddressKey edits the address bar.
func (m Model) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.addressActive = false
		m.address.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.addressActive = false
		m.address.Blur()
		cmd := m.navigate(m.address.Value())
		return m, cmd
	}
	var cmd tea.Cmd
	m.address, cmd = m.address.Update(msg)
	return m, cmd
}

// handleFormKey routes keys to the focused form and submits it on enter.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := m.activeForm().Update(msg, m.keys)
	if result != formSubmitted {
		return m, cmd
	}
	cmd = m.submitActiveForm()
	return m, cmd
}

// activeForm returns the form owned by the current page or tab.
func (m *Model) activeForm() *form {
	switch m.route.Route.Page {
	case router.LoginPage:
		return &m.loginForm
	case router.RegisterPage:
		return &m.registerForm
	case router.LkPage:
		switch m.tab {
		case tabMood:
			if m.mood.answer.Focused() {
				return &m.mood.answer
			}
			return &m.mood.details
		case tabNotes:
			return &m.notes.input
		case tabSettings:
			return &m.settings.profile
		}
	}
	return nil
}

// submitActiveForm sends the focused form's request.
func (m *Model) submitActiveForm() tea.Cmd {
	switch m.route.Route.Page {
	case router.LoginPage:
		return m.submitLogin()
	case router.RegisterPage:
		return m.submitRegister()
	case router.LkPage:
		switch m.tab {
		case tabMood:
			if m.mood.answer.Focused() {
				return m.submitAnswer()
			}
			return m.submitMood()
		case tabNotes:
			return m.submitNote()
		case tabSettings:
			return m.submitProfile()
		}
	}
	return nil
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.route.Route.Page == router.LkPage && m.tab == tabLog && m.logState.follow {
		cmds = append(cmds, readLogCmd(m.logPath))
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// handleSnapshot stores a new snapshot. A 401 from the refresh means the
// session is no longer valid.
func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	m.lastUpdated = time.Now()
	m.notes.clampCursor(len(snap.Notes))
	if snap.HasData && !m.settings.profile.Focused() && !m.settings.profileLoaded {
		m.settings.fill(snap.User)
	}
	if api.IsStatus(snap.LastError, http.StatusUnauthorized) && m.signedIn() {
		cmd := m.signOut("Session expired, sign in again")
		return m, cmd
	}
	return m, nil
}

func (m *Model) setStatus(text string) {
	m.status = statusLine{text: text, at: time.Now()}
}

func (m *Model) setError(err error) {
	m.status = statusLine{text: errorText(err), isErr: true, at: time.Now()}
}

// signedIn reports whether a session token is stored.
func (m Model) signedIn() bool {
	if m.session == nil {
		return false
	}
	_, ok := m.session.Token()
	return ok
}

func (m Model) token() string {
	if m.session == nil {
		return ""
	}
	tok, _ := m.session.Token()
	return tok
}

// renderMain renders header, command bar, page and status line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// renderContent renders the page for the current route.
func (m Model) renderContent() string {
	switch m.route.Route.Page {
	case router.LoginPage:
		return m.renderLogin()
	case router.RegisterPage:
		return m.renderRegister()
	case router.LkPage:
		return m.renderLk()
	default:
		return m.renderHome()
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
