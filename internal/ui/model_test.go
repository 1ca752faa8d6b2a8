package ui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/moodlog/internal/api"
	"github.com/five82/moodlog/internal/router"
	"github.com/five82/moodlog/internal/session"
	"github.com/five82/moodlog/internal/state"
)

func newSession(t *testing.T, token string) *session.Store {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if token != "" {
		if err := store.SetToken(token); err != nil {
			t.Fatalf("set token: %v", err)
		}
	}
	return store
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Store == nil {
		opts.Store = &state.Store{}
	}
	m := New(opts)
	m.width, m.height, m.ready = 120, 40, true
	m.initLogViewport()
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitNavigatesToStartPath(t *testing.T) {
	m := New(Options{StartPath: "/login"})
	msg := m.Init()()
	if got, ok := msg.(navigateMsg); !ok || string(got) != "/login" {
		t.Fatalf("Init() produced %#v, want navigateMsg(/login)", msg)
	}

	m = New(Options{})
	if got := m.Init()(); got != navigateMsg("/") {
		t.Fatalf("Init() without start path produced %#v, want navigateMsg(/)", got)
	}
}

func TestNavigateCabinetRequiresSession(t *testing.T) {
	m := newTestModel(t, Options{Session: newSession(t, "")})
	m.navigate("/lk/notes")

	if m.route.Route.Page != router.LoginPage {
		t.Fatalf("page = %q, want login", m.route.Route.Page)
	}
	if !strings.Contains(m.status.text, "Sign in") {
		t.Fatalf("status = %q, want sign-in prompt", m.status.text)
	}
	if !m.loginForm.Focused() {
		t.Fatalf("login form should be focused after redirect")
	}
}

func TestNavigateSelectsCabinetTab(t *testing.T) {
	m := newTestModel(t, Options{Session: newSession(t, "tok")})

	m.navigate("/lk/notes")
	if m.route.Route.Page != router.LkPage || m.tab != tabNotes {
		t.Fatalf("route=%q tab=%v, want lk/notes", m.route.Route.Page, m.tab)
	}

	m.navigate("/lk")
	if m.tab != tabMood {
		t.Fatalf("bare /lk should show mood, got %v", m.tab)
	}

	m.navigate("/lk/bogus")
	if m.tab != tabMood {
		t.Fatalf("unknown section should fall back to mood, got %v", m.tab)
	}
	if !strings.Contains(m.status.text, `"bogus"`) {
		t.Fatalf("status = %q, want mention of unknown section", m.status.text)
	}
}

func TestNavigateUnknownPathKeepsRoute(t *testing.T) {
	m := newTestModel(t, Options{})
	m.navigate("/register")
	m.navigate("/nowhere/at/all")

	if m.route.Route.Page != router.RegisterPage {
		t.Fatalf("page = %q, want register unchanged", m.route.Route.Page)
	}
	if !m.status.isErr {
		t.Fatalf("unknown path should set an error status")
	}
}

func TestGoTabKeepsPathInSync(t *testing.T) {
	m := newTestModel(t, Options{Session: newSession(t, "tok")})
	m.navigate("/lk")

	m.goTab(tabAnalytics)
	if m.route.Path != "/lk/analytics" {
		t.Fatalf("path = %q, want /lk/analytics", m.route.Path)
	}
	if m.tab != tabAnalytics {
		t.Fatalf("tab = %v, want analytics", m.tab)
	}

	if got := nextTab(tabLog); got != tabMood {
		t.Fatalf("nextTab(log) = %v, want mood", got)
	}
	if got := prevTab(tabMood); got != tabLog {
		t.Fatalf("prevTab(mood) = %v, want log", got)
	}
}

func TestDigitKeysSwitchTabs(t *testing.T) {
	m := newTestModel(t, Options{Session: newSession(t, "tok")})
	m.navigate("/lk")

	next, _ := m.Update(keyRunes("2"))
	m = next.(Model)
	if m.tab != tabNotes || m.route.Path != "/lk/notes" {
		t.Fatalf("after 2: tab=%v path=%q, want notes", m.tab, m.route.Path)
	}
}

func TestAddressBarNavigates(t *testing.T) {
	m := newTestModel(t, Options{Session: newSession(t, "tok")})
	m.navigate("/")

	steps := []tea.KeyMsg{keyRunes(":"), keyRunes("/lk/settings"), {Type: tea.KeyEnter}}
	for _, msg := range steps {
		next, _ := m.Update(msg)
		m = next.(Model)
	}

	if m.addressActive {
		t.Fatalf("address bar should close after enter")
	}
	if m.route.Route.Page != router.LkPage || m.tab != tabSettings {
		t.Fatalf("route=%q tab=%v, want lk/settings", m.route.Route.Page, m.tab)
	}
}

func TestLoginStoresTokenAndOpensCabinet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if r.FormValue("username") != "alice" || r.FormValue("password") != "pw" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))
	defer srv.Close()

	sess := newSession(t, "")
	client, err := api.NewClient(srv.URL, api.Options{Tokens: sess})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	m := newTestModel(t, Options{Context: context.Background(), Client: client, Session: sess})
	m.navigate("/login")

	// Wrong password keeps the user on the form with the backend's message.
	m.loginForm.SetValue(0, "alice")
	m.loginForm.SetValue(1, "nope")
	cmd := m.submitActiveForm()
	if cmd == nil {
		t.Fatalf("submit should produce a command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.status.text != "Incorrect username or password" || !m.status.isErr {
		t.Fatalf("status = %+v, want backend detail as error", m.status)
	}
	if _, ok := sess.Token(); ok {
		t.Fatalf("failed login must not store a token")
	}

	m.loginForm.SetValue(1, "pw")
	cmd = m.submitActiveForm()
	next, _ = m.Update(cmd())
	m = next.(Model)

	if tok, _ := sess.Token(); tok != "tok-123" {
		t.Fatalf("stored token = %q, want tok-123", tok)
	}
	if m.route.Route.Page != router.LkPage {
		t.Fatalf("page = %q, want lk after login", m.route.Route.Page)
	}
	if m.pending != 0 {
		t.Fatalf("pending = %d, want 0", m.pending)
	}
	if m.loginForm.Value(0) != "" {
		t.Fatalf("login form should be cleared after success")
	}
}

func TestSubmitLoginRequiresFields(t *testing.T) {
	m := newTestModel(t, Options{})
	m.navigate("/login")
	m.loginForm.SetValue(0, "alice")

	if cmd := m.submitActiveForm(); cmd != nil {
		t.Fatalf("submit with missing password should not send a request")
	}
	if m.status.text != "Password is required" {
		t.Fatalf("status = %q", m.status.text)
	}
}

func TestRegisterPrefillsLogin(t *testing.T) {
	m := newTestModel(t, Options{})
	m.pending = 1

	next, _ := m.Update(registerMsg{username: "bob"})
	m = next.(Model)

	if m.route.Route.Page != router.LoginPage {
		t.Fatalf("page = %q, want login", m.route.Route.Page)
	}
	if m.loginForm.Value(0) != "bob" {
		t.Fatalf("username = %q, want bob", m.loginForm.Value(0))
	}
	if m.loginForm.focus != 1 {
		t.Fatalf("focus = %d, want password field", m.loginForm.focus)
	}
}

func TestUnauthorizedSnapshotSignsOut(t *testing.T) {
	sess := newSession(t, "stale")
	store := &state.Store{}
	m := newTestModel(t, Options{Session: sess, Store: store})
	m.navigate("/lk/notes")

	store.Update(nil, &api.StatusError{Method: "GET", Path: "/users/me", StatusCode: http.StatusUnauthorized})
	next, _ := m.Update(snapshotMsg(store.Snapshot()))
	m = next.(Model)

	if _, ok := sess.Token(); ok {
		t.Fatalf("token should be cleared on 401")
	}
	if m.route.Route.Page != router.HomePage {
		t.Fatalf("page = %q, want home", m.route.Route.Page)
	}
	if !strings.Contains(m.status.text, "Session expired") {
		t.Fatalf("status = %q", m.status.text)
	}
	if store.Snapshot().LastError != nil {
		t.Fatalf("store should be reset on sign-out")
	}
}

func TestSnapshotKeepsNotesCursorInRange(t *testing.T) {
	m := newTestModel(t, Options{Session: newSession(t, "tok")})
	m.notes.cursor = 5

	snap := state.Snapshot{HasData: true}
	snap.Notes = []api.Note{{ID: 1}, {ID: 2}}
	next, _ := m.Update(snapshotMsg(snap))
	m = next.(Model)

	if m.notes.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.notes.cursor)
	}
}

func TestHandleAnalyticsDropsStalePeriod(t *testing.T) {
	m := newTestModel(t, Options{})
	m.analytics.period = api.PeriodWeek

	m.handleAnalytics(analyticsMsg{period: api.PeriodMonth, verdict: "old"})
	if m.analytics.loaded || m.analytics.verdict != "" {
		t.Fatalf("stale result applied: %+v", m.analytics)
	}

	m.handleAnalytics(analyticsMsg{period: api.PeriodWeek, verdict: "steady"})
	if !m.analytics.loaded || m.analytics.verdict != "steady" {
		t.Fatalf("current result not applied: %+v", m.analytics)
	}
}

func TestViewRendersEveryPage(t *testing.T) {
	m := newTestModel(t, Options{Session: newSession(t, "tok")})
	for _, path := range []string{"/", "/about", "/login", "/register", "/lk/mood", "/lk/notes", "/lk/analytics", "/lk/settings", "/lk/log"} {
		m.navigate(path)
		if out := m.View(); out == "" {
			t.Fatalf("View() for %s is empty", path)
		}
	}
}

func TestErrorText(t *testing.T) {
	withDetail := &api.StatusError{
		StatusCode: http.StatusBadRequest,
		Response:   &api.Response{Body: []byte(`{"detail":"Mood already logged today"}`)},
	}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"detail", withDetail, "Mood already logged today"},
		{"status text", &api.StatusError{StatusCode: http.StatusNotFound}, "Not Found"},
		{"wrapped status", errors.Join(errors.New("load"), withDetail), "Mood already logged today"},
		{"refused", errors.New("dial tcp 127.0.0.1:8000: connect: connection refused"), "Backend unreachable (connection refused)"},
		{"timeout", errors.New("context deadline exceeded"), "Request timed out"},
		{"last segment", errors.New("decode: unexpected end of JSON input"), "unexpected end of JSON input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorText(tt.err); got != tt.want {
				t.Fatalf("errorText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyConnectionError(t *testing.T) {
	tests := map[string]string{
		"connect: connection refused":           "OFFLINE",
		"lookup api.invalid: no such host":      "HOST NOT FOUND",
		"read tcp: i/o timeout":                 "TIMEOUT",
		"api GET /users/me returned status 401": "UNAUTHORIZED",
		"api GET /mood returned status 500":     "ERROR",
	}
	for msg, want := range tests {
		if got := classifyConnectionError(errors.New(msg)); got != want {
			t.Errorf("classifyConnectionError(%q) = %q, want %q", msg, got, want)
		}
	}
	if got := classifyConnectionError(nil); got != "" {
		t.Errorf("classifyConnectionError(nil) = %q", got)
	}
}

func TestMoodCountsOrder(t *testing.T) {
	got := moodCounts(api.MoodAnalytics{"sad": 2, "zen": 1, "happy": 3, "bored": 4})
	want := []moodCount{{"happy", 3}, {"sad", 2}, {"bored", 4}, {"zen", 1}}
	if len(got) != len(want) {
		t.Fatalf("moodCounts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("moodCounts()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNextPeriodCycles(t *testing.T) {
	p := api.PeriodWeek
	for range periods {
		p = nextPeriod(p)
	}
	if p != api.PeriodWeek {
		t.Fatalf("cycling through all periods ended at %q", p)
	}
	if got := nextPeriod("decade"); got != api.PeriodWeek {
		t.Fatalf("nextPeriod(unknown) = %q", got)
	}
}
