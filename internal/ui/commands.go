package ui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/moodlog/internal/api"
	"github.com/five82/moodlog/internal/logtail"
	"github.com/five82/moodlog/internal/session"
	"github.com/five82/moodlog/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type navigateMsg string

type loginMsg struct {
	username string
	token    string
	err      error
}

type registerMsg struct {
	username string
	err      error
}

// actionMsg reports the outcome of a mutating request.
type actionMsg struct {
	status  string
	err     error
	refresh bool // reload the dashboard afterwards
	reload  bool // reload notifications afterwards
}

type analyticsMsg struct {
	period  api.Period
	chart   []api.MoodChartPoint
	verdict string
	err     error
}

type notificationsMsg struct {
	items        []api.Notification
	achievements []api.UserAchievement
	err          error
}

type logLinesMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshCmd reloads the dashboard right away instead of waiting for the
// poller.
func refreshCmd(ctx context.Context, client *api.Client, sess *session.Store, store *state.Store) tea.Cmd {
	if client == nil || sess == nil || store == nil {
		return nil
	}
	return func() tea.Msg {
		token, ok := sess.Token()
		if !ok {
			return snapshotMsg(store.Snapshot())
		}
		d, err := state.Load(ctx, client, token)
		store.Update(d, err)
		return snapshotMsg(store.Snapshot())
	}
}

func loginCmd(ctx context.Context, client *api.Client, creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		tok, err := api.DecodeAs[api.TokenResponse](client.Login(ctx, creds))
		if err == nil && tok.AccessToken == "" {
			err = errors.New("login response carried no access token")
		}
		return loginMsg{username: creds.Username, token: tok.AccessToken, err: err}
	}
}

func registerCmd(ctx context.Context, client *api.Client, user api.UserCreate) tea.Cmd {
	return func() tea.Msg {
		_, err := client.Register(ctx, user)
		return registerMsg{username: user.Username, err: err}
	}
}

// actionCmd wraps a single mutating call.
func actionCmd(status string, refresh bool, call func() (*api.Response, error)) tea.Cmd {
	return func() tea.Msg {
		_, err := call()
		return actionMsg{status: status, err: err, refresh: refresh}
	}
}

func markReadCmd(ctx context.Context, client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		_, err := client.MarkNotificationRead(ctx, id)
		return actionMsg{status: "Notification marked as read", err: err, refresh: true, reload: true}
	}
}

func fetchAnalyticsCmd(ctx context.Context, client *api.Client, period api.Period) tea.Cmd {
	return func() tea.Msg {
		chart, err := api.DecodeAs[[]api.MoodChartPoint](client.GetMoodChart(ctx, period))
		if err != nil && !api.IsStatus(err, http.StatusNotFound) {
			return analyticsMsg{period: period, err: err}
		}
		verdict, err := api.DecodeAs[api.MoodVerdict](client.GetMoodVerdict(ctx, period))
		if err != nil && !api.IsStatus(err, http.StatusNotFound) {
			return analyticsMsg{period: period, chart: chart, err: err}
		}
		return analyticsMsg{period: period, chart: chart, verdict: verdict.Verdict}
	}
}

func fetchNotificationsCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := api.DecodeAs[[]api.Notification](client.GetNotifications(ctx))
		if err != nil && !api.IsStatus(err, http.StatusNotFound) {
			return notificationsMsg{err: err}
		}
		achievements, err := api.DecodeAs[[]api.UserAchievement](client.GetUserAchievements(ctx))
		if err != nil && !api.IsStatus(err, http.StatusNotFound) {
			return notificationsMsg{items: items, err: err}
		}
		return notificationsMsg{items: items, achievements: achievements}
	}
}

func readLogCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		if err != nil {
			return logLinesMsg{err: err}
		}
		return logLinesMsg{entries: logtail.ParseLines(lines)}
	}
}

// errorText turns a request error into a short message for the status line.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		if detail := statusErr.Detail(); detail != "" {
			return detail
		}
		return http.StatusText(statusErr.StatusCode)
	}
	switch classifyConnectionError(err) {
	case "OFFLINE":
		return "Backend unreachable (connection refused)"
	case "HOST NOT FOUND":
		return "Backend host not found"
	case "TIMEOUT":
		return "Request timed out"
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		return msg[i+2:]
	}
	return msg
}
