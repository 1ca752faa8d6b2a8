package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/moodlog/internal/api"
	"github.com/five82/moodlog/internal/session"
	"github.com/five82/moodlog/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

// stubFetcher answers every dashboard endpoint with a fixed body, or fails
// every call with err.
type stubFetcher struct {
	err   error
	calls atomic.Int32
}

func (s *stubFetcher) reply(body any) (*api.Response, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	raw, _ := json.Marshal(body)
	return &api.Response{StatusCode: http.StatusOK, Body: raw}, nil
}

func (s *stubFetcher) GetUserInfo(context.Context, string) (*api.Response, error) {
	return s.reply(api.User{ID: 1, Username: "alice"})
}
func (s *stubFetcher) GetTodaysMood(context.Context) (*api.Response, error) {
	return s.reply(api.MoodEntry{Mood: api.MoodHappy})
}
func (s *stubFetcher) GetNotes(context.Context) (*api.Response, error) {
	return s.reply([]api.Note{})
}
func (s *stubFetcher) GetMoodAnalytics(context.Context, string, string) (*api.Response, error) {
	return s.reply(api.MoodAnalytics{})
}
func (s *stubFetcher) GetUnreadCount(context.Context) (*api.Response, error) {
	return s.reply(api.UnreadCount{UnreadCount: 2})
}
func (s *stubFetcher) GetDailyQuestion(context.Context) (*api.Response, error) {
	return s.reply(api.DailyQuestion{Question: "q"})
}
func (s *stubFetcher) GetUserAchievements(context.Context) (*api.Response, error) {
	return s.reply([]api.UserAchievement{})
}

func TestPollerRefresh_SkipsWithoutToken(t *testing.T) {
	f := &stubFetcher{}
	p := &Poller{Store: &state.Store{}, Fetcher: f, Tokens: session.Static("")}

	p.Refresh(context.Background())
	assert.Zero(t, f.calls.Load())
	assert.False(t, p.Store.Snapshot().HasData)
}

func TestPollerRefresh_UpdatesStore(t *testing.T) {
	p := &Poller{Store: &state.Store{}, Fetcher: &stubFetcher{}, Tokens: session.Static("tok")}

	p.Refresh(context.Background())
	snap := p.Store.Snapshot()
	require.True(t, snap.HasData)
	assert.Equal(t, "alice", snap.User.Username)
	assert.True(t, snap.HasMood)
	assert.Equal(t, 2, snap.UnreadCount)
}

func TestPollerRefresh_RecordsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := &Poller{
		Store:   &state.Store{},
		Fetcher: &stubFetcher{err: errors.New("refused")},
		Tokens:  session.Static("tok"),
		Logger:  zap.New(core),
	}

	p.Refresh(context.Background())
	p.Refresh(context.Background())

	snap := p.Store.Snapshot()
	assert.Equal(t, 2, snap.ConsecutiveFailures)
	assert.True(t, snap.IsOffline())
	assert.Equal(t, 2, logs.FilterMessage("dashboard refresh failed").Len())
}

func TestPollerStart_StopsOnCancel(t *testing.T) {
	f := &stubFetcher{}
	p := &Poller{Store: &state.Store{}, Fetcher: f, Tokens: session.Static("tok"), Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	require.Eventually(t, func() bool { return p.Store.Snapshot().HasData }, time.Second, 5*time.Millisecond)
	cancel()

	// Allow an in-flight refresh to finish, then make sure polling stopped.
	time.Sleep(50 * time.Millisecond)
	settled := f.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, f.calls.Load())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestDropExpiredToken(t *testing.T) {
	now := time.Now()
	logger := zap.NewNop()

	sess, err := session.Open(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)

	require.NoError(t, sess.SetToken(signedToken(t, now.Add(time.Hour))))
	dropExpiredToken(sess, logger, now)
	assert.True(t, hasToken(sess), "valid token kept")

	require.NoError(t, sess.SetToken("not-a-jwt"))
	dropExpiredToken(sess, logger, now)
	assert.True(t, hasToken(sess), "opaque token kept")

	require.NoError(t, sess.SetToken(signedToken(t, now.Add(-time.Hour))))
	dropExpiredToken(sess, logger, now)
	assert.False(t, hasToken(sess), "expired token cleared")
}

func TestStartPath(t *testing.T) {
	sess, err := session.Open(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)

	assert.Equal(t, "/", startPath("", sess))
	assert.Equal(t, "/login", startPath("/login", sess))

	require.NoError(t, sess.SetToken("tok"))
	assert.Equal(t, "/lk", startPath("", sess))
}
