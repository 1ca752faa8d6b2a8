package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/five82/moodlog/internal/api"
	"github.com/five82/moodlog/internal/config"
	"github.com/five82/moodlog/internal/logging"
	"github.com/five82/moodlog/internal/router"
	"github.com/five82/moodlog/internal/session"
	"github.com/five82/moodlog/internal/state"
	"github.com/five82/moodlog/internal/ui"
)

// Options configure the moodlog application.
type Options struct {
	ConfigPath string
	Route      string // initial path; empty picks / or /lk based on the session
	PollEvery  int    // seconds; zero uses default
}

// Run boots the moodlog TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	sess, err := session.Open(cfg.SessionPath)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	dropExpiredToken(sess, logger, time.Now())

	client, err := newClient(cfg, sess, logger)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	routes, err := router.NewTable(router.DefaultRoutes())
	if err != nil {
		return fmt.Errorf("build routes: %w", err)
	}

	store := &state.Store{}
	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	poller := &Poller{
		Store:    store,
		Fetcher:  client,
		Tokens:   sess,
		Interval: interval,
		Logger:   logger.Named("poller"),
	}
	poller.Start(ctx)

	logger.Info("moodlog started",
		zap.String("api_url", client.BaseURL()),
		zap.Bool("signed_in", hasToken(sess)),
	)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sess,
		Store:     store,
		Routes:    routes,
		StartPath: startPath(opts.Route, sess),
		ThemeName: cfg.Theme,
		LogPath:   cfg.LogFile,
		Logger:    logger.Named("ui"),
	})
}

func newClient(cfg config.Config, sess *session.Store, logger *zap.Logger) (*api.Client, error) {
	opts := api.Options{
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		Logger:     logger,
		RequestIDs: cfg.RequestIDs,
	}
	if cfg.AttachToken {
		opts.Tokens = sess
	}
	return api.NewClient(cfg.APIURL, opts)
}

// dropExpiredToken clears a stored token whose exp claim has passed. Tokens
// that cannot be decoded are left for the backend to judge.
func dropExpiredToken(sess *session.Store, logger *zap.Logger, now time.Time) {
	token, ok := sess.Token()
	if !ok {
		return
	}
	claims, err := session.ParseClaims(token)
	if err != nil || !claims.Expired(now) {
		return
	}
	if err := sess.Clear(); err != nil {
		logger.Warn("clear expired session failed", zap.Error(err))
		return
	}
	logger.Info("session expired", zap.Time("expired_at", claims.ExpiresAt))
}

func startPath(requested string, sess *session.Store) string {
	if requested != "" {
		return requested
	}
	if hasToken(sess) {
		return "/lk"
	}
	return "/"
}

func hasToken(sess *session.Store) bool {
	_, ok := sess.Token()
	return ok
}
