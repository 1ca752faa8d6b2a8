package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/moodlog/internal/api"
	"github.com/five82/moodlog/internal/state"
)

const (
	defaultPollInterval = 10 * time.Second
	maxBackoff          = 30 * time.Second
)

// Poller keeps the dashboard store fresh while a session token exists.
type Poller struct {
	Store    *state.Store
	Fetcher  state.Fetcher
	Tokens   api.TokenSource
	Interval time.Duration
	Logger   *zap.Logger
}

// Start launches the polling goroutine and returns immediately. The wait
// between refreshes grows with consecutive failures.
func (p *Poller) Start(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			p.Refresh(ctx)
			wait := calculateBackoff(p.Store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// Refresh loads the dashboard once. Without a token there is nothing to
// fetch and the store is left untouched.
func (p *Poller) Refresh(ctx context.Context) {
	token, ok := p.Tokens.Token()
	if !ok {
		return
	}
	d, err := state.Load(ctx, p.Fetcher, token)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger().Warn("dashboard refresh failed", zap.Error(err))
		p.Store.Update(nil, err)
		return
	}
	p.Store.Update(d, nil)
}

func (p *Poller) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
