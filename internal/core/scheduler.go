package core

// scheduler.go runs background maintenance for the session service.
//
// Sessions hold a full copy of their view's records, so idle ones are dropped
// periodically. The sweeper is long-running and context-aware for graceful
// shutdown.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is used when StartSessionSweeper gets a non-positive interval.
const DefaultSweepInterval = time.Minute

// StartSessionSweeper expires idle sessions every interval until ctx is
// cancelled. Run it in its own goroutine.
func (s *Service) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	slog.Info("session sweeper started",
		"interval", interval,
		"session_ttl", s.cfg.SessionTTL,
		"max_sessions", s.cfg.MaxSessions,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

// runSweep performs one expiry pass.
func (s *Service) runSweep() {
	start := time.Now()
	expired := s.ExpireIdle()
	if expired == 0 {
		return
	}

	slog.Info("expired idle sessions",
		"expired", expired,
		"remaining", s.SessionCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
