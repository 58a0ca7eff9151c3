package core

// scheduler.go runs background maintenance for the service.
//
// The only job is the session sweeper, which drops view sessions that have
// been idle longer than the configured timeout. It is long-running, stops
// with its context, and never fails the application.

import (
	"context"
	"log/slog"
	"time"
)

// StartSessionSweeper removes idle sessions every interval until ctx is
// cancelled. It blocks; run it in its own goroutine.
func (s *Service) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	slog.Info("session sweeper started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if removed := s.sessions.Sweep(); removed > 0 {
				slog.Debug("idle sessions removed",
					"removed", removed,
					"live", s.sessions.Len(),
				)
			}
		}
	}
}
