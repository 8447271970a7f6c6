package task

import (
	"context"
	"log/slog"
	"time"
)

// Janitor periodically sweeps expired tasks out of a manager's registry.
type Janitor struct {
	manager   *Manager
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
}

// NewJanitor creates a Janitor that removes tasks older than retention on
// every interval tick.
func NewJanitor(manager *Manager, retention, interval time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		manager:   manager,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// Run sweeps on every tick until ctx is cancelled. It blocks; callers run it
// in its own goroutine.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Debug("janitor started", "retention", j.retention, "interval", j.interval)

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug("janitor stopped")
			return

		case <-ticker.C:
			if removed := j.manager.Cleanup(j.retention); removed > 0 {
				j.logger.Info("janitor sweep removed tasks", "count", removed)
			}
		}
	}
}
