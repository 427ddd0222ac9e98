package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Run sends a TickMsg every tick interval until ctx is done, so pending
// settings are written at most once per tick.
func (a *App) Run(ctx context.Context) error {
	interval := a.cfg.TickInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := a.Dispatch(ctx, TickMsg{}); err != nil {
				a.log.Warn("tick failed", zap.Error(err))
			}
		}
	}
}

// Flush writes pending settings now.
func (a *App) Flush(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushSettings(ctx)
}

// Close flushes pending settings and closes the store.
func (a *App) Close() error {
	ferr := a.Flush(context.Background())
	if err := a.store.Close(); err != nil {
		return err
	}
	return ferr
}
