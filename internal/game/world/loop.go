package world

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/veldtlabs/veldt/internal/logger"
	"github.com/veldtlabs/veldt/pkg/math"
)

// DefaultSyncInterval is the regeneration cadence used when Run is given a
// non-positive interval.
const DefaultSyncInterval = 500 * time.Millisecond

// Run drives the background regeneration loop: every interval it syncs the
// resident set against the chunks requested around the camera position
// reported by poll. Blocks until the context is cancelled and returns the
// context's error.
func (m *Manager) Run(ctx context.Context, interval time.Duration, poll func() math.Vec3) error {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			requested := m.RequestedAround(poll())
			generated, dropped, err := m.Sync(ctx, requested)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error("chunk sync failed", zap.Error(err))
				continue
			}
			if generated > 0 || dropped > 0 {
				logger.Debug("chunks synced",
					zap.Int("generated", generated),
					zap.Int("dropped", dropped),
					zap.Int("resident", m.Count()))
			}
		}
	}
}
