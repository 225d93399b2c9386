// Package sim drives the headless terrain walk: a fly camera advances on a
// fixed tick while the chunk window and ground probes follow it.
package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veldtlabs/veldt/internal/config"
	"github.com/veldtlabs/veldt/internal/engine/camera"
	"github.com/veldtlabs/veldt/internal/engine/compute"
	"github.com/veldtlabs/veldt/internal/engine/picking"
	"github.com/veldtlabs/veldt/internal/engine/terrain"
	"github.com/veldtlabs/veldt/internal/game/world"
	"github.com/veldtlabs/veldt/internal/logger"
	"github.com/veldtlabs/veldt/internal/server"
)

// Sim owns the chunk manager, camera and optional preview server for one run.
type Sim struct {
	cfg     *config.Config
	manager *world.Manager
	cam     *camera.FlyCamera
	preview *server.Server
}

// New builds a simulator from cfg.
func New(cfg *config.Config) (*Sim, error) {
	if cfg.Terrain.ChunkWidth == 0 || cfg.Terrain.ChunkHeight == 0 {
		return nil, fmt.Errorf("chunk size %dx%d is not generable",
			cfg.Terrain.ChunkWidth, cfg.Terrain.ChunkHeight)
	}
	if cfg.Sim.Tick <= 0 {
		return nil, fmt.Errorf("tick %v must be positive", cfg.Sim.Tick)
	}

	genDisp := compute.NewDispatcher()
	if cfg.Terrain.Workers > 0 {
		genDisp.Workers = cfg.Terrain.Workers
	}
	probeDisp := compute.NewDispatcher()
	if cfg.Probe.Workers > 0 {
		probeDisp.Workers = cfg.Probe.Workers
	}

	probe := picking.NewMeshProbe(probeDisp)
	probe.ScanLimit = cfg.Probe.ScanLimit

	manager := world.NewManager(world.Config{
		ChunkWidth:  cfg.Terrain.ChunkWidth,
		ChunkHeight: cfg.Terrain.ChunkHeight,
		MinHeight:   cfg.Terrain.MinHeight,
		MaxHeight:   cfg.Terrain.MaxHeight,
		Radius:      cfg.Terrain.Radius,
	}, terrain.NewGenerator(genDisp), probe)

	cam := camera.NewFlyCamera()
	cam.Position.Y = cfg.Sim.CameraHeight
	cam.Speed = cfg.Sim.CameraSpeed

	s := &Sim{cfg: cfg, manager: manager, cam: cam}
	if cfg.Server.Enabled {
		s.preview = server.NewServer(cfg.Server.Addr)
	}
	return s, nil
}

// Manager exposes the chunk manager, mainly for tests.
func (s *Sim) Manager() *world.Manager {
	return s.manager
}

// Camera exposes the fly camera, mainly for tests.
func (s *Sim) Camera() *camera.FlyCamera {
	return s.cam
}

// Run walks the camera forward on every tick, keeping the chunk window
// synced and logging the probe distance to the ground. Runs for
// cfg.Sim.Steps ticks, or until the context is cancelled when Steps is 0.
func (s *Sim) Run(ctx context.Context) error {
	if s.preview != nil {
		go func() {
			if err := s.preview.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("preview server stopped", zap.Error(err))
			}
		}()
	}

	// Fill the window before the first step so step logs start grounded.
	if _, _, err := s.manager.Sync(ctx, s.manager.RequestedAround(s.cam.Position)); err != nil {
		return fmt.Errorf("initial sync: %w", err)
	}

	ticker := time.NewTicker(s.cfg.Sim.Tick)
	defer ticker.Stop()

	dt := float32(s.cfg.Sim.Tick.Seconds())
	for step := 1; ; step++ {
		select {
		case <-ctx.Done():
			logger.Info("simulation interrupted", zap.Int("steps", step-1))
			return nil
		case <-ticker.C:
		}

		if err := s.step(ctx, step, dt); err != nil {
			return err
		}

		if s.cfg.Sim.Steps > 0 && step >= s.cfg.Sim.Steps {
			logger.Info("simulation finished", zap.Int("steps", step))
			return nil
		}
	}
}

func (s *Sim) step(ctx context.Context, step int, dt float32) error {
	s.cam.Advance(1, 0, 0, dt)

	generated, dropped, err := s.manager.Sync(ctx, s.manager.RequestedAround(s.cam.Position))
	if err != nil {
		return fmt.Errorf("step %d: %w", step, err)
	}

	drop, meshHit, err := s.manager.DropDistance(ctx, s.cam.Position)
	if err != nil {
		return fmt.Errorf("step %d: %w", step, err)
	}

	logger.Info("step",
		zap.Int("n", step),
		zap.Float32("x", s.cam.Position.X),
		zap.Float32("z", s.cam.Position.Z),
		zap.Float32("drop", drop),
		zap.Bool("mesh", meshHit),
		zap.Int("resident", s.manager.Count()),
		zap.Int("generated", generated),
		zap.Int("dropped", dropped),
	)

	if s.preview != nil {
		s.preview.Publish(server.Snapshot(s.cam.Position, drop, meshHit, s.manager.Resident()))
	}
	return nil
}
