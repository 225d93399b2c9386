package sim

import (
	"context"
	"testing"
	"time"

	"github.com/veldtlabs/veldt/internal/config"
	"github.com/veldtlabs/veldt/internal/logger"
)

func init() {
	_ = logger.InitWithFileConfig("error", logger.FileConfig{}, false)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Terrain.ChunkWidth = 4
	cfg.Terrain.ChunkHeight = 4
	cfg.Terrain.Radius = 0
	cfg.Sim.Tick = time.Millisecond
	return cfg
}

func TestNewRejectsZeroChunk(t *testing.T) {
	cfg := testConfig()
	cfg.Terrain.ChunkWidth = 0

	if _, err := New(cfg); err == nil {
		t.Error("expected error for zero chunk width, got nil")
	}
}

func TestNewRejectsZeroTick(t *testing.T) {
	cfg := testConfig()
	cfg.Sim.Tick = 0

	if _, err := New(cfg); err == nil {
		t.Error("expected error for zero tick, got nil")
	}
}

func TestNewAppliesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Sim.CameraHeight = 42
	cfg.Sim.CameraSpeed = 3

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if s.Camera().Position.Y != 42 {
		t.Errorf("camera height = %v, want 42", s.Camera().Position.Y)
	}
	if s.Camera().Speed != 3 {
		t.Errorf("camera speed = %v, want 3", s.Camera().Speed)
	}
	if got := s.Manager().Config().ChunkWidth; got != 4 {
		t.Errorf("manager chunk width = %d, want 4", got)
	}
}

func TestRunFixedSteps(t *testing.T) {
	cfg := testConfig()
	cfg.Sim.Steps = 3

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	start := s.Camera().Position
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if s.Manager().Count() == 0 {
		t.Error("no chunks resident after run")
	}
	if s.Camera().Position == start {
		t.Error("camera did not advance during run")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Run(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() after cancel = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
