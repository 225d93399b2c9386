package world

import (
	"context"
	"testing"
	"time"

	"github.com/veldtlabs/veldt/internal/engine/compute"
	"github.com/veldtlabs/veldt/internal/engine/picking"
	"github.com/veldtlabs/veldt/internal/engine/terrain"
	"github.com/veldtlabs/veldt/internal/logger"
	"github.com/veldtlabs/veldt/pkg/math"
)

func init() {
	// Silence the background loop during tests.
	_ = logger.InitWithFileConfig("error", logger.FileConfig{}, false)
}

func flatConfig() Config {
	return Config{ChunkWidth: 4, ChunkHeight: 4, Radius: 1}
}

func newTestManager(cfg Config) *Manager {
	d := compute.NewDispatcher()
	return NewManager(cfg, terrain.NewGenerator(d), picking.NewMeshProbe(d))
}

func TestDescForSnapsToGrid(t *testing.T) {
	m := newTestManager(Config{ChunkWidth: 32, ChunkHeight: 32})

	tests := []struct {
		x, z             float32
		cornerX, cornerZ int32
	}{
		{0, 0, 0, 0},
		{31.9, 31.9, 0, 0},
		{32, 0, 32, 0},
		{-0.1, -0.1, -32, -32},
		{-32, -33, -32, -64},
		{100, -100, 96, -128},
	}

	for _, tt := range tests {
		d := m.DescFor(tt.x, tt.z)
		if d.CornerX != tt.cornerX || d.CornerZ != tt.cornerZ {
			t.Errorf("DescFor(%v, %v) corner = (%d, %d), want (%d, %d)",
				tt.x, tt.z, d.CornerX, d.CornerZ, tt.cornerX, tt.cornerZ)
		}
	}
}

func TestRequestedAround(t *testing.T) {
	m := newTestManager(flatConfig())

	got := m.RequestedAround(math.Vec3{X: 1, Z: 1})
	if len(got) != 9 {
		t.Fatalf("requested %d chunks, want 9", len(got))
	}

	// Row-major walk from (-4,-4) to (4,4) in chunk steps of 4.
	if got[0].CornerX != -4 || got[0].CornerZ != -4 {
		t.Errorf("first chunk corner = (%d, %d), want (-4, -4)", got[0].CornerX, got[0].CornerZ)
	}
	if got[4].CornerX != 0 || got[4].CornerZ != 0 {
		t.Errorf("center chunk corner = (%d, %d), want (0, 0)", got[4].CornerX, got[4].CornerZ)
	}
	if got[8].CornerX != 4 || got[8].CornerZ != 4 {
		t.Errorf("last chunk corner = (%d, %d), want (4, 4)", got[8].CornerX, got[8].CornerZ)
	}
}

func TestSyncGeneratesMissing(t *testing.T) {
	m := newTestManager(flatConfig())

	requested := m.RequestedAround(math.Vec3{})
	generated, dropped, err := m.Sync(context.Background(), requested)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if generated != 9 || dropped != 0 {
		t.Errorf("Sync() = (%d generated, %d dropped), want (9, 0)", generated, dropped)
	}
	if m.Count() != 9 {
		t.Errorf("Count() = %d, want 9", m.Count())
	}
	if _, ok := m.Chunk("0_0"); !ok {
		t.Error("chunk 0_0 not resident after sync")
	}
}

func TestSyncReusesResident(t *testing.T) {
	m := newTestManager(flatConfig())
	requested := m.RequestedAround(math.Vec3{})

	if _, _, err := m.Sync(context.Background(), requested); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	before, _ := m.Chunk("0_0")

	generated, dropped, err := m.Sync(context.Background(), requested)
	if err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}
	if generated != 0 || dropped != 0 {
		t.Errorf("second Sync() = (%d generated, %d dropped), want (0, 0)", generated, dropped)
	}

	after, _ := m.Chunk("0_0")
	if before != after {
		t.Error("resident chunk was regenerated instead of reused")
	}
}

func TestSyncEvictsUnrequested(t *testing.T) {
	m := newTestManager(flatConfig())

	if _, _, err := m.Sync(context.Background(), m.RequestedAround(math.Vec3{})); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	kept, _ := m.Chunk("4_4")

	// One chunk step diagonally: the 3x3 windows overlap in 4 chunks.
	generated, dropped, err := m.Sync(context.Background(), m.RequestedAround(math.Vec3{X: 5, Z: 5}))
	if err != nil {
		t.Fatalf("Sync() after move error = %v", err)
	}

	if generated != 5 || dropped != 5 {
		t.Errorf("Sync() after move = (%d generated, %d dropped), want (5, 5)", generated, dropped)
	}
	if m.Count() != 9 {
		t.Errorf("Count() = %d, want 9", m.Count())
	}
	if _, ok := m.Chunk("-4_-4"); ok {
		t.Error("chunk -4_-4 still resident after moving away")
	}
	if now, _ := m.Chunk("4_4"); now != kept {
		t.Error("overlapping chunk 4_4 was regenerated instead of kept")
	}
}

func TestKeysSorted(t *testing.T) {
	m := newTestManager(flatConfig())
	if _, _, err := m.Sync(context.Background(), m.RequestedAround(math.Vec3{})); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	keys := m.Keys()
	if len(keys) != 9 {
		t.Fatalf("Keys() returned %d keys, want 9", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("Keys() not sorted: %q before %q", keys[i-1], keys[i])
		}
	}

	meshes := m.Resident()
	if len(meshes) != 9 {
		t.Fatalf("Resident() returned %d meshes, want 9", len(meshes))
	}
	for i, mesh := range meshes {
		if mesh.Desc.Key() != keys[i] {
			t.Errorf("Resident()[%d] key = %s, want %s", i, mesh.Desc.Key(), keys[i])
		}
	}
}

func TestHeightAtMatchesMeshVertices(t *testing.T) {
	cfg := Config{ChunkWidth: 4, ChunkHeight: 4, MinHeight: -5, MaxHeight: 5, Radius: 0}
	m := newTestManager(cfg)

	if _, _, err := m.Sync(context.Background(), m.RequestedAround(math.Vec3{})); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	mesh, ok := m.Chunk("0_0")
	if !ok {
		t.Fatal("chunk 0_0 not resident")
	}

	for _, v := range mesh.Vertices {
		want := m.HeightAt(v.Position.X, v.Position.Z)
		if v.Position.Y != want {
			t.Fatalf("mesh vertex at (%v, %v) height %v, HeightAt %v",
				v.Position.X, v.Position.Z, v.Position.Y, want)
		}
	}
}

func TestDropDistanceOnResidentChunk(t *testing.T) {
	m := newTestManager(flatConfig())
	if _, _, err := m.Sync(context.Background(), m.RequestedAround(math.Vec3{X: 1, Z: 1})); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	dist, meshHit, err := m.DropDistance(context.Background(), math.Vec3{X: 1, Y: 5, Z: 1})
	if err != nil {
		t.Fatalf("DropDistance() error = %v", err)
	}
	if !meshHit {
		t.Fatal("DropDistance() did not probe the resident mesh")
	}
	if math.Abs(dist-5) > 1e-4 {
		t.Errorf("DropDistance() = %v, want 5", dist)
	}
}

func TestDropDistancePlaneFallback(t *testing.T) {
	m := newTestManager(flatConfig())

	dist, meshHit, err := m.DropDistance(context.Background(), math.Vec3{X: 1, Y: 7.5, Z: 1})
	if err != nil {
		t.Fatalf("DropDistance() error = %v", err)
	}
	if meshHit {
		t.Error("DropDistance() claimed a mesh hit with nothing resident")
	}
	if dist != 7.5 {
		t.Errorf("plane fallback = %v, want camera height 7.5", dist)
	}
}

func TestPickDistanceSlanted(t *testing.T) {
	m := newTestManager(flatConfig())
	if _, _, err := m.Sync(context.Background(), m.RequestedAround(math.Vec3{X: 2, Z: 2})); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	ray := picking.Ray{
		Origin:    math.Vec3{X: 2, Y: 4, Z: 2},
		Direction: math.Vec3{X: 0.3, Y: -1, Z: 0.1}.Normalize(),
	}
	dist, meshHit, err := m.PickDistance(context.Background(), ray)
	if err != nil {
		t.Fatalf("PickDistance() error = %v", err)
	}
	if !meshHit {
		t.Fatal("PickDistance() did not probe the resident mesh")
	}

	hit := ray.At(dist)
	if math.Abs(hit.Y) > 1e-4 {
		t.Errorf("pick hit %v, want a point on the flat mesh", hit)
	}
}

func TestRunSyncsUntilCancelled(t *testing.T) {
	m := newTestManager(Config{ChunkWidth: 4, ChunkHeight: 4, Radius: 0})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Run(ctx, 5*time.Millisecond, func() math.Vec3 {
			return math.Vec3{X: 1, Z: 1}
		})
	}()

	deadline := time.After(2 * time.Second)
	for m.Count() == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("Run() never synced a chunk")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("Run() returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
