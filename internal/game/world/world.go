// Package world manages the resident set of terrain chunks around the
// camera: requested-set computation, generation of missing chunks, eviction
// of chunks that fall out of range, and probe queries against resident
// meshes.
package world

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/veldtlabs/veldt/internal/engine/picking"
	"github.com/veldtlabs/veldt/internal/engine/terrain"
	"github.com/veldtlabs/veldt/pkg/math"
)

// Config holds the chunk grid parameters.
type Config struct {
	ChunkWidth  uint32
	ChunkHeight uint32
	MinHeight   float32
	MaxHeight   float32
	Radius      int32 // chunks kept in each direction around the camera
}

// DefaultConfig returns the standard chunk grid: 32x32 cells, heights in
// [-5, 5], a two-chunk radius.
func DefaultConfig() Config {
	return Config{
		ChunkWidth:  32,
		ChunkHeight: 32,
		MinHeight:   -5,
		MaxHeight:   5,
		Radius:      2,
	}
}

// Manager owns the resident chunk set. Meshes are immutable once resident;
// Sync swaps the set as a whole, so readers hold consistent snapshots.
type Manager struct {
	cfg       Config
	generator *terrain.Generator
	probe     *picking.MeshProbe
	plane     picking.PlaneProbe

	mu     sync.RWMutex
	chunks map[string]*terrain.Mesh
}

// NewManager creates a manager generating with gen and probing with probe.
func NewManager(cfg Config, gen *terrain.Generator, probe *picking.MeshProbe) *Manager {
	if gen == nil {
		gen = terrain.NewGenerator(nil)
	}
	if probe == nil {
		probe = picking.NewMeshProbe(nil)
	}
	return &Manager{
		cfg:       cfg,
		generator: gen,
		probe:     probe,
		chunks:    make(map[string]*terrain.Mesh),
	}
}

// Config returns the manager's chunk grid parameters.
func (m *Manager) Config() Config {
	return m.cfg
}

// DescFor returns the descriptor of the chunk whose footprint contains the
// world position (x, z).
func (m *Manager) DescFor(x, z float32) terrain.ChunkDesc {
	w := m.cfg.ChunkWidth
	h := m.cfg.ChunkHeight
	return terrain.ChunkDesc{
		Width:     w,
		Height:    h,
		CornerX:   int32(math.Floor(x/float32(w))) * int32(w),
		CornerZ:   int32(math.Floor(z/float32(h))) * int32(h),
		MinHeight: m.cfg.MinHeight,
		MaxHeight: m.cfg.MaxHeight,
	}
}

// RequestedAround returns descriptors for every chunk within the configured
// radius of pos, in deterministic row-major order.
func (m *Manager) RequestedAround(pos math.Vec3) []terrain.ChunkDesc {
	base := m.DescFor(pos.X, pos.Z)
	r := m.cfg.Radius

	side := int(2*r + 1)
	out := make([]terrain.ChunkDesc, 0, side*side)
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			desc := base
			desc.CornerX += dx * int32(m.cfg.ChunkWidth)
			desc.CornerZ += dz * int32(m.cfg.ChunkHeight)
			out = append(out, desc)
		}
	}
	return out
}

// Sync reconciles the resident set against requested. Still-requested
// chunks are kept untouched while missing ones are generated; anything no
// longer requested is dropped. Returns how many chunks were generated and
// dropped.
func (m *Manager) Sync(ctx context.Context, requested []terrain.ChunkDesc) (generated, dropped int, err error) {
	m.mu.RLock()
	var missing []terrain.ChunkDesc
	for _, desc := range requested {
		if _, ok := m.chunks[desc.Key()]; !ok {
			missing = append(missing, desc)
		}
	}
	m.mu.RUnlock()

	// Generate outside the lock; probes keep reading the old set meanwhile.
	fresh := make(map[string]*terrain.Mesh, len(missing))
	for _, desc := range missing {
		mesh, genErr := m.generator.Generate(ctx, desc)
		if genErr != nil {
			return len(fresh), 0, fmt.Errorf("sync chunk %s: %w", desc.Key(), genErr)
		}
		fresh[desc.Key()] = mesh
	}

	m.mu.Lock()
	next := make(map[string]*terrain.Mesh, len(requested))
	for _, desc := range requested {
		key := desc.Key()
		if mesh, ok := m.chunks[key]; ok {
			next[key] = mesh
		} else if mesh, ok := fresh[key]; ok {
			next[key] = mesh
		}
	}
	for key := range m.chunks {
		if _, ok := next[key]; !ok {
			dropped++
		}
	}
	m.chunks = next
	m.mu.Unlock()

	return len(fresh), dropped, nil
}

// Chunk returns the resident mesh stored under key.
func (m *Manager) Chunk(key string) (*terrain.Mesh, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mesh, ok := m.chunks[key]
	return mesh, ok
}

// ChunkAt returns the resident chunk containing the world position (x, z).
func (m *Manager) ChunkAt(x, z float32) (*terrain.Mesh, bool) {
	return m.Chunk(m.DescFor(x, z).Key())
}

// Count returns the number of resident chunks.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// Keys returns the resident chunk keys in sorted order.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.chunks))
	for key := range m.chunks {
		keys = append(keys, key)
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Resident returns the resident meshes ordered by chunk key.
func (m *Manager) Resident() []*terrain.Mesh {
	keys := m.Keys()

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*terrain.Mesh, 0, len(keys))
	for _, key := range keys {
		if mesh, ok := m.chunks[key]; ok {
			out = append(out, mesh)
		}
	}
	return out
}

// HeightAt returns the terrain height at (x, z) from the heightfield
// itself, independent of chunk residency. It agrees with the generated
// mesh because both sample the same field.
func (m *Manager) HeightAt(x, z float32) float32 {
	return terrain.HeightAt(x, z, m.cfg.MinHeight, m.cfg.MaxHeight)
}

// DropDistance probes straight down from pos against the resident chunk
// underneath it. The returned flag reports whether a mesh was probed; when
// the chunk is not resident the plane fallback reports the height of pos
// above the idealized ground plane instead.
func (m *Manager) DropDistance(ctx context.Context, pos math.Vec3) (dist float32, meshHit bool, err error) {
	mesh, ok := m.ChunkAt(pos.X, pos.Z)
	if !ok {
		return m.plane.Run(pos, nil), false, nil
	}

	dist, err = m.probe.Run(ctx, picking.DownwardRay(pos), mesh, nil)
	if err != nil {
		return 0, false, fmt.Errorf("drop probe at (%.1f, %.1f): %w", pos.X, pos.Z, err)
	}
	return dist, true, nil
}

// PickDistance probes an arbitrary ray against the resident chunk under the
// ray origin, falling back to the idealized plane when no chunk is
// resident there.
func (m *Manager) PickDistance(ctx context.Context, ray picking.Ray) (dist float32, meshHit bool, err error) {
	mesh, ok := m.ChunkAt(ray.Origin.X, ray.Origin.Z)
	if !ok {
		return m.plane.Run(ray.Origin, nil), false, nil
	}

	dist, err = m.probe.Run(ctx, ray, mesh, nil)
	if err != nil {
		return 0, false, fmt.Errorf("pick probe: %w", err)
	}
	return dist, true, nil
}
