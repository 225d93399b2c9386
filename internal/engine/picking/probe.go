package picking

import (
	"context"
	"fmt"

	"github.com/veldtlabs/veldt/internal/engine/compute"
	"github.com/veldtlabs/veldt/internal/engine/terrain"
	"github.com/veldtlabs/veldt/pkg/math"
)

const (
	// NoHit is the sentinel left in the result when no triangle intersects.
	NoHit float32 = 1e38

	// DefaultScanLimit bounds the index scan at 6144 indices (1024 cells),
	// the index count of one 32x32 chunk. Meshes with more indices are
	// silently under-scanned unless the probe carries a larger limit.
	DefaultScanLimit = 6144

	// reduceSpan is how many cells one reduction invocation folds.
	reduceSpan = 64
)

// MeshProbe finds the closest positive ray hit against a chunk mesh.
//
// The scan walks the index buffer in strides of 6, one grid cell per stride,
// testing the cell's two triangles. It runs as a parallel reduction:
// reduction invocations fold disjoint cell spans into per-span minima, then
// a final pass combines the partials. A single-worker dispatcher degenerates
// to the reference serial scan and yields identical results.
type MeshProbe struct {
	Dispatcher *compute.Dispatcher
	ScanLimit  uint32 // max indices scanned, default DefaultScanLimit
}

// NewMeshProbe returns a probe with the default scan limit.
func NewMeshProbe(d *compute.Dispatcher) *MeshProbe {
	if d == nil {
		d = compute.NewDispatcher()
	}
	return &MeshProbe{Dispatcher: d, ScanLimit: DefaultScanLimit}
}

// Run scans mesh for the closest hit along ray. The distance, or NoHit when
// every scanned triangle misses, is written to result[0] when a result
// buffer is supplied, and returned. The mesh buffers are only read.
func (p *MeshProbe) Run(ctx context.Context, ray Ray, mesh *terrain.Mesh, result []float32) (float32, error) {
	limit := p.ScanLimit
	if limit == 0 {
		limit = DefaultScanLimit
	}
	if n := uint32(len(mesh.Indices)); limit > n {
		limit = n
	}
	cells := limit / 6

	dist := NoHit
	if cells > 0 {
		groups := (cells + reduceSpan - 1) / reduceSpan
		partials := make([]float32, groups)

		vertices := mesh.Vertices
		indices := mesh.Indices
		kernel := func(g uint32) {
			lo := g * reduceSpan
			hi := lo + reduceSpan
			if hi > cells {
				hi = cells
			}

			best := NoHit
			for c := lo; c < hi; c++ {
				k := c * 6
				p00 := vertices[indices[k]].Position
				p01 := vertices[indices[k+1]].Position
				p11 := vertices[indices[k+2]].Position
				p10 := vertices[indices[k+5]].Position

				if t := IntersectRayTriangle(ray, p00, p01, p11); t > 0 && t < best {
					best = t
				}
				if t := IntersectRayTriangle(ray, p00, p11, p10); t > 0 && t < best {
					best = t
				}
			}
			partials[g] = best
		}

		if err := p.Dispatcher.Dispatch(ctx, groups, kernel); err != nil {
			return 0, fmt.Errorf("mesh probe over %s: %w", mesh.Desc.Key(), err)
		}

		for _, t := range partials {
			if t < dist {
				dist = t
			}
		}
	}

	if len(result) > 0 {
		result[0] = dist
	}
	return dist, nil
}

// PlaneProbe is the mesh-free fallback probe. It performs no plane
// intersection math: it reports the camera height above PlaneY, standing in
// for a downward ray against an idealized ground plane.
type PlaneProbe struct {
	PlaneY float32
}

// Run writes the camera height above the plane to result[0] and returns it.
func (p PlaneProbe) Run(cameraPos math.Vec3, result []float32) float32 {
	d := cameraPos.Y - p.PlaneY
	if len(result) > 0 {
		result[0] = d
	}
	return d
}
