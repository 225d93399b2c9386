package terrain

import (
	"github.com/veldtlabs/veldt/internal/engine/noise"
	"github.com/veldtlabs/veldt/pkg/math"
)

// normalStep is the lattice offset used for central-difference normals.
const normalStep = 0.1

// PointAt returns the surface point above lattice position p. The fractal
// noise value blends between minH and maxH without clamping, so heights can
// slightly exceed the configured range where the noise overshoots.
func PointAt(p math.Vec2, minH, maxH float32) math.Vec3 {
	return math.Vec3{
		X: p.X,
		Y: math.Lerp(minH, maxH, noise.FBM(p)),
		Z: p.Y,
	}
}

// VertexAt returns the vertex at p with a central-difference normal.
// Surface points probed at +-normalStep on each axis form two edge frames;
// the normal averages their cross products and is left unnormalized.
// A flat heightfield yields exactly (0, 1, 0).
func VertexAt(p math.Vec2, minH, maxH float32) Vertex {
	pos := PointAt(p, minH, maxH)

	tpx := PointAt(math.Vec2{X: p.X + normalStep, Y: p.Y}, minH, maxH).Sub(pos)
	tpz := PointAt(math.Vec2{X: p.X, Y: p.Y + normalStep}, minH, maxH).Sub(pos)
	tnx := PointAt(math.Vec2{X: p.X - normalStep, Y: p.Y}, minH, maxH).Sub(pos)
	tnz := PointAt(math.Vec2{X: p.X, Y: p.Y - normalStep}, minH, maxH).Sub(pos)

	pn := tpz.Cross(tpx).Normalize()
	nn := tnz.Cross(tnx).Normalize()

	return Vertex{
		Position: pos,
		Normal:   pn.Add(nn).Scale(0.5),
	}
}

// HeightAt returns the heightfield value at world position (x, z). This is
// the CPU-side query path; it samples the same field the mesh kernel does,
// so probes against resident meshes and direct height lookups agree.
func HeightAt(x, z, minH, maxH float32) float32 {
	return math.Lerp(minH, maxH, noise.FBM(math.Vec2{X: x, Y: z}))
}
