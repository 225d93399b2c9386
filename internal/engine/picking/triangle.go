package picking

import (
	"github.com/veldtlabs/veldt/pkg/math"
)

// triEpsilon rejects rays nearly parallel to the triangle plane.
const triEpsilon = 1e-5

// IntersectRayTriangle runs Moller-Trumbore against the triangle
// (v0, v1, v2). It returns the ray parameter t of the intersection, or -1
// when the ray parallels the triangle plane or the hit falls outside the
// triangle. t may be negative for intersections behind the origin; callers
// filter for t > 0.
func IntersectRayTriangle(ray Ray, v0, v1, v2 math.Vec3) float32 {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	h := ray.Direction.Cross(e2)
	a := e1.Dot(h)
	if math.Abs(a) < triEpsilon {
		return -1
	}

	f := 1 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return -1
	}

	q := s.Cross(e1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return -1
	}

	return f * e2.Dot(q)
}
