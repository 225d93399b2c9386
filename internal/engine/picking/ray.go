// Package picking provides ray construction and ray-mesh intersection
// probes against generated terrain chunks.
package picking

import (
	"github.com/veldtlabs/veldt/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// DownwardRay returns the fixed probe ray pointing straight down from pos.
func DownwardRay(pos math.Vec3) Ray {
	return Ray{Origin: pos, Direction: math.Vec3{Y: -1}}
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport
// dimensions, invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coords, Y flipped.
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1, 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// unproject applies the inverse view-projection and the perspective divide.
func unproject(invViewProj math.Mat4, p math.Vec4) math.Vec3 {
	w := invViewProj.MulVec4(p)
	if w[3] != 0 {
		return math.Vec3{X: w[0] / w[3], Y: w[1] / w[3], Z: w[2] / w[3]}
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// IntersectPlaneY intersects the ray with a horizontal plane at the given Y
// level. Returns the intersection point (X, Z) and whether the intersection
// is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	// Solve Origin.Y + t*Direction.Y = planeY.
	if math.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // parallel to the plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // behind the origin
	}

	return r.Origin.X + t*r.Direction.X, r.Origin.Z + t*r.Direction.Z, true
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
