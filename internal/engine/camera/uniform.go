package camera

import (
	"github.com/veldtlabs/veldt/internal/engine/compute"
	"github.com/veldtlabs/veldt/pkg/math"
)

// UniformBytes is the packed size of the camera uniform: a vec4 view
// position followed by a column-major mat4x4 view-projection.
const UniformBytes = 80

// Uniform mirrors the camera record bound to probe kernels and the render
// pipeline. Supplied externally each frame; probes read the view position
// for ray construction, renderers consume the packed bytes.
type Uniform struct {
	ViewPos  math.Vec4
	ViewProj math.Mat4
}

// Eye returns the view position as a Vec3.
func (u Uniform) Eye() math.Vec3 {
	return math.Vec3{X: u.ViewPos[0], Y: u.ViewPos[1], Z: u.ViewPos[2]}
}

// Pack serializes the uniform to its 80-byte GPU layout.
func (u Uniform) Pack() []byte {
	buf := make([]byte, UniformBytes)
	off := 0
	for _, v := range u.ViewPos {
		off = compute.PutFloat32(buf, off, v)
	}
	for _, v := range u.ViewProj {
		off = compute.PutFloat32(buf, off, v)
	}
	return buf
}
