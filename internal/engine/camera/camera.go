// Package camera provides the free-flying camera and the uniform record
// shared with probe kernels and external renderers.
package camera

import (
	gomath "math"

	"github.com/veldtlabs/veldt/pkg/math"
)

// FlyCamera moves freely above the terrain.
type FlyCamera struct {
	// World-space position
	Position math.Vec3

	// Orientation in radians. Yaw 0 looks toward -Z; positive pitch looks up.
	Yaw   float32
	Pitch float32

	// Projection
	FovY   float32 // vertical field of view, radians
	Aspect float32 // width / height
	Near   float32
	Far    float32

	// Movement
	Speed float32 // world units per second

	// Constraints
	MinPitch float32
	MaxPitch float32
}

// NewFlyCamera creates a fly camera with default settings.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Position: math.Vec3{Y: 10},
		FovY:     0.785398, // 45 degrees
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000.0,
		Speed:    20.0,
		MinPitch: -1.5,
		MaxPitch: 1.5,
	}
}

// Forward returns the camera's view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: float32(gomath.Sin(float64(c.Yaw))) * cp,
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: -float32(gomath.Cos(float64(c.Yaw))) * cp,
	}
}

// Right returns the camera's right direction on the XZ plane.
func (c *FlyCamera) Right() math.Vec3 {
	return math.Vec3{
		X: float32(gomath.Cos(float64(c.Yaw))),
		Z: float32(gomath.Sin(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for the current pose.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	target := c.Position.Add(c.Forward())
	return math.LookAt(c.Position, target, math.Vec3{Y: 1})
}

// ProjMatrix returns the perspective projection matrix.
func (c *FlyCamera) ProjMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProj returns the combined view-projection matrix.
func (c *FlyCamera) ViewProj() math.Mat4 {
	return c.ProjMatrix().Mul(c.ViewMatrix())
}

// Uniform captures the camera record handed to probe kernels.
func (c *FlyCamera) Uniform() Uniform {
	return Uniform{
		ViewPos:  math.Vec4{c.Position.X, c.Position.Y, c.Position.Z, 1},
		ViewProj: c.ViewProj(),
	}
}

// HandleRotation applies yaw/pitch deltas, clamping pitch.
func (c *FlyCamera) HandleRotation(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch = math.Clamp(c.Pitch+deltaPitch, c.MinPitch, c.MaxPitch)
}

// Advance moves the camera by the given axis amounts over dt seconds.
// forward follows the view direction, right strafes, up is world-space.
func (c *FlyCamera) Advance(forward, right, up, dt float32) {
	step := c.Speed * dt
	c.Position = c.Position.
		Add(c.Forward().Scale(forward * step)).
		Add(c.Right().Scale(right * step)).
		Add(math.Vec3{Y: up * step})
}
