// Package terrain generates procedural heightfield chunk meshes and the GPU
// buffer layouts external renderers upload.
package terrain

import (
	"fmt"

	"github.com/veldtlabs/veldt/pkg/math"
)

// ChunkDesc describes one terrain chunk to generate. It mirrors the uniform
// record handed to the generation kernel: lattice cell counts per axis, the
// chunk's world-space corner, and the height range noise maps into.
type ChunkDesc struct {
	Width, Height    uint32 // cells per axis
	CornerX, CornerZ int32  // world-space corner, lattice units
	MinHeight        float32
	MaxHeight        float32
}

// VertexCount returns the lattice vertex count, (Width+1)*(Height+1).
func (d ChunkDesc) VertexCount() uint32 {
	return (d.Width + 1) * (d.Height + 1)
}

// IndexCount returns the index count, Width*Height*6 (two triangles per cell).
func (d ChunkDesc) IndexCount() uint32 {
	return d.Width * d.Height * 6
}

// Key returns the chunk's cache key, "<cornerX>_<cornerZ>".
func (d ChunkDesc) Key() string {
	return fmt.Sprintf("%d_%d", d.CornerX, d.CornerZ)
}

// Corner returns the chunk corner as a lattice-space vector.
func (d ChunkDesc) Corner() math.Vec2 {
	return math.Vec2{X: float32(d.CornerX), Y: float32(d.CornerZ)}
}

// Vertex is one generated mesh vertex. The packed form occupies the 32-byte
// GPU stride: position, pad, normal, pad.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Mesh holds one generated chunk ready for upload or intersection queries.
type Mesh struct {
	Desc     ChunkDesc
	Vertices []Vertex
	Indices  []uint32
}
