package terrain

import (
	"github.com/veldtlabs/veldt/internal/engine/compute"
)

// GPU buffer layout constants. Vertices use the std430 vec3 stride: three
// position floats, four bytes of padding, three normal floats, padding.
const (
	VertexStride   = 32
	IndexStride    = 4
	ChunkDescBytes = 24
)

// VertexBytes returns the packed vertex buffer size for d.
func (d ChunkDesc) VertexBytes() int {
	return int(d.VertexCount()) * VertexStride
}

// IndexBytes returns the packed index buffer size for d.
func (d ChunkDesc) IndexBytes() int {
	return int(d.IndexCount()) * IndexStride
}

// PackVertices serializes vertices into the 32-byte-stride layout consumed
// by the render pipeline. Padding slots are zeroed.
func PackVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	off := 0
	for _, v := range vertices {
		off = compute.PutFloat32(buf, off, v.Position.X)
		off = compute.PutFloat32(buf, off, v.Position.Y)
		off = compute.PutFloat32(buf, off, v.Position.Z)
		off = compute.PutFloat32(buf, off, 0)
		off = compute.PutFloat32(buf, off, v.Normal.X)
		off = compute.PutFloat32(buf, off, v.Normal.Y)
		off = compute.PutFloat32(buf, off, v.Normal.Z)
		off = compute.PutFloat32(buf, off, 0)
	}
	return buf
}

// PackIndices serializes indices as little-endian u32.
func PackIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*IndexStride)
	off := 0
	for _, idx := range indices {
		off = compute.PutUint32(buf, off, idx)
	}
	return buf
}

// Pack serializes the descriptor to its 24-byte uniform layout: cell counts,
// corner, height range.
func (d ChunkDesc) Pack() []byte {
	buf := make([]byte, ChunkDescBytes)
	off := 0
	off = compute.PutUint32(buf, off, d.Width)
	off = compute.PutUint32(buf, off, d.Height)
	off = compute.PutInt32(buf, off, d.CornerX)
	off = compute.PutInt32(buf, off, d.CornerZ)
	off = compute.PutFloat32(buf, off, d.MinHeight)
	compute.PutFloat32(buf, off, d.MaxHeight)
	return buf
}
