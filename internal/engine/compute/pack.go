package compute

import (
	"encoding/binary"
	gomath "math"
)

// Little-endian scalar writers for GPU-layout buffers. Each returns the
// offset just past the written value so call sites can chain fields.

// PutFloat32 writes v at off and returns the next offset.
func PutFloat32(b []byte, off int, v float32) int {
	binary.LittleEndian.PutUint32(b[off:off+4], gomath.Float32bits(v))
	return off + 4
}

// PutUint32 writes v at off and returns the next offset.
func PutUint32(b []byte, off int, v uint32) int {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
	return off + 4
}

// PutInt32 writes v at off and returns the next offset.
func PutInt32(b []byte, off int, v int32) int {
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(v))
	return off + 4
}

// Float32At reads the float32 at off.
func Float32At(b []byte, off int) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
}

// Uint32At reads the uint32 at off.
func Uint32At(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}
