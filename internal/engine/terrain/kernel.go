package terrain

import (
	"context"
	"fmt"

	"github.com/veldtlabs/veldt/internal/engine/compute"
	"github.com/veldtlabs/veldt/pkg/math"
)

// Generator produces chunk meshes by dispatching the generation kernel over
// a worker pool, one invocation per lattice vertex.
type Generator struct {
	dispatcher *compute.Dispatcher
}

// NewGenerator returns a generator running kernels on d.
func NewGenerator(d *compute.Dispatcher) *Generator {
	if d == nil {
		d = compute.NewDispatcher()
	}
	return &Generator{dispatcher: d}
}

// Generate builds the mesh for desc. Generation is deterministic: the same
// descriptor always yields bit-identical vertex and index buffers.
func (g *Generator) Generate(ctx context.Context, desc ChunkDesc) (*Mesh, error) {
	m := &Mesh{}
	if err := g.GenerateInto(ctx, desc, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GenerateInto regenerates m in place for desc, reusing its buffers when the
// descriptor's counts match. The caller must not read m's buffers until
// GenerateInto returns.
func (g *Generator) GenerateInto(ctx context.Context, desc ChunkDesc, m *Mesh) error {
	if desc.Width == 0 || desc.Height == 0 {
		return fmt.Errorf("generate chunk %s: zero cell count %dx%d", desc.Key(), desc.Width, desc.Height)
	}

	vertexCount := desc.VertexCount()
	indexCount := desc.IndexCount()
	if uint32(len(m.Vertices)) != vertexCount {
		m.Vertices = make([]Vertex, vertexCount)
	}
	if uint32(len(m.Indices)) != indexCount {
		m.Indices = make([]uint32, indexCount)
	}
	m.Desc = desc

	kernel := meshKernel(desc, m.Vertices, m.Indices)
	if err := g.dispatcher.Dispatch(ctx, vertexCount, kernel); err != nil {
		return fmt.Errorf("generate chunk %s: %w", desc.Key(), err)
	}
	return nil
}

// meshKernel returns the per-invocation kernel. Invocation i owns vertex i
// and, when i addresses a cell, the six indices starting at i*6. Ownership
// is disjoint across invocations, so the kernel runs without locks.
func meshKernel(desc ChunkDesc, vertices []Vertex, indices []uint32) compute.Kernel {
	w := desc.Width
	corner := desc.Corner()
	indexCount := desc.IndexCount()

	return func(i uint32) {
		p := math.Vec2{
			X: float32(i % (w + 1)),
			Y: float32(i / (w + 1)),
		}.Add(corner)
		vertices[i] = VertexAt(p, desc.MinHeight, desc.MaxHeight)

		if i*6 < indexCount {
			// Skip the seam vertex at the end of each lattice row.
			v00 := i + i/w
			v10 := v00 + 1
			v01 := v00 + w + 1
			v11 := v01 + 1

			base := i * 6
			indices[base+0] = v00
			indices[base+1] = v01
			indices[base+2] = v11
			indices[base+3] = v00
			indices[base+4] = v11
			indices[base+5] = v10
		}
	}
}
