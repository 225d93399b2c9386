// Package export writes generated terrain to interchange formats so chunks
// can be inspected in external tools.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/veldtlabs/veldt/internal/engine/terrain"
)

// WriteOBJ writes meshes as a Wavefront OBJ stream. Vertex and normal
// indices are 1-based and run across all meshes, so several chunks can
// share one file and load as separate objects.
func WriteOBJ(w io.Writer, meshes ...*terrain.Mesh) error {
	bw := bufio.NewWriter(w)

	offset := 1
	for _, mesh := range meshes {
		fmt.Fprintf(bw, "o chunk_%s\n", mesh.Desc.Key())
		for _, v := range mesh.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.Position.X, v.Position.Y, v.Position.Z)
		}
		for _, v := range mesh.Vertices {
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
		}
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			a := int(mesh.Indices[i]) + offset
			b := int(mesh.Indices[i+1]) + offset
			c := int(mesh.Indices[i+2]) + offset
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
		offset += len(mesh.Vertices)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing obj: %w", err)
	}
	return nil
}

// SaveOBJ writes meshes to path as a Wavefront OBJ file.
func SaveOBJ(path string, meshes ...*terrain.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating obj file: %w", err)
	}
	defer file.Close()

	return WriteOBJ(file, meshes...)
}
