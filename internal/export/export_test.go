package export

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/veldtlabs/veldt/internal/engine/compute"
	"github.com/veldtlabs/veldt/internal/engine/terrain"
)

func generateChunk(t *testing.T, desc terrain.ChunkDesc) *terrain.Mesh {
	t.Helper()
	mesh, err := terrain.NewGenerator(compute.NewDispatcher()).Generate(context.Background(), desc)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return mesh
}

func objLines(t *testing.T, meshes ...*terrain.Mesh) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, meshes...); err != nil {
		t.Fatalf("WriteOBJ() error = %v", err)
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func faceIndices(t *testing.T, line string) []int {
	t.Helper()
	fields := strings.Fields(line)
	if len(fields) != 4 {
		t.Fatalf("face line %q has %d fields, want 4", line, len(fields))
	}
	out := make([]int, 0, 3)
	for _, f := range fields[1:] {
		parts := strings.Split(f, "//")
		if len(parts) != 2 || parts[0] != parts[1] {
			t.Fatalf("face field %q is not of the form i//i", f)
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			t.Fatalf("face field %q: %v", f, err)
		}
		out = append(out, idx)
	}
	return out
}

func TestWriteOBJLineCounts(t *testing.T) {
	mesh := generateChunk(t, terrain.ChunkDesc{Width: 2, Height: 2, MinHeight: -5, MaxHeight: 5})
	lines := objLines(t, mesh)

	if got := countPrefix(lines, "o "); got != 1 {
		t.Errorf("object lines = %d, want 1", got)
	}
	if got := countPrefix(lines, "v "); got != 9 {
		t.Errorf("vertex lines = %d, want 9", got)
	}
	if got := countPrefix(lines, "vn "); got != 9 {
		t.Errorf("normal lines = %d, want 9", got)
	}
	if got := countPrefix(lines, "f "); got != 8 {
		t.Errorf("face lines = %d, want 8", got)
	}
	if lines[0] != "o chunk_0_0" {
		t.Errorf("first line = %q, want %q", lines[0], "o chunk_0_0")
	}
}

func TestWriteOBJFaceIndicesInRange(t *testing.T) {
	mesh := generateChunk(t, terrain.ChunkDesc{Width: 3, Height: 2, MinHeight: -5, MaxHeight: 5})
	lines := objLines(t, mesh)

	verts := len(mesh.Vertices)
	for _, line := range lines {
		if !strings.HasPrefix(line, "f ") {
			continue
		}
		for _, idx := range faceIndices(t, line) {
			if idx < 1 || idx > verts {
				t.Fatalf("face index %d out of range [1, %d] in %q", idx, verts, line)
			}
		}
	}
}

func TestWriteOBJOffsetsSecondMesh(t *testing.T) {
	a := generateChunk(t, terrain.ChunkDesc{Width: 2, Height: 2, MinHeight: -5, MaxHeight: 5})
	b := generateChunk(t, terrain.ChunkDesc{Width: 2, Height: 2, CornerX: 2, MinHeight: -5, MaxHeight: 5})
	lines := objLines(t, a, b)

	second := false
	for _, line := range lines {
		if strings.HasPrefix(line, "o ") {
			second = line == "o chunk_2_0"
			continue
		}
		if !strings.HasPrefix(line, "f ") {
			continue
		}
		for _, idx := range faceIndices(t, line) {
			if second && idx < 10 {
				t.Fatalf("second mesh face index %d overlaps first mesh vertices", idx)
			}
			if !second && idx > 9 {
				t.Fatalf("first mesh face index %d exceeds its 9 vertices", idx)
			}
		}
	}
	if !second {
		t.Fatal("second object header not found")
	}
}

func TestHeightmapImageFlatField(t *testing.T) {
	img := HeightmapImage(image.Rect(0, 0, 8, 8), 0, 0)

	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("bounds = %v, want 8x8", img.Bounds())
	}
	for i, p := range img.Pix {
		if p != 128 {
			t.Fatalf("pixel %d = %d, want mid gray 128", i, p)
		}
	}
}

func TestHeightmapImageDeterministic(t *testing.T) {
	rect := image.Rect(-32, -32, 32, 32)
	a := HeightmapImage(rect, -5, 5)
	b := HeightmapImage(rect, -5, 5)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same rect produced different images")
	}

	uniform := true
	for _, p := range a.Pix[1:] {
		if p != a.Pix[0] {
			uniform = false
			break
		}
	}
	if uniform {
		t.Error("heightfield dump is uniform, want visible relief")
	}
}

func TestSaveOBJ(t *testing.T) {
	mesh := generateChunk(t, terrain.ChunkDesc{Width: 2, Height: 2, MinHeight: -5, MaxHeight: 5})

	path := filepath.Join(t.TempDir(), "chunk.obj")
	if err := SaveOBJ(path, mesh); err != nil {
		t.Fatalf("SaveOBJ() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading obj: %v", err)
	}
	if !strings.HasPrefix(string(data), "o chunk_0_0\n") {
		t.Errorf("obj file starts with %q", string(data[:min(len(data), 16)]))
	}
}

func TestSaveHeightmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "height.png")
	if err := SaveHeightmap(path, image.Rect(0, 0, 16, 16), -5, 5); err != nil {
		t.Fatalf("SaveHeightmap() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening png: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("decoded bounds = %v, want 16x16", img.Bounds())
	}
}
