package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/veldtlabs/veldt/internal/engine/terrain"
	"github.com/veldtlabs/veldt/pkg/math"
)

// HeightmapImage samples the heightfield over a world-space rect at one
// sample per unit and returns a grayscale image. Heights map linearly from
// [minH, maxH] to [0, 255]; fractal overshoot clamps to the range ends.
func HeightmapImage(rect image.Rectangle, minH, maxH float32) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))

	span := maxH - minH
	for py := 0; py < rect.Dy(); py++ {
		for px := 0; px < rect.Dx(); px++ {
			t := float32(0.5)
			if span != 0 {
				h := terrain.HeightAt(float32(rect.Min.X+px), float32(rect.Min.Y+py), minH, maxH)
				t = math.Clamp((h-minH)/span, 0, 1)
			}
			img.SetGray(px, py, color.Gray{Y: uint8(t*255 + 0.5)})
		}
	}
	return img
}

// SaveHeightmap renders the heightfield over rect and writes it to path
// as a PNG.
func SaveHeightmap(path string, rect image.Rectangle, minH, maxH float32) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating heightmap file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, HeightmapImage(rect, minH, maxH)); err != nil {
		return fmt.Errorf("encoding heightmap: %w", err)
	}
	return nil
}
