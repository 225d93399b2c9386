package noise

import (
	"github.com/veldtlabs/veldt/pkg/math"
)

// FBM layering parameters. The rotation between octaves decorrelates
// lattice artifacts; the shift moves each octave off the origin.
const (
	fbmOctaves = 5
	fbmScale   = 0.01
	fbmShift   = 100
	fbmCos     = 0.8775825618903728 // cos(0.5)
	fbmSin     = 0.479425538604203  // sin(0.5)
)

// FBM returns 5-octave fractal noise for world-space p, nominally in
// [-1, 1]. Octave gain is 0.5 and lacunarity 2, so the geometric sum can
// overshoot slightly; callers must tolerate values just outside the nominal
// range. No clamping is applied.
func FBM(p math.Vec2) float32 {
	x := p.Scale(fbmScale)
	a := float32(0.5)
	var v float32

	for i := 0; i < fbmOctaves; i++ {
		v += a * Simplex2(x)
		x = math.Vec2{
			X: fbmCos*x.X - fbmSin*x.Y,
			Y: fbmSin*x.X + fbmCos*x.Y,
		}.Scale(2).Add(math.Vec2{X: fbmShift, Y: fbmShift})
		a *= 0.5
	}

	return v
}
