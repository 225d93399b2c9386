// Package noise implements the 2D simplex noise and fractal layering that
// drive terrain height synthesis.
//
// Simplex2 follows the shader-space formulation: a skewed triangular
// lattice with a closed-form permutation polynomial over a 289-period table
// and a quartic falloff kernel. All arithmetic stays in float32 so CPU
// results line up with GPU-produced heightfields of the same family.
package noise

import (
	"github.com/veldtlabs/veldt/pkg/math"
)

// Skew/unskew constants for the 2D simplex grid.
const (
	skew    = 0.366025403784439  // (sqrt(3)-1)/2
	unskew  = 0.211324865405187  // (3-sqrt(3))/6
	unskew2 = -0.577350269189626 // -1 + 2*unskew
	invPerm = 0.024390243902439  // 1/41, gradient selector
)

// Simplex2 returns 2D simplex noise for v, approximately in [-1, 1].
// The field is deterministic and repeats with period 289 in lattice space.
func Simplex2(v math.Vec2) float32 {
	// Skew the input to find the containing lattice cell.
	s := (v.X + v.Y) * skew
	iX := math.Floor(v.X + s)
	iY := math.Floor(v.Y + s)

	// First corner in unskewed space.
	t := (iX + iY) * unskew
	x0 := v.X - iX + t
	y0 := v.Y - iY + t

	// Middle corner: lower triangle steps in x, upper in y.
	var i1x, i1y float32
	if x0 > y0 {
		i1x = 1
	} else {
		i1y = 1
	}

	x1 := x0 + unskew - i1x
	y1 := y0 + unskew - i1y
	x2 := x0 + unskew2
	y2 := y0 + unskew2

	iX = mod289(iX)
	iY = mod289(iY)

	p0 := permute(permute(iY) + iX)
	p1 := permute(permute(iY+i1y) + iX + i1x)
	p2 := permute(permute(iY+1) + iX + 1)

	return 130 * (corner(p0, x0, y0) + corner(p1, x1, y1) + corner(p2, x2, y2))
}

// corner computes one corner's contribution: a quartic falloff on the
// squared distance times the hashed gradient projected on the offset.
func corner(perm, dx, dy float32) float32 {
	m := 0.5 - dx*dx - dy*dy
	if m <= 0 {
		return 0
	}
	m *= m
	m *= m

	g := 2*fract(perm*invPerm) - 1
	h := math.Abs(g) - 0.5
	a0 := g - math.Floor(g+0.5)

	// Taylor-style gradient normalization keeps output near unit amplitude.
	m *= 1.79284291400159 - 0.85373472095314*(a0*a0+h*h)
	return m * (a0*dx + h*dy)
}

// permute hashes a lattice coordinate with the 289-period polynomial.
func permute(x float32) float32 {
	return mod289((x*34 + 1) * x)
}

func mod289(x float32) float32 {
	return x - math.Floor(x/289)*289
}

func fract(x float32) float32 {
	return x - math.Floor(x)
}
