package raster

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tinyrender/pkg/math"
)

// degenerateArea is the twice-signed-area below which a triangle is treated
// as degenerate.
const degenerateArea = 1e-2

// Barycentric returns the weights of p with respect to triangle (a, b, c).
// Points on an edge get a zero weight and count as inside. Degenerate
// triangles yield (-1, 1, 1) so that every pixel is rejected.
func Barycentric(a, b, c, p math.Vec2) math.Vec3 {
	u := math.Vec3{X: c.X - a.X, Y: b.X - a.X, Z: a.X - p.X}.Cross(
		math.Vec3{X: c.Y - a.Y, Y: b.Y - a.Y, Z: a.Y - p.Y})
	if math32.Abs(u.Z) < degenerateArea {
		return math.Vec3{X: -1, Y: 1, Z: 1}
	}
	return math.Vec3{
		X: 1 - (u.X+u.Y)/u.Z,
		Y: u.Y / u.Z,
		Z: u.X / u.Z,
	}
}

// PerspectiveCorrect converts screen-space weights into clip-space weights
// by dividing each by its vertex w and renormalizing to sum to 1.
func PerspectiveCorrect(bc, w math.Vec3) math.Vec3 {
	c := math.Vec3{X: bc.X / w.X, Y: bc.Y / w.Y, Z: bc.Z / w.Z}
	return c.Div(c.X + c.Y + c.Z)
}

func outside(bc math.Vec3) bool {
	return bc.X < 0 || bc.Y < 0 || bc.Z < 0
}
