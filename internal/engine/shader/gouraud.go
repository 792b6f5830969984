package shader

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// Gouraud interpolates per-vertex Lambert intensity across the triangle.
// With Bands > 0 the intensity is quantised into that many steps (toon
// shading).
type Gouraud struct {
	Color color.RGBA
	Bands int

	mesh    Mesh
	pm      math.Mat4
	light   math.Vec3 // World-space, normalized
	varying Varying
}

// NewGouraud returns a Gouraud shader lighting mesh from lightDir.
func NewGouraud(mesh Mesh, tr camera.Transform, lightDir math.Vec3, c color.RGBA) *Gouraud {
	return &Gouraud{
		Color: c,
		mesh:  mesh,
		pm:    tr.Projection.Mul(tr.ModelView),
		light: lightDir.Normalize(),
	}
}

// Vertex implements Shader.
func (s *Gouraud) Vertex(face, nth int) math.Vec4 {
	n := s.mesh.Normal(face, nth).Normalize()
	s.varying.Intensity.Set(nth, math32.Max(0, n.Dot(s.light)))
	return s.pm.MulVec4(s.mesh.Vertex(face, nth).Embed4(1))
}

// Fragment implements Shader.
func (s *Gouraud) Fragment(bar math.Vec3) (color.RGBA, bool) {
	in := s.varying.Intensity.Dot(bar)
	if s.Bands > 0 {
		b := float32(s.Bands)
		in = math32.Min(1, math32.Ceil(in*b)/b)
	}
	return color.RGBA{
		R: clamp255(float32(s.Color.R) * in),
		G: clamp255(float32(s.Color.G) * in),
		B: clamp255(float32(s.Color.B) * in),
		A: 255,
	}, false
}
