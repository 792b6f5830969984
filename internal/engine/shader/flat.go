package shader

import (
	"image/color"

	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// Flat fills every covered pixel with one colour.
type Flat struct {
	Color color.RGBA

	mesh Mesh
	pm   math.Mat4
}

// NewFlat returns a constant-colour shader for mesh.
func NewFlat(mesh Mesh, tr camera.Transform, c color.RGBA) *Flat {
	return &Flat{
		Color: c,
		mesh:  mesh,
		pm:    tr.Projection.Mul(tr.ModelView),
	}
}

// Vertex implements Shader.
func (s *Flat) Vertex(face, nth int) math.Vec4 {
	return s.pm.MulVec4(s.mesh.Vertex(face, nth).Embed4(1))
}

// Fragment implements Shader.
func (s *Flat) Fragment(math.Vec3) (color.RGBA, bool) {
	return s.Color, false
}
