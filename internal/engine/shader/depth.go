package shader

import (
	"image/color"

	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// Depth renders screen-space depth as a grey level. It is the shader of the
// shadow pass: its depth buffer is what the lit pass queries.
type Depth struct {
	mesh    Mesh
	tr      camera.Transform
	pm      math.Mat4 // Projection * ModelView
	varying Varying
}

// NewDepth returns a depth shader bound to mesh and the pass transform.
func NewDepth(mesh Mesh, tr camera.Transform) *Depth {
	return &Depth{
		mesh: mesh,
		tr:   tr,
		pm:   tr.Projection.Mul(tr.ModelView),
	}
}

// Vertex implements Shader.
func (s *Depth) Vertex(face, nth int) math.Vec4 {
	clip := s.pm.MulVec4(s.mesh.Vertex(face, nth).Embed4(1))
	s.varying.Clip.SetCol(nth, clip)
	return clip
}

// Fragment implements Shader.
func (s *Depth) Fragment(bar math.Vec3) (color.RGBA, bool) {
	p := s.tr.ToScreen(s.varying.Clip.MulVec3(bar))
	v := clamp255(255 * p.Z / camera.Depth)
	return color.RGBA{R: v, G: v, B: v, A: 255}, false
}
