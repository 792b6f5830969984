// Package camera builds the per-pass view transforms: model-view, projection
// and viewport.
package camera

import (
	"github.com/Faultbox/tinyrender/pkg/math"
)

// Depth is the depth range the viewport maps NDC z in [-1, 1] onto.
// Screen-space depth lies in [0, Depth]; larger is nearer the eye.
const Depth = 2000

// Transform is the render-pass context: the three matrices every vertex
// stage reads. Set it up fully before a pass and do not mutate it while the
// pass runs; shaders and the rasterizer hold copies.
type Transform struct {
	ModelView  math.Mat4
	Projection math.Mat4
	Viewport   math.Mat4
}

// NewTransform returns a transform with all three matrices set to identity.
func NewTransform() Transform {
	return Transform{
		ModelView:  math.Identity4(),
		Projection: math.Identity4(),
		Viewport:   math.Identity4(),
	}
}

// LookAt places the camera at eye looking at center.
//
// Forward is z = normalize(eye - center), so the camera looks down -z.
// The rotation rows are (x, y, z) and the translation cancels center: the
// target lands on the view-space origin and the eye at (0, 0, |eye-center|).
// SetProjection's coefficient is defined against this convention.
func (t *Transform) LookAt(eye, center, up math.Vec3) {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x).Normalize()

	rot := math.Identity4()
	rot[0] = x.Embed4(0)
	rot[1] = y.Embed4(0)
	rot[2] = z.Embed4(0)

	t.ModelView = rot.Mul(math.Translate(-center.X, -center.Y, -center.Z))
}

// SetProjection sets a projection whose single coefficient couples w to
// view-space z: w' = 1 + coeff*z. Use ProjectionCoeff for a perspective
// camera and 0 for an orthographic one.
func (t *Transform) SetProjection(coeff float32) {
	t.Projection = math.Identity4()
	t.Projection[3][2] = coeff
}

// ProjectionCoeff returns -1/|eye-center|, the perspective coefficient for a
// camera set up with LookAt(eye, center, ...).
func ProjectionCoeff(eye, center math.Vec3) float32 {
	return -1 / eye.Distance(center)
}

// SetViewport maps NDC [-1,1]^2 onto the rectangle (x, y, w, h) and NDC z
// onto [0, Depth].
func (t *Transform) SetViewport(x, y, w, h int) {
	t.Viewport = math.Identity4()
	t.Viewport[0][3] = float32(x) + float32(w)/2
	t.Viewport[1][3] = float32(y) + float32(h)/2
	t.Viewport[2][3] = Depth / 2
	t.Viewport[0][0] = float32(w) / 2
	t.Viewport[1][1] = float32(h) / 2
	t.Viewport[2][2] = Depth / 2
}

// Clip transforms an object-space point into clip space
// (Projection * ModelView * p).
func (t Transform) Clip(p math.Vec3) math.Vec4 {
	return t.Projection.Mul(t.ModelView).MulVec4(p.Embed4(1))
}

// Screen returns Viewport * Projection * ModelView, the full object-to-screen
// transform before the perspective divide.
func (t Transform) Screen() math.Mat4 {
	return t.Viewport.Mul(t.Projection).Mul(t.ModelView)
}

// ToScreen applies the viewport to a clip-space vertex and performs the
// perspective divide.
func (t Transform) ToScreen(clip math.Vec4) math.Vec3 {
	return t.Viewport.MulVec4(clip).Homogenize().Proj3()
}
