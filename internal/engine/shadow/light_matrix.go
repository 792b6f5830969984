// Package shadow fits the shadow-pass camera to a scene and answers
// visibility queries against the depth buffer it produces.
package shadow

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// View is an orthographic camera looking along a directional light.
type View struct {
	Eye, Center, Up math.Vec3
	// Radius is the half-diagonal of the fitted bounds. The view scales
	// space by 1/Radius so the whole box lands inside NDC.
	Radius float32
}

// LightView places the light camera for a scene bounded by bounds.
// lightDir points towards the light.
func LightView(lightDir math.Vec3, bounds r3.Box) View {
	dir := lightDir.Normalize()
	c := r3.Scale(0.5, r3.Add(bounds.Min, bounds.Max))
	center := math.Vec3{X: float32(c.X), Y: float32(c.Y), Z: float32(c.Z)}
	radius := float32(r3.Norm(r3.Sub(bounds.Max, bounds.Min)) / 2)
	if radius == 0 {
		radius = 1
	}

	// Avoid an up vector parallel to the view direction
	up := math.Vec3{Y: 1}
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}

	return View{
		Eye:    center.Add(dir.Scale(radius * 2)),
		Center: center,
		Up:     up,
		Radius: radius,
	}
}

// Apply sets tr's model-view and an orthographic projection for the view.
// The viewport is left to the caller.
func (v View) Apply(tr *camera.Transform) {
	tr.LookAt(v.Eye, v.Center, v.Up)
	s := 1 / v.Radius
	tr.ModelView = math.Scale(s, s, s).Mul(tr.ModelView)
	tr.SetProjection(0)
}
