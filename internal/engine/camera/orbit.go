package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tinyrender/pkg/math"
)

// Orbit describes an eye position on a sphere around a center point.
type Orbit struct {
	Center   math.Vec3
	Distance float32
	Pitch    float32 // Elevation above the XZ plane, radians
	Yaw      float32 // Rotation around Y, radians; 0 looks down -Z
}

// Eye returns the camera position in world space.
func (o Orbit) Eye() math.Vec3 {
	horiz := o.Distance * math32.Cos(o.Pitch)
	return math.Vec3{
		X: o.Center.X + horiz*math32.Sin(o.Yaw),
		Y: o.Center.Y + o.Distance*math32.Sin(o.Pitch),
		Z: o.Center.Z + horiz*math32.Cos(o.Yaw),
	}
}

// Apply points t at the orbit center from the orbit eye and sets a matching
// perspective projection.
func (o Orbit) Apply(t *Transform, up math.Vec3) {
	eye := o.Eye()
	t.LookAt(eye, o.Center, up)
	t.SetProjection(ProjectionCoeff(eye, o.Center))
}
