package shadow

import (
	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/internal/engine/raster"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// Default shadow parameters, in screen depth units and light factor.
const (
	DefaultBias    = 43.34
	DefaultAmbient = 0.3
)

// Map is the result of a shadow pass ready for lookups from the lit pass.
type Map struct {
	// Bias is added to the receiver depth before comparing, against acne.
	Bias float32
	// Ambient is the light factor returned for occluded points.
	Ambient float32

	depth *raster.DepthBuffer
	m     math.Mat4 // Lit-pass screen space to shadow screen space
}

// NewMap wraps the depth buffer rendered with the light transform. lit is
// the transform of the pass that will query the map.
func NewMap(depth *raster.DepthBuffer, light, lit camera.Transform) *Map {
	return &Map{
		Bias:    DefaultBias,
		Ambient: DefaultAmbient,
		depth:   depth,
		m:       light.Screen().Mul(lit.Screen().Invert()),
	}
}

// Matrix returns the lit-screen to shadow-screen transform.
func (s *Map) Matrix() math.Mat4 { return s.m }

// Depth returns the shadow-pass depth buffer.
func (s *Map) Depth() *raster.DepthBuffer { return s.depth }

// Visibility returns the light factor for p, a lit-pass screen-space point
// after the perspective divide: 1 when the light reaches it and Ambient when
// something nearer the light covers it. Points projecting outside the shadow
// buffer are lit.
func (s *Map) Visibility(p math.Vec3) float32 {
	q := s.m.MulVec4(p.Embed4(1)).Homogenize()
	x, y := int(q[0]), int(q[1])
	if q[0] < 0 || q[1] < 0 || !s.depth.InBounds(x, y) {
		return 1
	}
	if s.depth.At(x, y) < q[2]+s.Bias {
		return 1
	}
	return s.Ambient
}
