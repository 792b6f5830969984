package shader

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// Phong is the lit-pass shader: textured diffuse, normal-mapped Phong
// lighting with a specular map, and an optional shadow lookup.
type Phong struct {
	// Ambient is added to every channel before clamping.
	Ambient float32
	// Kd and Ks weight the diffuse and specular terms.
	Kd, Ks float32

	mesh    Mesh
	tr      camera.Transform
	pm      math.Mat4 // Projection * ModelView
	mit     math.Mat4 // (Projection * ModelView)^-T, for normals
	light   math.Vec3 // Light direction in view space
	shadow  Occluder
	varying Varying
}

// NewPhong returns a lit shader for mesh. lightDir points towards the light in
// world space. shadow may be nil to disable shadowing.
func NewPhong(mesh Mesh, tr camera.Transform, lightDir math.Vec3, shadow Occluder) *Phong {
	pm := tr.Projection.Mul(tr.ModelView)
	return &Phong{
		Ambient: 20,
		Kd:      1.6,
		Ks:      0.6,
		mesh:    mesh,
		tr:      tr,
		pm:      pm,
		mit:     pm.InvertTranspose(),
		light:   tr.ModelView.MulVec4(lightDir.Embed4(0)).Proj3().Normalize(),
		shadow:  shadow,
	}
}

// Vertex implements Shader.
func (s *Phong) Vertex(face, nth int) math.Vec4 {
	s.varying.UV.SetCol(nth, s.mesh.UV(face, nth))
	n := s.mit.MulVec4(s.mesh.Normal(face, nth).Embed4(0)).Proj3()
	s.varying.Normal.SetCol(nth, n.Normalize())

	clip := s.pm.MulVec4(s.mesh.Vertex(face, nth).Embed4(1))
	s.varying.Clip.SetCol(nth, clip)
	return clip
}

// Fragment implements Shader.
func (s *Phong) Fragment(bar math.Vec3) (color.RGBA, bool) {
	uv := s.varying.UV.MulVec3(bar)

	var n math.Vec3
	if nm, ok := s.mesh.NormalMap(uv); ok {
		n = s.mit.MulVec4(nm.Embed4(0)).Proj3().Normalize()
	} else {
		n = s.varying.Normal.MulVec3(bar).Normalize()
	}

	l := s.light
	diff := math32.Max(0, n.Dot(l))

	var spec float32
	if exp := s.mesh.Specular(uv); exp > 0 {
		r := n.Scale(2 * n.Dot(l)).Sub(l).Normalize()
		spec = math32.Pow(math32.Max(r.Z, 0), exp)
	}

	lit := float32(1)
	if s.shadow != nil {
		lit = s.shadow.Visibility(s.tr.ToScreen(s.varying.Clip.MulVec3(bar)))
	}

	c := s.mesh.Diffuse(uv)
	k := lit * (s.Kd*diff + s.Ks*spec)
	return color.RGBA{
		R: clamp255(s.Ambient + float32(c.R)*k),
		G: clamp255(s.Ambient + float32(c.G)*k),
		B: clamp255(s.Ambient + float32(c.B)*k),
		A: 255,
	}, false
}
