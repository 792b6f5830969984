// Package model loads Wavefront OBJ meshes with their texture maps and
// exposes them to shaders face by face.
package model

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/tinyrender/internal/engine/shader"
	"github.com/Faultbox/tinyrender/internal/engine/texture"
	"github.com/Faultbox/tinyrender/pkg/math"
)

var _ shader.Mesh = (*Model)(nil)

// corner indexes the position, texture coordinate and normal of one face
// vertex. A negative index means the attribute is absent.
type corner struct {
	v, t, n int
}

// Model is a triangulated mesh. It implements shader.Mesh.
type Model struct {
	Name string

	verts []math.Vec3
	uvs   []math.Vec2
	norms []math.Vec3
	faces [][3]corner

	diffuse  *texture.Map
	normal   *texture.Map
	specular *texture.Map
}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// NumVertices returns the number of distinct positions.
func (m *Model) NumVertices() int { return len(m.verts) }

// NumFaces returns the number of triangles.
func (m *Model) NumFaces() int { return len(m.faces) }

// Vertex returns the position of vertex nth of face.
func (m *Model) Vertex(face, nth int) math.Vec3 {
	return m.verts[m.faces[face][nth].v]
}

// Normal returns the normal of vertex nth of face.
func (m *Model) Normal(face, nth int) math.Vec3 {
	return m.norms[m.faces[face][nth].n]
}

// UV returns the texture coordinate of vertex nth of face, or zero when the
// face has none.
func (m *Model) UV(face, nth int) math.Vec2 {
	t := m.faces[face][nth].t
	if t < 0 {
		return math.Vec2{}
	}
	return m.uvs[t]
}

// Diffuse samples the diffuse map. Without one the surface is white.
func (m *Model) Diffuse(uv math.Vec2) color.RGBA {
	if m.diffuse == nil {
		return white
	}
	return m.diffuse.At(uv)
}

// Specular returns the specular exponent at uv, 0 without a specular map.
func (m *Model) Specular(uv math.Vec2) float32 {
	if m.specular == nil {
		return 0
	}
	return float32(m.specular.At(uv).R)
}

// NormalMap decodes the normal stored at uv, mapping each channel from
// [0, 255] to [-1, 1].
func (m *Model) NormalMap(uv math.Vec2) (math.Vec3, bool) {
	if m.normal == nil {
		return math.Vec3{}, false
	}
	c := m.normal.At(uv)
	return math.Vec3{
		X: float32(c.R)/255*2 - 1,
		Y: float32(c.G)/255*2 - 1,
		Z: float32(c.B)/255*2 - 1,
	}, true
}

// SetDiffuse replaces the diffuse map. Nil restores the white fallback.
func (m *Model) SetDiffuse(t *texture.Map) { m.diffuse = t }

// SetNormalMap replaces the normal map. Nil falls back to vertex normals.
func (m *Model) SetNormalMap(t *texture.Map) { m.normal = t }

// SetSpecular replaces the specular map. Nil disables highlights.
func (m *Model) SetSpecular(t *texture.Map) { m.specular = t }

// Bounds returns the axis-aligned box around all positions.
func (m *Model) Bounds() r3.Box {
	if len(m.verts) == 0 {
		return r3.Box{}
	}
	first := vec(m.verts[0])
	b := r3.Box{Min: first, Max: first}
	for _, v := range m.verts[1:] {
		p := vec(v)
		b.Min = r3.Vec{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = r3.Vec{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}

// Normalize translates and uniformly scales the mesh so that its bounding
// box is centred on the origin and its longest side spans [-1, 1].
func (m *Model) Normalize() {
	b := m.Bounds()
	size := r3.Sub(b.Max, b.Min)
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		return
	}
	center := r3.Scale(0.5, r3.Add(b.Min, b.Max))
	s := float32(2 / extent)
	c := math.Vec3{X: float32(center.X), Y: float32(center.Y), Z: float32(center.Z)}
	for i, v := range m.verts {
		m.verts[i] = v.Sub(c).Scale(s)
	}
}

func vec(v math.Vec3) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
