// Package shader defines the two-stage shading contract used by the
// rasterizer and the shaders the renderer ships with.
package shader

import (
	"image/color"

	"github.com/Faultbox/tinyrender/pkg/math"
)

// Shader is a vertex/fragment program pair.
//
// Vertex returns the clip-space position of vertex nth (0..2) of face and
// records that vertex's varyings in the shader's own per-triangle storage.
// Fragment receives perspective-correct barycentric weights and returns the
// pixel colour, or discard=true to leave the pixel and depth untouched.
// Fragment may be called concurrently for pixels of the same triangle, so it
// must only read the varyings.
type Shader interface {
	Vertex(face, nth int) math.Vec4
	Fragment(bar math.Vec3) (c color.RGBA, discard bool)
}

// Mesh is the read-only geometry and material accessor shaders consume.
type Mesh interface {
	NumVertices() int
	NumFaces() int
	Vertex(face, nth int) math.Vec3
	Normal(face, nth int) math.Vec3
	UV(face, nth int) math.Vec2
	Diffuse(uv math.Vec2) color.RGBA
	Specular(uv math.Vec2) float32
	// NormalMap returns the sampled normal, or false when the mesh has no
	// normal map.
	NormalMap(uv math.Vec2) (math.Vec3, bool)
}

// Occluder answers shadow queries for a screen-space point of the current
// pass. It returns a light factor in [0, 1].
type Occluder interface {
	Visibility(p math.Vec3) float32
}

// Varying holds the per-triangle attributes written by Vertex and
// interpolated by Fragment. Column nth belongs to vertex nth.
type Varying struct {
	UV        math.Mat2x3 // Texture coordinates
	Normal    math.Mat3   // View-space normals
	Clip      math.Mat4x3 // Clip-space positions, before the divide
	Intensity math.Vec3   // Per-vertex light intensity
}

// clamp255 converts a float channel to a byte, saturating at both ends.
func clamp255(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
