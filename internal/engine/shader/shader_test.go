package shader

import (
	"image/color"
	"testing"

	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/pkg/math"
)

// triMesh is a single-triangle mesh with uniform material.
type triMesh struct {
	verts   [3]math.Vec3
	normals [3]math.Vec3
	diffuse color.RGBA
	spec    float32
}

func (m *triMesh) NumVertices() int                      { return 3 }
func (m *triMesh) NumFaces() int                         { return 1 }
func (m *triMesh) Vertex(_, nth int) math.Vec3           { return m.verts[nth] }
func (m *triMesh) Normal(_, nth int) math.Vec3           { return m.normals[nth] }
func (m *triMesh) UV(_, nth int) math.Vec2               { return math.Vec2{X: float32(nth) / 2} }
func (m *triMesh) Diffuse(math.Vec2) color.RGBA          { return m.diffuse }
func (m *triMesh) Specular(math.Vec2) float32            { return m.spec }
func (m *triMesh) NormalMap(math.Vec2) (math.Vec3, bool) { return math.Vec3{}, false }

func newTriMesh(z float32) *triMesh {
	up := math.Vec3{Z: 1}
	return &triMesh{
		verts:   [3]math.Vec3{{X: -1, Y: -1, Z: z}, {X: 1, Y: -1, Z: z}, {X: 0, Y: 1, Z: z}},
		normals: [3]math.Vec3{up, up, up},
		diffuse: color.RGBA{R: 200, G: 200, B: 200, A: 255},
	}
}

func testTransform() camera.Transform {
	tr := camera.NewTransform()
	tr.SetViewport(0, 0, 100, 100)
	return tr
}

type constOccluder float32

func (o constOccluder) Visibility(math.Vec3) float32 { return float32(o) }

var third = math.Vec3{X: 1.0 / 3, Y: 1.0 / 3, Z: 1.0 / 3}

// closeByte allows one level of rounding slack.
func closeByte(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -1 && d <= 1
}

func runVertices(s Shader, faces int) {
	for f := 0; f < faces; f++ {
		for nth := 0; nth < 3; nth++ {
			s.Vertex(f, nth)
		}
	}
}

func TestDepthGreyLevel(t *testing.T) {
	tests := []struct {
		z    float32
		want uint8
	}{
		{-1, 0},
		{0, 127},
		{1, 255},
	}

	for _, tt := range tests {
		s := NewDepth(newTriMesh(tt.z), testTransform())
		runVertices(s, 1)
		c, discard := s.Fragment(third)
		if discard {
			t.Fatalf("z=%v: unexpected discard", tt.z)
		}
		if c.R != tt.want || c.G != tt.want || c.B != tt.want {
			t.Errorf("z=%v: got %v, want grey %d", tt.z, c, tt.want)
		}
	}
}

func TestDepthVertexReturnsClip(t *testing.T) {
	tr := testTransform()
	tr.SetProjection(-0.5)
	mesh := newTriMesh(1)
	s := NewDepth(mesh, tr)

	got := s.Vertex(0, 2)
	want := tr.Clip(mesh.verts[2])
	if got != want {
		t.Errorf("Vertex = %v, want %v", got, want)
	}
	if got[3] != 0.5 {
		t.Errorf("w = %v, want 0.5", got[3])
	}
}

func TestShaderInstancesIndependent(t *testing.T) {
	near := NewDepth(newTriMesh(1), testTransform())
	far := NewDepth(newTriMesh(-1), testTransform())

	runVertices(near, 1)
	runVertices(far, 1)

	if c, _ := near.Fragment(third); c.R != 255 {
		t.Errorf("near shader saw foreign varyings: %v", c)
	}
	if c, _ := far.Fragment(third); c.R != 0 {
		t.Errorf("far shader saw foreign varyings: %v", c)
	}
}

func TestPhong(t *testing.T) {
	tests := []struct {
		name   string
		light  math.Vec3
		shadow Occluder
		want   uint8
	}{
		{"facing light saturates", math.Vec3{Z: 1}, nil, 255},
		{"back lit is ambient", math.Vec3{Z: -1}, nil, 20},
		{"shadowed", math.Vec3{Z: 1}, constOccluder(0.3), 116},
		{"fully occluded", math.Vec3{Z: 1}, constOccluder(0), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPhong(newTriMesh(0), testTransform(), tt.light, tt.shadow)
			runVertices(s, 1)
			c, discard := s.Fragment(third)
			if discard {
				t.Fatal("unexpected discard")
			}
			if !closeByte(c.R, tt.want) || c.A != 255 {
				t.Errorf("got %v, want R=%d", c, tt.want)
			}
		})
	}
}

func TestPhongSpecular(t *testing.T) {
	mesh := newTriMesh(0)
	mesh.diffuse = color.RGBA{R: 50, G: 50, B: 50, A: 255}

	plain := NewPhong(mesh, testTransform(), math.Vec3{Z: 1}, nil)
	runVertices(plain, 1)
	base, _ := plain.Fragment(third)

	mesh.spec = 8
	shiny := NewPhong(mesh, testTransform(), math.Vec3{Z: 1}, nil)
	runVertices(shiny, 1)
	hi, _ := shiny.Fragment(third)

	// 20 + 50*1.6 = 100 without, 20 + 50*(1.6+0.6) = 130 with the highlight.
	if !closeByte(base.R, 100) {
		t.Errorf("diffuse only = %d, want 100", base.R)
	}
	if !closeByte(hi.R, 130) {
		t.Errorf("with specular = %d, want 130", hi.R)
	}
}

func TestGouraud(t *testing.T) {
	mesh := newTriMesh(0)
	mesh.normals = [3]math.Vec3{{Z: 1}, {Z: -1}, {Z: -1}}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	s := NewGouraud(mesh, testTransform(), math.Vec3{Z: 1}, white)
	runVertices(s, 1)

	tests := []struct {
		bands int
		bar   math.Vec3
		want  uint8
	}{
		{0, math.Vec3{X: 1}, 255},
		{0, math.Vec3{Y: 1}, 0},
		{0, math.Vec3{X: 0.5, Y: 0.5}, 127},
		{4, math.Vec3{X: 0.3, Y: 0.7}, 127},
		{4, math.Vec3{X: 0.8, Y: 0.2}, 255},
	}

	for _, tt := range tests {
		s.Bands = tt.bands
		c, _ := s.Fragment(tt.bar)
		if !closeByte(c.R, tt.want) {
			t.Errorf("bands=%d bar=%v: got %d, want %d", tt.bands, tt.bar, c.R, tt.want)
		}
	}
}

func TestFlat(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	s := NewFlat(newTriMesh(0), testTransform(), red)
	runVertices(s, 1)
	if c, discard := s.Fragment(third); c != red || discard {
		t.Errorf("got %v (discard=%v), want %v", c, discard, red)
	}
}
