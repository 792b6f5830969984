package shadow

import (
	"testing"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/tinyrender/internal/engine/camera"
	"github.com/Faultbox/tinyrender/internal/engine/raster"
	"github.com/Faultbox/tinyrender/pkg/math"
)

var cube = r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}

func near(a, b math.Vec3, tol float32) bool {
	return a.Sub(b).Length() < tol
}

func TestLightView(t *testing.T) {
	tests := []struct {
		name   string
		dir    math.Vec3
		wantUp math.Vec3
	}{
		{"oblique", math.Vec3{X: 1, Y: 1}, math.Vec3{Y: 1}},
		{"overhead", math.Vec3{Y: 3}, math.Vec3{Z: 1}},
		{"below", math.Vec3{Y: -1}, math.Vec3{Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := LightView(tt.dir, cube)
			if v.Up != tt.wantUp {
				t.Errorf("Up = %v, want %v", v.Up, tt.wantUp)
			}
			if v.Center != (math.Vec3{}) {
				t.Errorf("Center = %v", v.Center)
			}
			if math32.Abs(v.Radius-math32.Sqrt(3)) > 1e-5 {
				t.Errorf("Radius = %v, want sqrt(3)", v.Radius)
			}
			want := tt.dir.Normalize().Scale(2 * v.Radius)
			if !near(v.Eye, want, 1e-4) {
				t.Errorf("Eye = %v, want %v", v.Eye, want)
			}
		})
	}
}

func TestViewApplyFitsBounds(t *testing.T) {
	v := LightView(math.Vec3{X: 1, Y: 1}, cube)
	tr := camera.NewTransform()
	v.Apply(&tr)

	if tr.Projection != math.Identity4() {
		t.Errorf("projection is not orthographic: %v", tr.Projection)
	}
	if got := tr.Clip(math.Vec3{}); !near(got.Proj3(), math.Vec3{}, 1e-5) || got[3] != 1 {
		t.Errorf("center maps to %v", got)
	}
	// Every corner of the box stays inside NDC.
	for _, c := range []math.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	} {
		p := tr.Clip(c)
		for i := 0; i < 3; i++ {
			if math32.Abs(p[i]) > 1+1e-5 {
				t.Errorf("corner %v maps outside NDC: %v", c, p)
			}
		}
	}
	// The point towards the light is nearest: NDC z = 1.
	towards := math.Vec3{X: 1, Y: 1}.Normalize().Scale(v.Radius)
	if z := tr.Clip(towards)[2]; math32.Abs(z-1) > 1e-5 {
		t.Errorf("light-facing extreme z = %v, want 1", z)
	}
}

func TestVisibility(t *testing.T) {
	tr := camera.NewTransform()
	tr.SetViewport(0, 0, 10, 10)

	depth := raster.NewDepthBuffer(10, 10)
	depth.Set(5, 5, 1500)
	m := NewMap(depth, tr, tr)

	if !m.Matrix().ApproxEqual(math.Identity4(), 1e-3) {
		t.Fatalf("same transforms give matrix %v", m.Matrix())
	}

	tests := []struct {
		name string
		p    math.Vec3
		want float32
	}{
		{"occluded", math.Vec3{X: 5.5, Y: 5.5, Z: 1000}, DefaultAmbient},
		{"within bias", math.Vec3{X: 5.5, Y: 5.5, Z: 1480}, 1},
		{"in front", math.Vec3{X: 5.5, Y: 5.5, Z: 1600}, 1},
		{"empty texel", math.Vec3{X: 0.5, Y: 0.5, Z: 0}, 1},
		{"left of map", math.Vec3{X: -0.5, Y: 5.5, Z: 0}, 1},
		{"beyond map", math.Vec3{X: 20, Y: 5.5, Z: 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Visibility(tt.p); got != tt.want {
				t.Errorf("Visibility(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	m.Bias = 0
	if got := m.Visibility(math.Vec3{X: 5.5, Y: 5.5, Z: 1480}); got != DefaultAmbient {
		t.Errorf("without bias = %v, want ambient", got)
	}
}
