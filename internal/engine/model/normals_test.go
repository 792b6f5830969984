package model

import (
	"strings"
	"testing"

	"github.com/Faultbox/tinyrender/pkg/math"
)

func TestDerivedNormals(t *testing.T) {
	// Two faces folded along the y axis: one in the z=0 plane facing +z,
	// one in the x=0 plane facing +x. The shared edge gets the average.
	src := `v 0 0 0
v 0 1 0
v 1 0 0
v 0 0 -1
f 1 3 2
f 1 4 2
`
	m, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if got := m.Normal(0, 1); !near(got, math.Vec3{Z: 1}) {
		t.Errorf("unshared vertex normal = %v, want +z", got)
	}
	if got := m.Normal(1, 1); !near(got, math.Vec3{X: 1}) {
		t.Errorf("unshared vertex normal = %v, want +x", got)
	}
	want := math.Vec3{X: 1, Z: 1}.Normalize()
	if got := m.Normal(0, 0); !near(got, want) {
		t.Errorf("shared vertex normal = %v, want %v", got, want)
	}
}

func TestExplicitNormalsKept(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 1 0
f 1//1 2 3
`
	m, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Normal(0, 0); got != (math.Vec3{Y: 1}) {
		t.Errorf("explicit normal replaced: %v", got)
	}
	if got := m.Normal(0, 1); !near(got, math.Vec3{Z: 1}) {
		t.Errorf("derived normal = %v, want +z", got)
	}
}
