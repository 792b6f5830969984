package math

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

var testMat = Mat4{
	{2, 0, 1, 3},
	{1, 4, -2, 0},
	{0, 1, 3, -1},
	{5, 2, 0, 1},
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestIdentity(t *testing.T) {
	m := Identity4()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if m[i][j] != want {
				t.Errorf("Identity4()[%d][%d] = %v, want %v", i, j, m[i][j], want)
			}
		}
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	if got := m.Mul(Identity4()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
	if got := Identity4().Mul(m); got != m {
		t.Errorf("I * M = %v, want %v", got, m)
	}
}

func TestTranslateMulVec4(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.MulVec4(Vec3{1, 2, 3}.Embed4(1))
	want := Vec4{11, 22, 33, 1}
	if got != want {
		t.Errorf("Translate * point = %v, want %v", got, want)
	}

	// Directions ignore translation.
	dir := m.MulVec4(Vec3{1, 2, 3}.Embed4(0))
	if dir != (Vec4{1, 2, 3, 0}) {
		t.Errorf("Translate * direction = %v, want (1, 2, 3, 0)", dir)
	}
}

func TestRowsAndColumns(t *testing.T) {
	m := testMat
	if got := m.Col(2); got != (Vec4{1, -2, 3, 0}) {
		t.Errorf("Col(2) = %v", got)
	}
	m.SetCol(0, Vec4{9, 8, 7, 6})
	if m.Row(1) != (Vec4{8, 4, -2, 0}) {
		t.Errorf("SetCol(0) produced row 1 = %v", m.Row(1))
	}
	m.SetRow(3, Vec4{})
	if m.Col(3)[3] != 0 {
		t.Errorf("SetRow(3) left [3][3] = %v", m[3][3])
	}
}

func TestDeterminant(t *testing.T) {
	dense := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			dense.Set(i, j, float64(testMat[i][j]))
		}
	}
	want := float32(mat.Det(dense))
	if got := testMat.Det(); abs(got-want) > 1e-3 {
		t.Errorf("Det() = %v, want %v", got, want)
	}

	if got := (Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}).Det(); got != 24 {
		t.Errorf("Mat3.Det() = %v, want 24", got)
	}
	if got := Scale(2, 3, 4).Det(); got != 24 {
		t.Errorf("Scale(2,3,4).Det() = %v, want 24", got)
	}
}

func TestMinorAndCofactor(t *testing.T) {
	minor := testMat.Minor(0, 0)
	want := Mat3{{4, -2, 0}, {1, 3, -1}, {2, 0, 1}}
	if minor != want {
		t.Errorf("Minor(0, 0) = %v, want %v", minor, want)
	}
	if got := testMat.Cofactor(0, 0); got != minor.Det() {
		t.Errorf("Cofactor(0, 0) = %v, want %v", got, minor.Det())
	}
	if got := testMat.Cofactor(0, 1); got != -testMat.Minor(0, 1).Det() {
		t.Errorf("Cofactor(0, 1) = %v, want %v", got, -testMat.Minor(0, 1).Det())
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"general", testMat},
		{"translate", Translate(5, -3, 2)},
		{"scale", Scale(2, 0.5, 4)},
		{"composite", Translate(1, 2, 3).Mul(Scale(2, 2, 2)).Mul(testMat)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.m.Invert()
			if got := inv.Mul(tt.m); !got.ApproxEqual(Identity4(), 1e-4) {
				t.Errorf("Invert() * M = %v, want identity", got)
			}

			dense := mat.NewDense(4, 4, nil)
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					dense.Set(i, j, float64(tt.m[i][j]))
				}
			}
			var oracle mat.Dense
			if err := oracle.Inverse(dense); err != nil {
				t.Fatalf("gonum Inverse: %v", err)
			}
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					want := float32(oracle.At(i, j))
					if abs(inv[i][j]-want) > 1e-4 {
						t.Errorf("Invert()[%d][%d] = %v, gonum %v", i, j, inv[i][j], want)
					}
				}
			}
		})
	}
}

func TestInvertTranspose(t *testing.T) {
	got := testMat.InvertTranspose()
	want := testMat.Invert().Transpose()
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("InvertTranspose() = %v, want %v", got, want)
	}
}

func TestTransposeInvolution(t *testing.T) {
	if got := testMat.Transpose().Transpose(); got != testMat {
		t.Errorf("Transpose().Transpose() = %v, want %v", got, testMat)
	}
	if testMat.Transpose()[0][3] != testMat[3][0] {
		t.Error("Transpose() did not swap [0][3] and [3][0]")
	}
}

func TestMat3Invert(t *testing.T) {
	m := Mat3{{1, 2, 0}, {0, 1, 4}, {5, 6, 0}}
	got := m.Invert().Mul(m)
	id := Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if abs(got[i].At(j)-id[i].At(j)) > 1e-5 {
				t.Errorf("Mat3 Invert() * M [%d][%d] = %v", i, j, got[i].At(j))
			}
		}
	}
}

func TestInterpolationMatrices(t *testing.T) {
	var tri Mat3
	tri.SetCol(0, Vec3{0, 0, 0})
	tri.SetCol(1, Vec3{3, 0, 3})
	tri.SetCol(2, Vec3{0, 6, 6})

	got := tri.MulVec3(Vec3{1.0 / 3, 1.0 / 3, 1.0 / 3})
	want := Vec3{1, 2, 3}
	if got.Distance(want) > 1e-5 {
		t.Errorf("Mat3 barycentric interpolation = %v, want %v", got, want)
	}

	var uv Mat2x3
	uv.SetCol(0, Vec2{0, 0})
	uv.SetCol(1, Vec2{1, 0})
	uv.SetCol(2, Vec2{0, 1})
	if got := uv.MulVec3(Vec3{0.5, 0.25, 0.25}); got != (Vec2{0.25, 0.25}) {
		t.Errorf("Mat2x3 interpolation = %v, want (0.25, 0.25)", got)
	}
	if got := uv.Col(1); got != (Vec2{1, 0}) {
		t.Errorf("Mat2x3.Col(1) = %v", got)
	}
}

func TestMat4x3(t *testing.T) {
	var m Mat4x3
	m.SetCol(0, Vec4{1, 0, 0, 1})
	m.SetCol(1, Vec4{0, 2, 0, 1})
	m.SetCol(2, Vec4{0, 0, 4, 2})

	if got := m.Col(2); got != (Vec4{0, 0, 4, 2}) {
		t.Errorf("Col(2) = %v", got)
	}
	if got := m.MulVec3(Vec3{0.5, 0.25, 0.25}); got != (Vec4{0.5, 0.5, 1, 1.25}) {
		t.Errorf("MulVec3 = %v, want (0.5, 0.5, 1, 1.25)", got)
	}
}
