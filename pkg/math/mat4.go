package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored row-major as four row vectors.
// m[i][j] is row i, column j; vectors are columns (M * v).
type Mat4 [4]Vec4

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
}

// Row returns row i.
func (m Mat4) Row(i int) Vec4 {
	return m[i]
}

// SetRow replaces row i.
func (m *Mat4) SetRow(i int, v Vec4) {
	m[i] = v
}

// Col returns column j.
func (m Mat4) Col(j int) Vec4 {
	return Vec4{m[0][j], m[1][j], m[2][j], m[3][j]}
}

// SetCol replaces column j.
func (m *Mat4) SetCol(j int, v Vec4) {
	for i := range m {
		m[i][j] = v[i]
	}
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var r Mat4
	for j := 0; j < 4; j++ {
		col := other.Col(j)
		for i := 0; i < 4; i++ {
			r[i][j] = m[i].Dot(col)
		}
	}
	return r
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v), m[3].Dot(v)}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{m.Col(0), m.Col(1), m.Col(2), m.Col(3)}
}

func (m Mat4) square() square {
	s := square{n: 4}
	for i := range m {
		s.a[i] = m[i]
	}
	return s
}

// Det returns the determinant.
func (m Mat4) Det() float32 {
	return m.square().det()
}

// Minor returns m without the given row and column.
func (m Mat4) Minor(row, col int) Mat3 {
	s := m.square().minor(row, col)
	var r Mat3
	for i := 0; i < 3; i++ {
		r[i] = Vec3{s.a[i][0], s.a[i][1], s.a[i][2]}
	}
	return r
}

// Cofactor returns the signed minor determinant at (row, col).
func (m Mat4) Cofactor(row, col int) float32 {
	return m.square().cofactor(row, col)
}

// Adjugate returns the matrix of cofactors. Its transpose is the classical
// adjugate; InvertTranspose relies on this layout.
func (m Mat4) Adjugate() Mat4 {
	s := m.square()
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = s.cofactor(i, j)
		}
	}
	return r
}

// InvertTranspose returns the transpose of the inverse.
// m must be non-singular; a zero determinant is not detected and produces
// non-finite values.
func (m Mat4) InvertTranspose() Mat4 {
	adj := m.Adjugate()
	det := adj[0].Dot(m[0])
	for i := range adj {
		adj[i] = adj[i].Div(det)
	}
	return adj
}

// Invert returns the inverse. The same precondition as InvertTranspose
// applies.
func (m Mat4) Invert() Mat4 {
	return m.InvertTranspose().Transpose()
}

// ApproxEqual reports whether every element differs by at most tol.
func (m Mat4) ApproxEqual(other Mat4, tol float32) bool {
	for i := range m {
		for j := range m[i] {
			if math32.Abs(m[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}
	return true
}
