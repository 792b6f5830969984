package math

// Mat3 is a 3x3 matrix stored row-major as three row vectors.
type Mat3 [3]Vec3

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Col returns column j.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[0].At(j), m[1].At(j), m[2].At(j)}
}

// SetCol replaces column j.
func (m *Mat3) SetCol(j int, v Vec3) {
	m[0].Set(j, v.X)
	m[1].Set(j, v.Y)
	m[2].Set(j, v.Z)
}

// MulVec3 returns m * v. With v as barycentric weights and the triangle
// vertices as columns this interpolates the vertices.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v)}
}

// Mul returns m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var r Mat3
	for j := 0; j < 3; j++ {
		r.SetCol(j, m.MulVec3(other.Col(j)))
	}
	return r
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{m.Col(0), m.Col(1), m.Col(2)}
}

func (m Mat3) square() square {
	s := square{n: 3}
	for i := range m {
		s.a[i] = [4]float32{m[i].X, m[i].Y, m[i].Z}
	}
	return s
}

// Det returns the determinant.
func (m Mat3) Det() float32 {
	return m.square().det()
}

// Invert returns the inverse. m must be non-singular.
func (m Mat3) Invert() Mat3 {
	s := m.square()
	var adj Mat3
	for i := 0; i < 3; i++ {
		adj[i] = Vec3{s.cofactor(i, 0), s.cofactor(i, 1), s.cofactor(i, 2)}
	}
	det := adj[0].Dot(m[0])
	for i := range adj {
		adj[i] = adj[i].Div(det)
	}
	return adj.Transpose()
}

// Mat2x3 is a 2-row, 3-column matrix. Columns hold per-vertex 2D
// attributes such as texture coordinates.
type Mat2x3 [2]Vec3

// Col returns column j.
func (m Mat2x3) Col(j int) Vec2 {
	return Vec2{m[0].At(j), m[1].At(j)}
}

// SetCol replaces column j.
func (m *Mat2x3) SetCol(j int, v Vec2) {
	m[0].Set(j, v.X)
	m[1].Set(j, v.Y)
}

// MulVec3 returns m * v.
func (m Mat2x3) MulVec3(v Vec3) Vec2 {
	return Vec2{m[0].Dot(v), m[1].Dot(v)}
}

// Mat4x3 is a 4-row, 3-column matrix. Columns hold per-vertex homogeneous
// positions.
type Mat4x3 [4]Vec3

// Col returns column j.
func (m Mat4x3) Col(j int) Vec4 {
	return Vec4{m[0].At(j), m[1].At(j), m[2].At(j), m[3].At(j)}
}

// SetCol replaces column j.
func (m *Mat4x3) SetCol(j int, v Vec4) {
	for i := range m {
		m[i].Set(j, v[i])
	}
}

// MulVec3 returns m * v.
func (m Mat4x3) MulVec3(v Vec3) Vec4 {
	return Vec4{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v), m[3].Dot(v)}
}
