package math

// Vec4 is a 4-component vector, usually a homogeneous point.
type Vec4 [4]float32

// At returns the i-th component. Out-of-range indices panic.
func (v Vec4) At(i int) float32 {
	return v[i]
}

// Set assigns the i-th component. Out-of-range indices panic.
func (v *Vec4) Set(i int, f float32) {
	v[i] = f
}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v[0] + other[0], v[1] + other[1], v[2] + other[2], v[3] + other[3]}
}

// Sub returns v - other.
func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v[0] - other[0], v[1] - other[1], v[2] - other[2], v[3] - other[3]}
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Div returns v / scalar.
func (v Vec4) Div(s float32) Vec4 {
	return Vec4{v[0] / s, v[1] / s, v[2] / s, v[3] / s}
}

// Dot returns the dot product.
func (v Vec4) Dot(other Vec4) float32 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2] + v[3]*other[3]
}

// Proj3 truncates to the first three components.
func (v Vec4) Proj3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Proj2 truncates to the first two components.
func (v Vec4) Proj2() Vec2 {
	return Vec2{v[0], v[1]}
}

// Homogenize divides every component by W.
func (v Vec4) Homogenize() Vec4 {
	return v.Div(v[3])
}
