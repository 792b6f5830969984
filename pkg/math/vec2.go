// Package math provides fixed-size vector and matrix types for the rasterizer.
package math

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// At returns the i-th component. It panics if i is not 0 or 1.
func (v Vec2) At(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	panic(fmt.Sprintf("math: Vec2 index %d out of range", i))
}

// Set assigns the i-th component. It panics if i is not 0 or 1.
func (v *Vec2) Set(i int, f float32) {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		panic(fmt.Sprintf("math: Vec2 index %d out of range", i))
	}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div returns v / scalar.
func (v Vec2) Div(s float32) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Embed3 lifts v into 3D, using fill for Z.
func (v Vec2) Embed3(fill float32) Vec3 {
	return Vec3{v.X, v.Y, fill}
}

// Embed4 lifts v into 4D, using fill for the two trailing components.
func (v Vec2) Embed4(fill float32) Vec4 {
	return Vec4{v.X, v.Y, fill, fill}
}
