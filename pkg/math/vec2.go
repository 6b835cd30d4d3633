// Package math provides the small set of vector and matrix types the tile
// map viewer needs on both the CPU and the GPU side.
package math

import "math"

// Vec2 is a 2D vector. It doubles as a UV coordinate and a texture size.
type Vec2 struct {
	X, Y float32
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

// Mul returns the component-wise product.
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// Div returns the component-wise quotient. Division by zero is not guarded.
func (v Vec2) Div(other Vec2) Vec2 {
	return Vec2{v.X / other.X, v.Y / other.Y}
}

// Floor rounds both components toward negative infinity.
func (v Vec2) Floor() Vec2 {
	return Vec2{
		float32(math.Floor(float64(v.X))),
		float32(math.Floor(float64(v.Y))),
	}
}

// Fract returns v - floor(v), matching GLSL fract().
func (v Vec2) Fract() Vec2 {
	return v.Sub(v.Floor())
}
