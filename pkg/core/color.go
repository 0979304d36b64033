package core

// Color is a linear RGB triple, nominally in [0,1] before gamma correction
type Color struct {
	R, G, B float32
}

// NewColor creates a new Color
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Black is the zero color
var Black = Color{}

// White is opaque white, used as the identity attenuation
var White = Color{R: 1, G: 1, B: 1}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// MultiplyColor returns the component-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float32) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Vec3 reinterprets the color as a vector
func (c Color) Vec3() Vec3 {
	return Vec3{X: c.R, Y: c.G, Z: c.B}
}

// ColorFromVec3 reinterprets a vector as a color
func ColorFromVec3(v Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z}
}
