package core

import "github.com/chewxy/math32"

// nearZeroEpsilon is the per-component threshold used by IsNearZero
const nearZeroEpsilon = 1e-8

// Vec3 represents a 3D vector, used for both points and directions
type Vec3 struct {
	X, Y, Z float32
}

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float32) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// DividedInto returns scalar/v componentwise
func (v Vec3) DividedInto(scalar float32) Vec3 {
	return Vec3{scalar / v.X, scalar / v.Y, scalar / v.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Unit returns a unit vector in the same direction.
// A zero-length vector yields NaN components.
func (v Vec3) Unit() Vec3 {
	return v.Divide(v.Length())
}

// IsNearZero reports whether every component is close to zero
func (v Vec3) IsNearZero() bool {
	return math32.Abs(v.X) < nearZeroEpsilon &&
		math32.Abs(v.Y) < nearZeroEpsilon &&
		math32.Abs(v.Z) < nearZeroEpsilon
}

// Reflect reflects v off a surface with normal n: v - 2*dot(v,n)*n
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector v through a surface with normal n using Snell's law.
// etaRatio is the ratio of refractive indices (incident over transmitted).
func (v Vec3) Refract(n Vec3, etaRatio float32) Vec3 {
	cosTheta := math32.Min(v.Negate().Dot(n), 1.0)
	perpendicular := v.Add(n.Multiply(cosTheta)).Multiply(etaRatio)
	parallel := n.Multiply(-math32.Sqrt(math32.Abs(1.0 - perpendicular.LengthSquared())))
	return perpendicular.Add(parallel)
}

// RandomVec3 returns a vector with each component uniform in [min, max)
func RandomVec3(sampler Sampler, min, max float32) Vec3 {
	return Vec3{
		X: RandomInRange(sampler, min, max),
		Y: RandomInRange(sampler, min, max),
		Z: RandomInRange(sampler, min, max),
	}
}

// RandomInUnitDisk generates a random point in the unit disk on the z=0 plane (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := Vec3{X: RandomInRange(sampler, -1, 1), Y: RandomInRange(sampler, -1, 1)}
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}

// RandomInUnitSphere generates a random point inside the unit sphere
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(sampler, -1, 1)
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}
