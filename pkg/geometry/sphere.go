package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/material"
)

// Sphere represents a sphere whose center moves linearly from PositionStart
// at TimeStart to PositionFinish at TimeFinish
type Sphere struct {
	PositionStart  core.Vec3
	PositionFinish core.Vec3
	TimeStart      float32
	TimeFinish     float32
	Radius         float32
	Material       material.Material
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float32, mat material.Material) Geometry {
	return NewMovingSphere(center, center, 0, 1, radius, mat)
}

// NewMovingSphere creates a sphere that moves between two centers over [timeStart, timeFinish]
func NewMovingSphere(start, finish core.Vec3, timeStart, timeFinish, radius float32, mat material.Material) Geometry {
	return Geometry{
		Kind: KindSphere,
		Sphere: Sphere{
			PositionStart:  start,
			PositionFinish: finish,
			TimeStart:      timeStart,
			TimeFinish:     timeFinish,
			Radius:         radius,
			Material:       mat,
		},
	}
}

// Center returns the interpolated center at the given time
func (s *Sphere) Center(time float32) core.Vec3 {
	if s.TimeFinish == s.TimeStart {
		return s.PositionStart
	}
	coefficient := (time - s.TimeStart) / (s.TimeFinish - s.TimeStart)
	return s.PositionStart.Add(s.PositionFinish.Subtract(s.PositionStart).Multiply(coefficient))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float32) (material.HitRecord, bool) {
	center := s.Center(ray.Time)

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LengthSquared()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return material.HitRecord{}, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if root < tMin || root > tMax {
		root = (-b + sqrtD) / (2 * a)
		if root < tMin || root > tMax {
			return material.HitRecord{}, false
		}
	}

	hit := material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hit.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.U, hit.V = sphereUV(outwardNormal)

	return hit, true
}

// sphereUV maps a point on the unit sphere to spherical (u, v) in [0,1]
func sphereUV(p core.Vec3) (float32, float32) {
	theta := math32.Acos(-p.Y)
	phi := math32.Atan2(-p.Z, p.X) + math32.Pi
	return phi / (2 * math32.Pi), theta / math32.Pi
}
