package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float32
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math32.Abs(hit.T-tt.expectedT) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-6 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			// Normal always faces against the incoming ray
			if hit.Normal.Dot(ray.Direction) > 0 {
				t.Errorf("Normal %v does not oppose ray direction %v", hit.Normal, ray.Direction)
			}
			if hit.Material != testMaterial {
				t.Errorf("Expected hit to carry the sphere material")
			}
		})
	}
}

func TestSphere_Hit_ReturnsSmallerValidRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 100)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math32.Abs(hit.T-4) > 1e-5 {
		t.Errorf("Expected near root t=4, got %f", hit.T)
	}
	// Front hit: normal points back toward the ray origin
	toOrigin := ray.Origin.Subtract(hit.Point)
	if !hit.FrontFace || hit.Normal.Dot(toOrigin) < 0 {
		t.Errorf("Expected front face with normal toward origin, got front=%t normal=%v", hit.FrontFace, hit.Normal)
	}

	// Near root excluded by tMin: fall back to the far root
	hit, isHit = sphere.Hit(ray, 4.5, 100)
	if !isHit || math32.Abs(hit.T-6) > 1e-5 {
		t.Errorf("Expected far root t=6, got hit=%t t=%f", isHit, hit.T)
	}

	// Both roots outside range
	if _, isHit = sphere.Hit(ray, 0.001, 3.9); isHit {
		t.Error("Expected miss when both roots exceed tMax")
	}
	if _, isHit = sphere.Hit(ray, 6.5, 100); isHit {
		t.Error("Expected miss when both roots are below tMin")
	}
}

func TestSphere_MotionInterpolatesCenter(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, -5), core.NewVec3(10, 0, -5), 0, 1, 1.0, testMaterial)
	direction := core.NewVec3(0, 0, -1)

	// At time 0 the sphere sits on the axis
	if _, isHit := sphere.Hit(core.NewRayAtTime(core.Vec3{}, direction, 0), 0.001, 100); !isHit {
		t.Error("Expected hit at time 0")
	}
	// At time 1 it has moved away
	if _, isHit := sphere.Hit(core.NewRayAtTime(core.Vec3{}, direction, 1), 0.001, 100); isHit {
		t.Error("Expected miss at time 1")
	}
	// Halfway it is centered at x=5
	center := sphere.Sphere.Center(0.5)
	if center != core.NewVec3(5, 0, -5) {
		t.Errorf("Expected center (5,0,-5) at t=0.5, got %v", center)
	}
}

func TestSphere_ZeroDurationMotionUsesStart(t *testing.T) {
	sphere := Sphere{
		PositionStart:  core.NewVec3(1, 2, 3),
		PositionFinish: core.NewVec3(4, 5, 6),
		TimeStart:      0.5,
		TimeFinish:     0.5,
		Radius:         1,
	}
	if c := sphere.Center(0.5); c != sphere.PositionStart {
		t.Errorf("Expected start position %v, got %v", sphere.PositionStart, c)
	}
}

func TestSphere_UV(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		u, v      float32
	}{
		// outward normal (1,0,0): theta=pi/2, phi=pi
		{"positive x", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), 0.5, 0.5},
		// outward normal (0,1,0): theta=pi
		{"top", core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), 0.5, 1.0},
		// outward normal (0,-1,0): theta=0
		{"bottom", core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0), 0.5, 0.0},
		// outward normal (0,0,1): phi=atan2(-1,0)+pi = pi/2
		{"positive z", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 0.25, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.direction), 0.001, 100)
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math32.Abs(hit.U-tt.u) > 1e-5 || math32.Abs(hit.V-tt.v) > 1e-5 {
				t.Errorf("Expected uv (%f,%f), got (%f,%f)", tt.u, tt.v, hit.U, hit.V)
			}
		})
	}
}
