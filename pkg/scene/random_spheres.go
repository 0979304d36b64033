package scene

import (
	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/geometry"
	"github.com/df07/fermion/pkg/material"
)

// NewRandomSpheresScene creates the classic field of small random spheres
// around three large feature spheres. The layout is fully determined by seed.
func NewRandomSpheresScene(seed int64) *Scene {
	width, height := 400, 225
	sampler := core.NewSeededSampler(seed)

	lookFrom := core.NewVec3(13, 2, 3)
	camera := geometry.NewCamera(geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   float32(width) / float32(height),
		Aperture:      0.1,
		FocusDistance: 10,
		TimeStart:     0,
		TimeFinish:    1,
	})

	objects := []geometry.Geometry{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float32(a)+0.9*sampler.Get1D(), 0.2, float32(b)+0.9*sampler.Get1D())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.ColorFromVec3(core.RandomVec3(sampler, 0, 1).MultiplyVec(core.RandomVec3(sampler, 0, 1)))
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.ColorFromVec3(core.RandomVec3(sampler, 0.5, 1))
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0)),
	)

	return &Scene{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		BackgroundColor: core.NewColor(0.7, 0.8, 1.0),
		Camera:          camera,
		Root:            geometry.NewCollection(objects...),
	}
}

// NewMotionBlurScene creates a row of spheres bouncing upward during the
// shutter interval so each sample sees them at a different height
func NewMotionBlurScene() *Scene {
	width, height := 400, 225

	camera := geometry.NewCamera(geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 1, 6),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          35,
		AspectRatio:   float32(width) / float32(height),
		Aperture:      0,
		FocusDistance: 6,
		TimeStart:     0,
		TimeFinish:    1,
	})

	ground := material.NewLambertian(core.NewColor(0.3, 0.5, 0.3))
	colors := []core.Color{
		core.NewColor(0.8, 0.2, 0.2),
		core.NewColor(0.9, 0.7, 0.2),
		core.NewColor(0.2, 0.4, 0.8),
	}

	objects := []geometry.Geometry{
		geometry.NewSphere(core.NewVec3(0, -100.5, 0), 100, ground),
	}
	for i, c := range colors {
		x := float32(i-1) * 1.2
		rise := 0.25 * float32(i+1)
		objects = append(objects, geometry.NewMovingSphere(
			core.NewVec3(x, 0, 0), core.NewVec3(x, rise, 0),
			0, 1, 0.45, material.NewLambertian(c)))
	}
	objects = append(objects, geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewMetal(core.NewColor(0.8, 0.8, 0.9), 0.05)))

	return &Scene{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 30,
		MaxDepth:        10,
		BackgroundColor: core.NewColor(0.7, 0.8, 1.0),
		Camera:          camera,
		Root:            geometry.NewCollection(objects...),
	}
}
