package scene

import (
	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/geometry"
	"github.com/df07/fermion/pkg/material"
)

// NewDefaultScene creates a default scene with a ground sphere and three
// spheres: diffuse, fuzzed metal and hollow glass
func NewDefaultScene() *Scene {
	width, height := 400, 225

	camera := geometry.NewCamera(geometry.CameraConfig{
		LookFrom:      core.NewVec3(3, 1.5, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          30,
		AspectRatio:   float32(width) / float32(height),
		Aperture:      0.1,
		FocusDistance: core.NewVec3(3, 1.5, 3).Length(),
		TimeStart:     0,
		TimeFinish:    1,
	})

	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.1)

	root := geometry.NewCollection(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		// Negative radius flips normals, making the glass sphere hollow
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)

	return &Scene{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 50,
		MaxDepth:        25,
		BackgroundColor: core.NewColor(0.7, 0.8, 1.0),
		Camera:          camera,
		Root:            root,
	}
}

// NewEmptyScene creates a scene with nothing to hit; every pixel shows the background
func NewEmptyScene(width, height int, background core.Color) *Scene {
	return &Scene{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 1,
		MaxDepth:        1,
		BackgroundColor: background,
		Camera: geometry.NewCamera(geometry.CameraConfig{
			LookFrom:      core.NewVec3(0, 0, 0),
			LookAt:        core.NewVec3(0, 0, -1),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          90,
			AspectRatio:   float32(width) / float32(height),
			FocusDistance: 1,
		}),
		Root: geometry.NewCollection(),
	}
}
