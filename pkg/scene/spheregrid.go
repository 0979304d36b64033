package scene

import (
	"github.com/chewxy/math32"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/geometry"
	"github.com/df07/fermion/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) core.Color {
	hRad := h * math32.Pi / 180

	// OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS to linear RGB
	r := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	blue := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	return core.NewColor(clamp01(r), clamp01(g), clamp01(blue))
}

func clamp01(x float32) float32 {
	return math32.Max(0, math32.Min(1, x))
}

// NewSphereGridScene creates a gridSize x gridSize field of rainbow metal spheres
// resting on a large gray ground sphere
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 2 {
		gridSize = 2
	}
	width, height := 400, 225

	camera := geometry.NewCamera(geometry.CameraConfig{
		LookFrom:      core.NewVec3(4.5, 6, 18),
		LookAt:        core.NewVec3(4.5, 0.8, 4.5),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   float32(width) / float32(height),
		Aperture:      0.02,
		FocusDistance: core.NewVec3(0, 5.2, 13.5).Length(),
		TimeStart:     0,
		TimeFinish:    1,
	})

	objects := []geometry.Geometry{
		geometry.NewSphere(core.NewVec3(4.5, -1000, 4.5), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
	}

	// Fit the grid into a 9x9 area around the look-at point
	const targetArea = 9.0
	spacing := float32(targetArea) / float32(gridSize-1)
	radius := math32.Max(0.02, math32.Min(0.35, spacing*0.35))

	const baseLightness, minChroma, maxChroma = 0.65, 0.05, 0.25
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float32(i)*spacing - targetArea/2 + 4.5
			z := float32(j)*spacing - targetArea/2 + 4.5

			// Hue runs along x, chroma along z
			hue := float32(i) / float32(gridSize-1) * 360
			chroma := minChroma + float32(j)/float32(gridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math32.Sin(float32(i+j)*0.5)

			fuzz := 0.05 + 0.1*float32((i+j)%3)/2
			mat := material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz)
			objects = append(objects, geometry.NewSphere(core.NewVec3(x, radius, z), radius, mat))
		}
	}

	return &Scene{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 20,
		MaxDepth:        20,
		BackgroundColor: core.NewColor(0.5, 0.7, 1.0),
		Camera:          camera,
		Root:            geometry.NewCollection(objects...),
	}
}
