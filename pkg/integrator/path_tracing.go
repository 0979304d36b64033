package integrator

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/scene"
)

// tMin keeps scattered rays from re-hitting the surface they left
const tMin = 0.001

var tMax = math32.Inf(1)

// PathTracingIntegrator implements unidirectional path tracing over a scene
type PathTracingIntegrator struct {
	scene *scene.Scene
}

// NewPathTracingIntegrator creates a path tracer for an initialized scene
func NewPathTracingIntegrator(s *scene.Scene) *PathTracingIntegrator {
	return &PathTracingIntegrator{scene: s}
}

// TracePixel averages SamplesPerPixel jittered camera samples through row x,
// column y. Row 0 is the top of the image.
func (pt *PathTracingIntegrator) TracePixel(x, y int, sampler core.Sampler) color.RGBA {
	s := pt.scene

	// Single-row or single-column images map every sample to the viewport edge
	uDenom := float32(max(s.Width-1, 1))
	vDenom := float32(max(s.Height-1, 1))

	accum := core.Black
	for i := 0; i < s.SamplesPerPixel; i++ {
		u := (float32(y) + sampler.Get1D()) / uDenom
		v := 1 - (float32(x)+sampler.Get1D())/vDenom
		ray := s.Camera.GetRay(u, v, sampler)
		accum = accum.Add(pt.Bounce(ray, s.MaxDepth, sampler))
	}

	return ToRGBA(accum, s.SamplesPerPixel)
}

// Bounce returns the radiance carried back along ray with depth scatter
// events remaining
func (pt *PathTracingIntegrator) Bounce(ray core.Ray, depth int, sampler core.Sampler) core.Color {
	if depth <= 0 {
		return core.Black
	}

	hit, isHit := pt.scene.Root.Hit(ray, tMin, tMax)
	if !isHit {
		return pt.scene.BackgroundColor
	}

	emitted := hit.Material.Emit(hit.U, hit.V, hit.Point)
	scatter, didScatter := hit.Material.Scatter(ray, &hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := pt.Bounce(scatter.Scattered, depth-1, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyColor(incoming))
}

// ToRGBA averages an accumulated color over samples, applies gamma 2 and
// quantizes each channel to 8 bits
func ToRGBA(accum core.Color, samples int) color.RGBA {
	scale := 1 / float32(samples)
	return color.RGBA{
		R: quantize(accum.R * scale),
		G: quantize(accum.G * scale),
		B: quantize(accum.B * scale),
		A: 255,
	}
}

func quantize(c float32) uint8 {
	c = math32.Sqrt(c)
	// NaN fails both comparisons and is mapped to 0
	if !(c >= 0) {
		return 0
	}
	if c > 0.999 {
		c = 0.999
	}
	return uint8(c * 256)
}
