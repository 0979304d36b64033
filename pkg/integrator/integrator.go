package integrator

import (
	"image/color"

	"github.com/df07/fermion/pkg/core"
)

// Integrator computes the final color of a single pixel. Implementations must
// be safe for concurrent use; all randomness comes from the sampler, which
// belongs to the calling worker.
type Integrator interface {
	TracePixel(x, y int, sampler core.Sampler) color.RGBA
}

// GradientIntegrator paints a deterministic red/green gradient without
// tracing any rays. It exercises the render pipeline independently of the scene.
type GradientIntegrator struct {
	Width  int
	Height int
}

// NewGradientIntegrator creates a gradient integrator for a width x height image
func NewGradientIntegrator(width, height int) *GradientIntegrator {
	return &GradientIntegrator{Width: width, Height: height}
}

// TracePixel returns r = 255*x/height and g = 255*y/width for row x, column y
func (g *GradientIntegrator) TracePixel(x, y int, sampler core.Sampler) color.RGBA {
	return color.RGBA{
		R: uint8(255 * (float32(x) / float32(g.Height))),
		G: uint8(255 * (float32(y) / float32(g.Width))),
		B: 0,
		A: 255,
	}
}
