package scene

import (
	"errors"
	"fmt"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/geometry"
)

// ErrInvalidScene is wrapped by every scene validation error
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering. It is logically
// immutable during a render; Initialize derives the camera state beforehand.
type Scene struct {
	Width           int        // Image width in pixels
	Height          int        // Image height in pixels
	SamplesPerPixel int        // Number of rays per pixel
	MaxDepth        int        // Maximum ray bounce depth
	BackgroundColor core.Color // Color returned by rays that escape
	Camera          geometry.Camera
	Root            geometry.Geometry
}

// Validate checks the fields an external loader must provide
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	if s.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidScene, s.SamplesPerPixel)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidScene, s.MaxDepth)
	}
	if err := validateGeometry(&s.Root); err != nil {
		return err
	}
	return nil
}

// validateGeometry rejects unknown kinds anywhere in the tree
func validateGeometry(g *geometry.Geometry) error {
	switch g.Kind {
	case geometry.KindSphere:
		return nil
	case geometry.KindCollection:
		for i := range g.Objects {
			if err := validateGeometry(&g.Objects[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown geometry kind %d", ErrInvalidScene, g.Kind)
	}
}

// Initialize validates the scene and derives the camera state.
// It must complete before the scene is shared with render workers.
func (s *Scene) Initialize() error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.Camera.Initialize()
	return nil
}

// PixelCount returns the number of pixels in the output image
func (s *Scene) PixelCount() int {
	return s.Width * s.Height
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Root.PrimitiveCount()
}
