package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/fermion/pkg/core"
)

// CameraConfig contains the input parameters of a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction
	VFov          float32   // Vertical field of view in degrees
	AspectRatio   float32   // Width / height
	Aperture      float32   // Lens diameter (0 = pinhole)
	FocusDistance float32   // Distance to the plane in perfect focus
	TimeStart     float32   // Shutter open
	TimeFinish    float32   // Shutter close
}

// Camera generates rays for rendering. Initialize derives the basis and
// viewport once; afterwards the camera is read-only and GetRay may be called
// from many goroutines, each with its own sampler.
type Camera struct {
	Config CameraConfig

	u, v, w         core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	lowerLeftCorner core.Vec3
	lensRadius      float32
	initialized     bool
}

// NewCamera creates a camera; call Initialize before generating rays
func NewCamera(config CameraConfig) Camera {
	return Camera{Config: config}
}

// Initialize derives the orthonormal basis, viewport and lens radius.
// Calling it again has no effect.
func (c *Camera) Initialize() {
	if c.initialized {
		return
	}
	cfg := c.Config

	theta := cfg.VFov * math32.Pi / 180
	viewportHeight := 2 * math32.Tan(theta/2)
	viewportWidth := viewportHeight * cfg.AspectRatio

	// Collinear LookFrom/LookAt/Up yields a NaN basis
	c.w = cfg.LookFrom.Subtract(cfg.LookAt).Unit()
	c.u = cfg.Up.Cross(c.w).Unit()
	c.v = c.w.Cross(c.u)

	c.horizontal = c.u.Multiply(cfg.FocusDistance * viewportWidth)
	c.vertical = c.v.Multiply(cfg.FocusDistance * viewportHeight)
	c.lowerLeftCorner = cfg.LookFrom.
		Subtract(c.horizontal.Divide(2)).
		Subtract(c.vertical.Divide(2)).
		Subtract(c.w.Multiply(cfg.FocusDistance))
	c.lensRadius = cfg.Aperture / 2
	c.initialized = true
}

// Initialized reports whether Initialize has run
func (c *Camera) Initialized() bool {
	return c.initialized
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1,
// with a lens offset for defocus blur and a random time for motion blur
func (c *Camera) GetRay(s, t float32, sampler core.Sampler) core.Ray {
	lens := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(lens.X).Add(c.v.Multiply(lens.Y))

	origin := c.Config.LookFrom.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)
	time := core.RandomInRange(sampler, c.Config.TimeStart, c.Config.TimeFinish)

	return core.NewRayAtTime(origin, direction, time)
}
