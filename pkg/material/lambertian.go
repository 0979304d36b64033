package material

import (
	"github.com/df07/fermion/pkg/core"
)

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Color) Material {
	return NewTexturedLambertian(NewSolidColor(albedo))
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(texture Texture) Material {
	return Material{Kind: KindLambertian, Texture: texture}
}

// scatterLambertian scatters around the normal; it never absorbs
func (m Material) scatterLambertian(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := hit.Normal.Add(core.RandomInUnitSphere(sampler))

	// Catch degenerate scatter direction
	if direction.IsNearZero() {
		direction = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: m.Texture.Value(hit.U, hit.V, hit.Point),
	}, true
}
