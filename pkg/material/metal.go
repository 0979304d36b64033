package material

import (
	"github.com/df07/fermion/pkg/core"
)

// NewMetal creates a new metal material. Fuzzness is stored as given;
// values above 1 scatter wider and absorb more rays.
func NewMetal(albedo core.Color, fuzzness float32) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzzness: fuzzness}
}

// scatterMetal reflects about the normal, perturbed by fuzz
func (m Material) scatterMetal(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Unit().Reflect(hit.Normal)

	if m.Fuzzness != 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzzness))
	}

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)

	// Rays fuzzed below the surface are absorbed
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}
