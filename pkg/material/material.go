package material

import (
	"github.com/df07/fermion/pkg/core"
)

// Kind identifies the variant stored in a Material
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// String returns the scene-format name of the material kind
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "Lambertian"
	case KindMetal:
		return "Metal"
	case KindDielectric:
		return "Dielectric"
	default:
		return "Unknown"
	}
}

// Material is a closed set of scattering behaviors selected by Kind.
// Only the fields belonging to the active kind are meaningful.
type Material struct {
	Kind Kind

	Texture Texture // Lambertian

	Albedo   core.Color // Metal
	Fuzzness float32    // Metal: 0.0 = perfect mirror, unclamped

	RefractiveIndex float32 // Dielectric
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// Scatter decides whether and how an incoming ray continues after a hit.
// It returns false when the ray is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(rayIn, hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// Emit returns the light emitted at a surface point. No material in the
// current set emits, so this is always black.
func (m Material) Emit(u, v float32, point core.Vec3) core.Color {
	return core.Black
}
