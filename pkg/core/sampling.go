package core

import (
	"math/rand"
	"time"
)

// Sampler provides random sampling for rendering algorithms.
// Implementations are not safe for concurrent use; each worker owns one.
type Sampler interface {
	Get1D() float32
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic source
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// NewTimeSeededSampler creates a sampler seeded from the wall clock
func NewTimeSeededSampler() *RandomSampler {
	return NewSeededSampler(time.Now().UnixNano())
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// Get2D returns two random float32 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float32(), r.random.Float32())
}

// Get3D returns three random float32 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float32(), r.random.Float32(), r.random.Float32())
}

// RandomInRange returns a uniform value in [min, max)
func RandomInRange(sampler Sampler, min, max float32) float32 {
	return min + sampler.Get1D()*(max-min)
}
