package material

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/fermion/pkg/core"
)

func TestNewMetal_FuzznessStored(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float32
		expectedFuzzness float32
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Above 1.0 kept", 2.5, 2.5},
		{"Negative kept", -0.5, -0.5},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
			if metal.Kind != KindMetal {
				t.Errorf("Expected kind %s, got %s", KindMetal, metal.Kind)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.8, 0.7)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRayAtTime(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1), 0.5)
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Expected metal to scatter a ray above the surface")
	}

	expected := core.NewVec3(0, -1, 1).Unit()
	got := scatter.Scattered.Direction
	if math32.Abs(got.X-expected.X) > 1e-6 || math32.Abs(got.Y-expected.Y) > 1e-6 || math32.Abs(got.Z-expected.Z) > 1e-6 {
		t.Errorf("Expected reflected direction %v, got %v", expected, got)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
	if scatter.Scattered.Time != 0.5 {
		t.Errorf("Expected scattered time 0.5, got %f", scatter.Scattered.Time)
	}
}

func TestMetal_AbsorbsRaysBelowSurface(t *testing.T) {
	metal := NewMetal(core.White, 1.0)

	// Grazing ray; a constant draw of 0.22 makes the fuzz vector
	// (-0.56, -0.56, -0.56), which drags the reflection below the surface.
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}
	inside := fixedSampler{value: 0.22}

	_, didScatter := metal.Scatter(rayIn, hit, inside)
	if didScatter {
		t.Error("Expected ray fuzzed below the surface to be absorbed")
	}
}
