package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/geometry"
	"github.com/df07/fermion/pkg/material"
	"github.com/df07/fermion/pkg/scene"
)

const cameraJSON = `"camera": {
	"look_from": {"x": 0, "y": 0, "z": 0},
	"look_at": {"x": 0, "y": 0, "z": -1},
	"view_up": {"x": 0, "y": 1, "z": 0},
	"vertical_field_of_view": 90,
	"aspect_ratio": 2,
	"aperture": 0,
	"focus_distance": 1,
	"time_start": 0,
	"time_finish": 1
}`

func sceneJSON(root string) string {
	return `{
		"width": 4, "height": 2, "samples_per_pixel": 3, "max_depth": 5,
		"background_color": {"r": 0.5, "g": 0.6, "b": 0.7},
		` + cameraJSON + `,
		"root_object": ` + root + `
	}`
}

func TestLoadScene(t *testing.T) {
	root := `{"type": "Collection", "objects": [
		{"type": "Sphere", "position_start": {"x": 0, "y": 0, "z": -1}, "time_start": 0, "time_finish": 1, "radius": 0.5,
		 "material": {"type": "Lambertian", "texture": {"type": "Solid", "color": {"r": 0.1, "g": 0.2, "b": 0.3}}}},
		{"type": "Sphere", "position_start": {"x": 1, "y": 0, "z": -1}, "position_finish": {"x": 1, "y": 1, "z": -1},
		 "time_start": 0, "time_finish": 1, "radius": 0.5,
		 "material": {"type": "Metal", "albedo": {"r": 0.8, "g": 0.8, "b": 0.8}, "fuzzing_factor": 0.2}},
		{"type": "Sphere", "position_start": {"x": -1, "y": 0, "z": -1}, "time_start": 0, "time_finish": 1, "radius": 0.5,
		 "material": {"type": "Dialectric", "refractive_index": 1.5}}
	]}`

	s, err := LoadScene(strings.NewReader(sceneJSON(root)))
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if s.Width != 4 || s.Height != 2 || s.SamplesPerPixel != 3 || s.MaxDepth != 5 {
		t.Errorf("Unexpected globals: %dx%d spp=%d depth=%d", s.Width, s.Height, s.SamplesPerPixel, s.MaxDepth)
	}
	if s.BackgroundColor != core.NewColor(0.5, 0.6, 0.7) {
		t.Errorf("Expected background (0.5,0.6,0.7), got %+v", s.BackgroundColor)
	}
	if s.Camera.Config.VFov != 90 || s.Camera.Config.AspectRatio != 2 {
		t.Errorf("Expected vfov 90 and aspect 2, got %f and %f", s.Camera.Config.VFov, s.Camera.Config.AspectRatio)
	}
	if s.Root.Kind != geometry.KindCollection || len(s.Root.Objects) != 3 {
		t.Fatalf("Expected collection of 3 objects, got kind %v with %d", s.Root.Kind, len(s.Root.Objects))
	}

	lambert := s.Root.Objects[0].Sphere
	if lambert.PositionFinish != lambert.PositionStart {
		t.Errorf("Expected missing position_finish to default to position_start, got %+v", lambert.PositionFinish)
	}
	if lambert.Material.Kind != material.KindLambertian || lambert.Material.Texture.Color != core.NewColor(0.1, 0.2, 0.3) {
		t.Errorf("Unexpected lambertian material %+v", lambert.Material)
	}

	metal := s.Root.Objects[1].Sphere
	if metal.PositionFinish != core.NewVec3(1, 1, -1) {
		t.Errorf("Expected position_finish (1,1,-1), got %+v", metal.PositionFinish)
	}
	if metal.Material.Kind != material.KindMetal || metal.Material.Fuzzness != 0.2 {
		t.Errorf("Unexpected metal material %+v", metal.Material)
	}

	glass := s.Root.Objects[2].Sphere.Material
	if glass.Kind != material.KindDielectric || glass.RefractiveIndex != 1.5 {
		t.Errorf("Unexpected dielectric material %+v", glass)
	}
}

func TestLoadSceneKeepsFuzzingFactor(t *testing.T) {
	tests := []struct {
		name string
		fuzz string
		want float32
	}{
		{"mirror", "0", 0},
		{"above one", "2.5", 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := `{"type": "Sphere", "position_start": {"x": 0, "y": 0, "z": -1}, "time_start": 0, "time_finish": 1, "radius": 0.5,
				"material": {"type": "Metal", "albedo": {"r": 0.8, "g": 0.8, "b": 0.8}, "fuzzing_factor": ` + tt.fuzz + `}}`
			s, err := LoadScene(strings.NewReader(sceneJSON(root)))
			if err != nil {
				t.Fatalf("Failed to load scene: %v", err)
			}
			if got := s.Root.Sphere.Material.Fuzzness; got != tt.want {
				t.Errorf("Expected fuzzness %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLoadSceneErrors(t *testing.T) {
	sphere := func(mat string) string {
		return `{"type": "Sphere", "position_start": {"x": 0, "y": 0, "z": 0}, "time_start": 0, "time_finish": 1, "radius": 1, "material": ` + mat + `}`
	}

	testCases := []struct {
		name        string
		input       string
		unknownType bool
	}{
		{"malformed json", `{"width": `, false},
		{"missing camera", `{"width": 4, "height": 2, "samples_per_pixel": 1, "max_depth": 1, "root_object": {"type": "Collection", "objects": []}}`, false},
		{"missing root", sceneJSON(`null`), false},
		{"zero samples", strings.Replace(sceneJSON(`{"type": "Collection", "objects": []}`), `"samples_per_pixel": 3`, `"samples_per_pixel": 0`, 1), false},
		{"unknown object", sceneJSON(`{"type": "Cube"}`), true},
		{"unknown material", sceneJSON(sphere(`{"type": "Plastic"}`)), true},
		{"unknown texture", sceneJSON(sphere(`{"type": "Lambertian", "texture": {"type": "Checker"}}`)), true},
		{"missing texture", sceneJSON(sphere(`{"type": "Lambertian"}`)), false},
		{"metal without albedo", sceneJSON(sphere(`{"type": "Metal", "fuzzing_factor": 0.1}`)), false},
		{"missing material", sceneJSON(`{"type": "Sphere", "radius": 1}`), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScene(strings.NewReader(tc.input))
			if !errors.Is(err, scene.ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
			if tc.unknownType && !errors.Is(err, ErrUnknownType) {
				t.Errorf("Expected ErrUnknownType, got %v", err)
			}
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	root := `{"type": "Collection", "objects": []}`
	if err := os.WriteFile(path, []byte(sceneJSON(root)), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	s, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if s.PixelCount() != 8 {
		t.Errorf("Expected 8 pixels, got %d", s.PixelCount())
	}

	if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadBundledSceneFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.json"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadSceneFile(file)
			if err != nil {
				t.Fatalf("Failed to load %s: %v", file, err)
			}
			if err := s.Initialize(); err != nil {
				t.Errorf("Expected bundled scene to initialize, got %v", err)
			}
		})
	}
}
