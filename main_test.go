package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/fermion/pkg/renderer"
	"github.com/df07/fermion/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name         string
		sceneArg     string
		input        string
		expectedName string
		expectError  bool
	}{
		// Built-in scenes
		{"default scene", "default", "", "default", false},
		{"motion blur scene", "motion-blur", "", "motion-blur", false},
		{"random spheres scene", "random-spheres", "", "random-spheres", false},
		{"sphere grid scene", "sphere-grid", "", "sphere-grid", false},
		{"empty scene", "empty", "", "empty", false},

		// Scene files
		{"scene file by id", "file:three-spheres", "", "three-spheres", false},
		{"scene file by path", "scenes/three-spheres.json", "", "three-spheres", false},
		{"input overrides scene", "nonexistent", "scenes/three-spheres.json", "three-spheres", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", "", "", true},
		{"unknown scene file", "file:nonexistent", "", "", true},
		{"missing json path", "scenes/nonexistent.json", "", "", true},
		{"empty scene name", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, name, err := createScene(tt.sceneArg, tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.sceneArg)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene '%s'", tt.sceneArg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.sceneArg, err)
			}
			if name != tt.expectedName {
				t.Errorf("Expected output name '%s', got '%s'", tt.expectedName, name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Expected valid scene, got %v", err)
			}
		})
	}
}

func TestCreateSceneUnknownIsTyped(t *testing.T) {
	if _, _, err := createScene("nonexistent", ""); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestCreateSceneInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"width": 0}`), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	if _, _, err := createScene("", path); !errors.Is(err, scene.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
}

func TestSceneNameFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"scenes/three-spheres.json", "three-spheres"},
		{"nested/dir/my-scene.json", "my-scene"},
		{"plain.json", "plain"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := sceneNameFromPath(tt.path); got != tt.expected {
			t.Errorf("sceneNameFromPath(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestClampConcurrency(t *testing.T) {
	tests := []struct {
		requested, hardware, expected int
	}{
		{0, 8, 8},
		{-2, 8, 8},
		{3, 8, 3},
		{8, 8, 8},
		{16, 8, 8},
		{4, 0, 1},
	}

	for _, tt := range tests {
		if got := clampConcurrency(tt.requested, tt.hardware); got != tt.expected {
			t.Errorf("clampConcurrency(%d, %d) = %d, want %d", tt.requested, tt.hardware, got, tt.expected)
		}
	}
}

func TestReportProgressReturnsOnCompletion(t *testing.T) {
	s := scene.NewEmptyScene(8, 8, scene.NewDefaultScene().BackgroundColor)
	rc, err := renderer.Render(s, renderer.Config{Concurrency: 2, Seed: 1})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	reportProgress(rc, 1000)
	if rc.Progress() != 1 {
		t.Errorf("Expected progress 1 after reportProgress returns, got %f", rc.Progress())
	}
}
