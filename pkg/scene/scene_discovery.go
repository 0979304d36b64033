package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene id matches neither a built-in nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"

	// FilePrefix marks scene ids that refer to JSON scene files
	FilePrefix = "file:"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // file type only
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtin struct {
	info   SceneInfo
	create func() *Scene
}

var builtins = []builtin{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse, metal and hollow glass spheres on a ground sphere"}, NewDefaultScene},
	{SceneInfo{ID: "motion-blur", Name: "Motion Blur", Description: "Spheres moving during the shutter interval"}, NewMotionBlurScene},
	{SceneInfo{ID: "random-spheres", Name: "Random Spheres", Description: "Seeded field of small random spheres"}, func() *Scene { return NewRandomSpheresScene(42) }},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "10x10 grid of rainbow-colored metallic spheres"}, func() *Scene { return NewSphereGridScene(10) }},
	{SceneInfo{ID: "empty", Name: "Empty", Description: "Background only"}, func() *Scene { return NewEmptyScene(320, 180, NewDefaultScene().BackgroundColor) }},
}

// ListBuiltinScenes returns the built-in scene catalogue in display order
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		scenes[i] = b.info
		scenes[i].Group = builtinGroup
		scenes[i].Type = "builtin"
	}
	return scenes
}

// Create builds a fresh instance of the named built-in scene
func Create(name string) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.create(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// ScenesDir locates the scenes directory relative to the working directory.
// It returns "" when none exists.
func ScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListFileScenes scans dir for *.json scene files
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseFileMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseFileMetadata reads the optional "name", "description" and "group"
// fields of a JSON scene file. Missing fields fall back to values derived
// from the file name.
func ParseFileMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       FilePrefix + base,
		Name:     titleCase(base),
		Group:    fileGroup,
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, err
	}
	if meta.Name != "" {
		info.Name = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description
	return info, nil
}

// FindSceneFile resolves a file scene id to its path in dir
func FindSceneFile(dir, id string) (string, error) {
	base, ok := strings.CutPrefix(id, FilePrefix)
	if !ok || base == "" || dir == "" || strings.ContainsAny(base, `/\`) || strings.Contains(base, "..") {
		return "", fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	path := filepath.Join(dir, base+".json")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return path, nil
}

// ListAllScenes returns built-in and file scenes grouped by category,
// built-in scenes first and the rest alphabetically
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(ListBuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: groupMap[builtinGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
