package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/geometry"
	"github.com/df07/fermion/pkg/material"
	"github.com/df07/fermion/pkg/scene"
)

// ErrUnknownType is wrapped when a "type" tag names no known variant
var ErrUnknownType = errors.New("unknown type")

// jsonVec3 and jsonColor mirror the {x,y,z} and {r,g,b} wire objects
type jsonVec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type jsonColor struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

type jsonCamera struct {
	LookFrom            jsonVec3 `json:"look_from"`
	LookAt              jsonVec3 `json:"look_at"`
	ViewUp              jsonVec3 `json:"view_up"`
	VerticalFieldOfView float32  `json:"vertical_field_of_view"`
	AspectRatio         float32  `json:"aspect_ratio"`
	Aperture            float32  `json:"aperture"`
	FocusDistance       float32  `json:"focus_distance"`
	TimeStart           float32  `json:"time_start"`
	TimeFinish          float32  `json:"time_finish"`
}

type jsonScene struct {
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	SamplesPerPixel int             `json:"samples_per_pixel"`
	MaxDepth        int             `json:"max_depth"`
	BackgroundColor jsonColor       `json:"background_color"`
	Camera          *jsonCamera     `json:"camera"`
	RootObject      json.RawMessage `json:"root_object"`
}

// tagged holds the discriminator of an internally tagged variant
type tagged struct {
	Type string `json:"type"`
}

type jsonSphere struct {
	PositionStart  jsonVec3        `json:"position_start"`
	PositionFinish *jsonVec3       `json:"position_finish"`
	TimeStart      float32         `json:"time_start"`
	TimeFinish     float32         `json:"time_finish"`
	Radius         float32         `json:"radius"`
	Material       json.RawMessage `json:"material"`
}

type jsonCollection struct {
	Objects []json.RawMessage `json:"objects"`
}

type jsonMaterial struct {
	Type            string          `json:"type"`
	Texture         json.RawMessage `json:"texture"`          // Lambertian
	Albedo          *jsonColor      `json:"albedo"`           // Metal
	FuzzingFactor   float32         `json:"fuzzing_factor"`   // Metal
	RefractiveIndex float32         `json:"refractive_index"` // Dielectric
}

type jsonTexture struct {
	Type  string    `json:"type"`
	Color jsonColor `json:"color"`
}

// LoadSceneFile reads and parses a JSON scene file
func LoadSceneFile(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := LoadScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadScene decodes a JSON scene description and validates it.
// Structural errors wrap scene.ErrInvalidScene.
func LoadScene(r io.Reader) (*scene.Scene, error) {
	var js jsonScene
	if err := json.NewDecoder(r).Decode(&js); err != nil {
		return nil, fmt.Errorf("%w: %v", scene.ErrInvalidScene, err)
	}
	if js.Camera == nil {
		return nil, fmt.Errorf("%w: missing camera", scene.ErrInvalidScene)
	}

	root, err := parseObject(js.RootObject, "root_object")
	if err != nil {
		return nil, err
	}

	c := js.Camera
	s := &scene.Scene{
		Width:           js.Width,
		Height:          js.Height,
		SamplesPerPixel: js.SamplesPerPixel,
		MaxDepth:        js.MaxDepth,
		BackgroundColor: js.BackgroundColor.color(),
		Camera: geometry.NewCamera(geometry.CameraConfig{
			LookFrom:      c.LookFrom.vec(),
			LookAt:        c.LookAt.vec(),
			Up:            c.ViewUp.vec(),
			VFov:          c.VerticalFieldOfView,
			AspectRatio:   c.AspectRatio,
			Aperture:      c.Aperture,
			FocusDistance: c.FocusDistance,
			TimeStart:     c.TimeStart,
			TimeFinish:    c.TimeFinish,
		}),
		Root: root,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseObject(data json.RawMessage, path string) (geometry.Geometry, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return geometry.Geometry{}, fmt.Errorf("%w: %s: missing object", scene.ErrInvalidScene, path)
	}

	var tag tagged
	if err := json.Unmarshal(data, &tag); err != nil {
		return geometry.Geometry{}, fmt.Errorf("%w: %s: %v", scene.ErrInvalidScene, path, err)
	}

	switch tag.Type {
	case "Collection":
		var jc jsonCollection
		if err := json.Unmarshal(data, &jc); err != nil {
			return geometry.Geometry{}, fmt.Errorf("%w: %s: %v", scene.ErrInvalidScene, path, err)
		}
		objects := make([]geometry.Geometry, 0, len(jc.Objects))
		for i, raw := range jc.Objects {
			obj, err := parseObject(raw, fmt.Sprintf("%s.objects[%d]", path, i))
			if err != nil {
				return geometry.Geometry{}, err
			}
			objects = append(objects, obj)
		}
		return geometry.NewCollection(objects...), nil

	case "Sphere":
		var js jsonSphere
		if err := json.Unmarshal(data, &js); err != nil {
			return geometry.Geometry{}, fmt.Errorf("%w: %s: %v", scene.ErrInvalidScene, path, err)
		}
		mat, err := parseMaterial(js.Material, path+".material")
		if err != nil {
			return geometry.Geometry{}, err
		}
		finish := js.PositionStart
		if js.PositionFinish != nil {
			finish = *js.PositionFinish
		}
		return geometry.NewMovingSphere(js.PositionStart.vec(), finish.vec(), js.TimeStart, js.TimeFinish, js.Radius, mat), nil

	default:
		return geometry.Geometry{}, fmt.Errorf("%w: %w: %s: object %q", scene.ErrInvalidScene, ErrUnknownType, path, tag.Type)
	}
}

func parseMaterial(data json.RawMessage, path string) (material.Material, error) {
	var jm jsonMaterial
	if len(data) == 0 {
		return material.Material{}, fmt.Errorf("%w: %s: missing material", scene.ErrInvalidScene, path)
	}
	if err := json.Unmarshal(data, &jm); err != nil {
		return material.Material{}, fmt.Errorf("%w: %s: %v", scene.ErrInvalidScene, path, err)
	}

	switch jm.Type {
	case "Lambertian":
		texture, err := parseTexture(jm.Texture, path+".texture")
		if err != nil {
			return material.Material{}, err
		}
		return material.NewTexturedLambertian(texture), nil
	case "Metal":
		if jm.Albedo == nil {
			return material.Material{}, fmt.Errorf("%w: %s: metal requires albedo", scene.ErrInvalidScene, path)
		}
		return material.NewMetal(jm.Albedo.color(), jm.FuzzingFactor), nil
	// "Dialectric" is the spelling used by existing scene files
	case "Dielectric", "Dialectric":
		return material.NewDielectric(jm.RefractiveIndex), nil
	default:
		return material.Material{}, fmt.Errorf("%w: %w: %s: material %q", scene.ErrInvalidScene, ErrUnknownType, path, jm.Type)
	}
}

func parseTexture(data json.RawMessage, path string) (material.Texture, error) {
	var jt jsonTexture
	if len(data) == 0 {
		return material.Texture{}, fmt.Errorf("%w: %s: missing texture", scene.ErrInvalidScene, path)
	}
	if err := json.Unmarshal(data, &jt); err != nil {
		return material.Texture{}, fmt.Errorf("%w: %s: %v", scene.ErrInvalidScene, path, err)
	}

	switch jt.Type {
	case "Solid":
		return material.NewSolidColor(jt.Color.color()), nil
	default:
		return material.Texture{}, fmt.Errorf("%w: %w: %s: texture %q", scene.ErrInvalidScene, ErrUnknownType, path, jt.Type)
	}
}

func (v jsonVec3) vec() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

func (c jsonColor) color() core.Color {
	return core.NewColor(c.R, c.G, c.B)
}
