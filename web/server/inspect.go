package server

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/geometry"
	"github.com/df07/fermion/pkg/material"
	"github.com/df07/fermion/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		c := mat.Texture.Color
		properties["texture"] = mat.Texture.Kind.String()
		properties["albedo"] = [3]float32{c.R, c.G, c.B}
		properties["color"] = hexColor(c)
	case material.KindMetal:
		properties["albedo"] = [3]float32{mat.Albedo.R, mat.Albedo.G, mat.Albedo.B}
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzzness"] = mat.Fuzzness
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff"
	}

	return properties
}

func hexColor(c core.Color) string {
	clamp := func(v float32) int { return int(math32.Max(0, math32.Min(1, v)) * 255) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

// findSphere returns the sphere in g whose hit along ray is at distance t
func findSphere(g *geometry.Geometry, ray core.Ray, t float32) (*geometry.Sphere, bool) {
	switch g.Kind {
	case geometry.KindSphere:
		if hit, ok := g.Sphere.Hit(ray, inspectTMin, math32.Inf(1)); ok && hit.T == t {
			return &g.Sphere, true
		}
	case geometry.KindCollection:
		for i := range g.Objects {
			if s, ok := findSphere(&g.Objects[i], ray, t); ok {
				return s, true
			}
		}
	}
	return nil, false
}

const inspectTMin = 0.001

// inspectPixel casts an unjittered ray through the center of pixel (row x,
// column y) of an initialized scene and describes the first surface it hits
func inspectPixel(s *scene.Scene, x, y int) InspectResponse {
	// Fixed seed keeps lens and shutter samples repeatable
	sampler := core.NewSeededSampler(0)
	u := (float32(y) + 0.5) / float32(max(s.Width-1, 1))
	v := 1 - (float32(x)+0.5)/float32(max(s.Height-1, 1))
	ray := s.Camera.GetRay(u, v, sampler)

	hit, isHit := s.Root.Hit(ray, inspectTMin, math32.Inf(1))
	if !isHit {
		return InspectResponse{Hit: false}
	}

	properties := map[string]interface{}{
		"material": extractMaterialInfo(hit.Material),
	}
	geometryType := "unknown"
	if sphere, ok := findSphere(&s.Root, ray, hit.T); ok {
		geometryType = geometry.KindSphere.String()
		center := sphere.Center(ray.Time)
		geometryProps := map[string]interface{}{
			"center": [3]float32{center.X, center.Y, center.Z},
			"radius": sphere.Radius,
		}
		if sphere.PositionStart != sphere.PositionFinish {
			geometryProps["moving"] = true
			geometryProps["time"] = ray.Time
		}
		properties["geometry"] = geometryProps
	}

	return InspectResponse{
		Hit:          true,
		MaterialType: hit.Material.Kind.String(),
		GeometryType: geometryType,
		Point:        [3]float32{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float32{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	}
}
