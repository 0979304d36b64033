package geometry

import (
	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/material"
)

// Kind identifies the variant stored in a Geometry
type Kind uint8

const (
	KindSphere Kind = iota
	KindCollection
)

// String returns the scene-format name of the geometry kind
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "Sphere"
	case KindCollection:
		return "Collection"
	default:
		return "Unknown"
	}
}

// Geometry is a closed, recursive set of hittable objects selected by Kind.
// It is immutable after construction and safe to share between goroutines.
type Geometry struct {
	Kind    Kind
	Sphere  Sphere     // KindSphere
	Objects []Geometry // KindCollection
}

// Hit tests if a ray intersects the geometry within [tMin, tMax]
func (g *Geometry) Hit(ray core.Ray, tMin, tMax float32) (material.HitRecord, bool) {
	switch g.Kind {
	case KindSphere:
		return g.Sphere.Hit(ray, tMin, tMax)
	case KindCollection:
		return hitCollection(g.Objects, ray, tMin, tMax)
	default:
		return material.HitRecord{}, false
	}
}

// PrimitiveCount returns the number of spheres reachable from this geometry
func (g *Geometry) PrimitiveCount() int {
	switch g.Kind {
	case KindSphere:
		return 1
	case KindCollection:
		count := 0
		for i := range g.Objects {
			count += g.Objects[i].PrimitiveCount()
		}
		return count
	default:
		return 0
	}
}
