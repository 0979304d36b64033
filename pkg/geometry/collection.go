package geometry

import (
	"github.com/df07/fermion/pkg/core"
	"github.com/df07/fermion/pkg/material"
)

// NewCollection creates an aggregate of objects hit-tested as one
func NewCollection(objects ...Geometry) Geometry {
	return Geometry{Kind: KindCollection, Objects: objects}
}

// hitCollection returns the closest hit among objects. Each accepted hit
// shrinks tMax; a later object must be strictly closer to replace it, so on
// equal t the first object in order wins.
func hitCollection(objects []Geometry, ray core.Ray, tMin, tMax float32) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for i := range objects {
		if hit, isHit := objects[i].Hit(ray, tMin, closestSoFar); isHit && (!hitAnything || hit.T < closestSoFar) {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
