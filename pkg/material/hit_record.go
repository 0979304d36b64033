package material

import (
	"github.com/df07/fermion/pkg/core"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float32   // Parameter t along the ray
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the incoming ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Copy of the material of the hit object
	U, V      float32   // Surface coordinates
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
