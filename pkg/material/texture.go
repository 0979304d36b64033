package material

import (
	"github.com/df07/fermion/pkg/core"
)

// TextureKind identifies the variant stored in a Texture
type TextureKind uint8

const (
	// TextureSolid returns one color everywhere
	TextureSolid TextureKind = iota
)

// String returns the scene-format name of the texture kind
func (k TextureKind) String() string {
	switch k {
	case TextureSolid:
		return "Solid"
	default:
		return "Unknown"
	}
}

// Texture provides spatially-varying colors for materials.
// Only the Solid variant exists today; new variants add a kind and a case in Value.
type Texture struct {
	Kind  TextureKind
	Color core.Color // Solid
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Color) Texture {
	return Texture{Kind: TextureSolid, Color: color}
}

// Value returns the texture color at the given surface coordinates and point
func (t Texture) Value(u, v float32, point core.Vec3) core.Color {
	switch t.Kind {
	case TextureSolid:
		return t.Color
	default:
		return core.Black
	}
}
