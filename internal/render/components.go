// Package render turns physics colliders into renderable mesh, material and transform components.
//
// The package has no GPU dependency: meshes and materials are plain data stored in Assets
// registries, and a backend (see internal/rlrender) uploads them when a window exists.
package render

import (
	"collider-render/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// ColliderComponent links an entity to a collider in the physics world.
type ColliderComponent struct {
	Handle physics.ColliderHandle
}

// RenderColor overrides the automatic color for an entity's collider mesh. Channels are in [0, 1].
type RenderColor struct {
	R, G, B float32
}

// Mesh references mesh data in the Assets[MeshData] registry.
type Mesh struct {
	Handle Handle
}

// Material references a material in the Assets[StandardMaterial] registry.
type Material struct {
	Handle Handle
}

// Transform places a mesh in render space. Scale is applied first, then Rotation, then Translation.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// TransformFromScale returns a transform at the origin with identity rotation.
func TransformFromScale(scale mgl32.Vec3) Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    scale,
	}
}

// Matrix returns the model matrix T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	s := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	r := t.Rotation.Mat4()
	tr := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	return tr.Mul4(r).Mul4(s)
}

// Unsupported marks an entity whose collider shape has no mesh representation.
// Marked entities are not revisited by ColliderRenderSystem.
type Unsupported struct {
	Kind physics.ShapeType
}
